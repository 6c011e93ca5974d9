package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swasth-ai/wellness-backend/internal/domain"
	"github.com/swasth-ai/wellness-backend/internal/http/middleware"
)

// Progress godoc
// @ID          progress
// @Summary     XP, level and badges
// @Description Derives gamification progress from record counts. Store failures answer 200 with level 1 and no badges.
// @Tags        Progress
// @Produce     json
//
// @Param       user_id  query  string  true  "User"
//
// @Success     200  {object}  domain.Progress
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /progress [get]
func (h *Handlers) Progress(c *gin.Context) {
	uid, okUID := requireUserID(c)
	if !okUID {
		return
	}

	p, err := h.progSvc.Snapshot(c.Request.Context(), middleware.AuthHeader(c), uid)
	degradedLog(c, "progress", err)
	if p.Badges == nil {
		p.Badges = []domain.Badge{}
	}
	ok(c, http.StatusOK, p)
}
