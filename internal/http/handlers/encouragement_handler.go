// Encouragement wall HTTP handlers.
//
//   - POST /encouragement   (post a sticky note; public)
//   - GET  /encouragement   (newest notes first; public)
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swasth-ai/wellness-backend/internal/domain"
	"github.com/swasth-ai/wellness-backend/internal/http/middleware"
	"github.com/swasth-ai/wellness-backend/internal/services"
	"github.com/swasth-ai/wellness-backend/internal/utils"
)

// NoteRequest is the JSON payload for posting a note.
// Message must be present but may be empty.
type NoteRequest struct {
	Message  *string `json:"message" binding:"required" example:"You are doing better than you think!"`
	Color    string  `json:"color" example:"#FDE68A"`
	Rotation int     `json:"rotation" example:"-3"`
}

// PostEncouragement godoc
// @ID          postEncouragement
// @Summary     Post an encouragement note
// @Description Adds an anonymous note to the public wall. Supports Idempotency-Key.
// @Tags        Encouragement
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false  "Client key for safe retries"
// @Param       body             body    handlers.NoteRequest  true  "Note"
//
// @Success     200  {object}  handlers.MessageResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limit exceeded"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /encouragement [post]
func (h *Handlers) PostEncouragement(c *gin.Context) {
	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, msgInvalidBody)
		return
	}
	if replayed(c, msgNotePosted) {
		return
	}

	err := h.noteSvc.Post(c.Request.Context(), middleware.AuthHeader(c), domain.EncouragementNote{
		Message:  *req.Message,
		Color:    req.Color,
		Rotation: req.Rotation,
	})
	switch {
	case err == nil:
	case errors.Is(err, services.ErrTooLong):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	default:
		middleware.LoggerFrom(c).Error().Err(err).Msg("note post failed")
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, msgNotePostFailed)
		return
	}

	h.remember(c, http.StatusOK)
	ok(c, http.StatusOK, MessageResponse{Message: msgNotePosted})
}

// ListEncouragement godoc
// @ID          listEncouragement
// @Summary     List encouragement notes
// @Description Returns the newest notes first, each row exactly as the store holds it. Store failures answer 200 with an empty list.
// @Tags        Encouragement
// @Produce     json
//
// @Param       limit  query  int  false  "Max notes"  minimum(1) maximum(50) default(50)
//
// @Success     200  {array}  domain.EncouragementNote  "Rows are passed through unchanged"
// @Router      /encouragement [get]
func (h *Handlers) ListEncouragement(c *gin.Context) {
	limit := utils.BoundedInt(c.Query("limit"), services.MaxNotesListed, 1, services.MaxNotesListed)

	items, err := h.noteSvc.List(c.Request.Context(), middleware.AuthHeader(c), limit)
	degradedLog(c, "notes_list", err)
	if items == nil {
		items = []json.RawMessage{}
	}
	ok(c, http.StatusOK, items)
}
