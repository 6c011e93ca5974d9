// Profile HTTP handler.
//
//   - POST /profile/update   (pass-through to the identity service)
//
// Identity-service rejections are forwarded with their status and body
// unchanged.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swasth-ai/wellness-backend/internal/http/middleware"
	"github.com/swasth-ai/wellness-backend/internal/services"
	"github.com/swasth-ai/wellness-backend/internal/upstream"
)

// ProfileUpdateRequest is the JSON payload for a profile change. Omitted or
// empty fields are left unchanged.
type ProfileUpdateRequest struct {
	Name     *string `json:"name" example:"Asha"`
	Password *string `json:"password" example:"n3w-s3cret"`
}

// UpdateProfile godoc
// @ID          updateProfile
// @Summary     Update name and/or password
// @Description Forwards a sparse update to the identity service and returns its user JSON unchanged.
// @Tags        Profile
// @Accept      json
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token from the identity service"
// @Param       body           body    handlers.ProfileUpdateRequest  true  "Profile fields"
//
// @Success     200  {object}  object  "Identity service user"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing Token"
// @Failure     503  {object}  handlers.ErrorResponse  "Identity service not configured"
// @Router      /profile/update [post]
func (h *Handlers) UpdateProfile(c *gin.Context) {
	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, msgInvalidBody)
		return
	}

	raw, err := h.profileSvc.Update(c.Request.Context(), middleware.AuthHeader(c), req.Name, req.Password)
	if err != nil {
		var se *upstream.StatusError
		switch {
		case errors.Is(err, services.ErrMissingToken):
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, msgMissingToken)
		case errors.Is(err, services.ErrIdentityUnavailable):
			fail(c, http.StatusServiceUnavailable, ErrCodeIdentityUnavailable, err.Error())
		case errors.As(err, &se):
			middleware.LoggerFrom(c).Warn().Int("upstream_status", se.Status).Msg("profile update rejected")
			c.Data(se.Status, "application/json; charset=utf-8", se.Body)
			c.Abort()
		default:
			middleware.LoggerFrom(c).Error().Err(err).Msg("profile update failed")
			fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, "Failed to update profile")
		}
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}
