// Mood journal HTTP handlers.
//
//   - POST /moods               (log an entry; bearer required)
//   - GET  /moods               (list a user's journal; bearer required)
//   - GET  /moods/reflections   (AI reflection over the newest entries)
//
// Logging an entry is the only mood route that surfaces upstream failures;
// listing degrades to [] and reflections to a fixed message.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swasth-ai/wellness-backend/internal/domain"
	"github.com/swasth-ai/wellness-backend/internal/http/middleware"
	"github.com/swasth-ai/wellness-backend/internal/services"
)

//
// DTOs
//

// MoodRequest is the JSON payload for logging a mood.
// Mood and UserID must be present but may be empty; every field is stored
// as sent.
type MoodRequest struct {
	Mood      *string `json:"mood" binding:"required" example:"calm"`
	Note      string  `json:"note" example:"Finished my assignment early"`
	Timestamp string  `json:"timestamp" example:"2025-01-15T09:30:00Z"`
	UserID    *string `json:"user_id" binding:"required" example:"8d0fbc5e-51a4-4c5e-9a1f-6a1d1c0f4e11"`
}

// MoodView is one journal entry as returned to clients.
type MoodView struct {
	Mood      string `json:"mood" example:"calm"`
	Note      string `json:"note" example:"Finished my assignment early"`
	Timestamp string `json:"timestamp" example:"2025-01-15T09:30:00Z"`
}

// ReflectionResponse wraps a mindful reflection.
type ReflectionResponse struct {
	Reflection string `json:"reflection" example:"You've kept going through a tough week. Notice how finishing early lifted your mood."`
}

// LogMood godoc
// @ID          logMood
// @Summary     Log a mood entry
// @Description Stores one mood journal entry for the caller. Supports Idempotency-Key; replays answer the success message without writing again.
// @Tags        Moods
// @Accept      json
// @Produce     json
//
// @Param       Authorization    header  string  true   "Bearer token from the identity service"
// @Param       Idempotency-Key  header  string  false  "Client key for safe retries"
// @Param       body             body    handlers.MoodRequest  true  "Mood entry"
//
// @Success     200  {object}  handlers.MessageResponse
// @Header      200  {string}  Idempotency-Replayed  "true when served from the idempotency ledger"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing Token"
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limit exceeded"
// @Failure     500  {object}  handlers.ErrorResponse  "Failed to log mood"
// @Router      /moods [post]
func (h *Handlers) LogMood(c *gin.Context) {
	auth := middleware.AuthHeader(c)
	if auth == "" {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, msgMissingToken)
		return
	}
	var req MoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, msgInvalidBody)
		return
	}
	if replayed(c, msgMoodLogged) {
		return
	}

	err := h.moodSvc.Log(c.Request.Context(), auth, domain.MoodEntry{
		Mood:      *req.Mood,
		Note:      req.Note,
		Timestamp: req.Timestamp,
		UserID:    *req.UserID,
	})
	switch {
	case err == nil:
	case errors.Is(err, services.ErrMissingToken):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, msgMissingToken)
		return
	case errors.Is(err, services.ErrTooLong):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	default:
		middleware.LoggerFrom(c).Error().Err(err).Msg("mood log failed")
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, msgMoodLogFailed)
		return
	}

	h.remember(c, http.StatusOK)
	ok(c, http.StatusOK, MessageResponse{Message: msgMoodLogged})
}

// ListMoods godoc
// @ID          listMoods
// @Summary     List a user's mood journal
// @Description Returns entries oldest first. Store failures answer 200 with an empty list.
// @Tags        Moods
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token from the identity service"
// @Param       user_id        query   string  true  "Journal owner"
//
// @Success     200  {array}   handlers.MoodView
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing Token"
// @Router      /moods [get]
func (h *Handlers) ListMoods(c *gin.Context) {
	uid, okUID := requireUserID(c)
	if !okUID {
		return
	}
	auth := middleware.AuthHeader(c)
	if auth == "" {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, msgMissingToken)
		return
	}

	items, err := h.moodSvc.List(c.Request.Context(), auth, uid)
	degradedLog(c, "moods_list", err)

	out := make([]MoodView, 0, len(items))
	for _, e := range items {
		out = append(out, MoodView{Mood: e.Mood, Note: e.Note, Timestamp: e.Timestamp})
	}
	ok(c, http.StatusOK, out)
}

// MoodReflections godoc
// @ID          moodReflections
// @Summary     Mindful reflection over recent entries
// @Description Summarizes the five newest entries with the chat model. Always 200: callers without a token get a login prompt, and failures get a fixed encouragement.
// @Tags        Moods
// @Produce     json
//
// @Param       Authorization  header  string  false  "Bearer token from the identity service"
// @Param       user_id        query   string  true   "Journal owner"
//
// @Success     200  {object}  handlers.ReflectionResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /moods/reflections [get]
func (h *Handlers) MoodReflections(c *gin.Context) {
	uid, okUID := requireUserID(c)
	if !okUID {
		return
	}

	r := h.moodSvc.Reflect(c.Request.Context(), middleware.AuthHeader(c), uid)
	degradedLog(c, "reflection", r.Err)

	ok(c, http.StatusOK, ReflectionResponse{Reflection: r.Text})
}
