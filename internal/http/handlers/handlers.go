// Handler wiring.
//
// The handlers in this package are transport-thin: they bind and validate
// input, read the caller's bearer credential, call one service, and translate
// the service outcome into an HTTP response. Degraded service outcomes are
// answered with 200 and logged; only writes and identity calls surface
// failures as HTTP errors.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/swasth-ai/wellness-backend/internal/domain"
	"github.com/swasth-ai/wellness-backend/internal/http/middleware"
	"github.com/swasth-ai/wellness-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// ChatService answers one chat turn. It never fails; the reply carries its
// own status.
type ChatService interface {
	Reply(ctx context.Context, message string, history []domain.ChatHistoryItem) services.ChatReply
}

// MoodService covers the mood journal routes.
type MoodService interface {
	// Log stores one entry on behalf of the caller identified by auth.
	Log(ctx context.Context, auth string, e domain.MoodEntry) error
	// List returns the user's journal, oldest first; never nil.
	List(ctx context.Context, auth, userID string) ([]domain.MoodEntry, error)
	// Reflect summarizes the newest entries.
	Reflect(ctx context.Context, auth, userID string) services.Reflection
}

// EncouragementService covers the public encouragement wall.
type EncouragementService interface {
	Post(ctx context.Context, auth string, n domain.EncouragementNote) error
	List(ctx context.Context, auth string, limit int) ([]json.RawMessage, error)
}

// ProgressService derives the gamification snapshot.
type ProgressService interface {
	Snapshot(ctx context.Context, auth, userID string) (domain.Progress, error)
}

// ProfileService forwards profile changes to the identity service.
type ProfileService interface {
	Update(ctx context.Context, auth string, name, password *string) (json.RawMessage, error)
}

// IdempotencyLedger records successful keyed writes so retries replay.
type IdempotencyLedger interface {
	Remember(ctx context.Context, identity, scope, key string, status int) error
}

//
// Handler wiring
//

// Services groups the dependencies of Handlers. Idempotency may be nil.
type Services struct {
	Chat          ChatService
	Moods         MoodService
	Encouragement EncouragementService
	Progress      ProgressService
	Profile       ProfileService
	Idempotency   IdempotencyLedger

	// PoweredBy names the chat provider in the root banner (e.g. "Mistral").
	PoweredBy string
}

// Handlers groups the HTTP endpoints of the wellness API.
type Handlers struct {
	chatSvc    ChatService
	moodSvc    MoodService
	noteSvc    EncouragementService
	progSvc    ProgressService
	profileSvc ProfileService
	ledger     IdempotencyLedger
	poweredBy  string
}

// New constructs a Handlers instance bound to the given services.
func New(s Services) *Handlers {
	return &Handlers{
		chatSvc:    s.Chat,
		moodSvc:    s.Moods,
		noteSvc:    s.Encouragement,
		progSvc:    s.Progress,
		profileSvc: s.Profile,
		ledger:     s.Idempotency,
		poweredBy:  s.PoweredBy,
	}
}

// MessageResponse carries a single human-readable message.
type MessageResponse struct {
	Message string `json:"message" example:"Mood logged successfully"`
}

// Root godoc
// @ID          root
// @Summary     Service banner
// @Description Reports that the service is up and which chat provider backs it.
// @Tags        Meta
// @Produce     json
// @Success     200  {object}  handlers.MessageResponse
// @Router      / [get]
func (h *Handlers) Root(c *gin.Context) {
	name := h.poweredBy
	if name == "" {
		name = "Mistral"
	}
	ok(c, http.StatusOK, MessageResponse{Message: "Swasth AI Student Specialist Activated (" + name + " Powered)"})
}

//
// Helpers
//

// requireUserID reads the user_id query parameter or answers 400.
func requireUserID(c *gin.Context) (string, bool) {
	uid := strings.TrimSpace(c.Query("user_id"))
	if uid == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, msgUserIDRequired)
		return "", false
	}
	return uid, true
}

// replayed acknowledges a keyed write that already succeeded, without
// repeating it. It reports whether the response was written.
func replayed(c *gin.Context, msg string) bool {
	if !middleware.IsReplay(c) {
		return false
	}
	c.Header(middleware.HeaderIdempotencyReplayed, "true")
	ok(c, http.StatusOK, MessageResponse{Message: msg})
	return true
}

// remember stores the Idempotency-Key of a successful write. Ledger failures
// are logged and otherwise ignored.
func (h *Handlers) remember(c *gin.Context, status int) {
	key, has := middleware.GetIdempotencyKey(c)
	if !has || h.ledger == nil {
		return
	}
	if err := h.ledger.Remember(c.Request.Context(), middleware.IdentityKey(c), c.FullPath(), key, status); err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency record failed")
	}
}
