// Chat HTTP handler.
//
//   - POST /chat   (one conversational turn with client-held history)
//
// The response is always 200; a failed completion is reported through the
// "status" field with a fixed fallback text.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swasth-ai/wellness-backend/internal/domain"
)

// ChatRequest is the JSON payload for a chat turn.
type ChatRequest struct {
	// Message is the student's new message.
	Message string `json:"message" example:"I can't focus before my exams"`
	// History holds prior turns, oldest first. Roles are "user" or "model".
	History []domain.ChatHistoryItem `json:"history" binding:"omitempty,dive"`
}

// ChatResponse is the JSON envelope of a chat reply.
type ChatResponse struct {
	Response string `json:"response" example:"That sounds stressful. Want to try a short breathing exercise together?"`
	// Status is "success" or "error".
	Status string `json:"status" example:"success"`
}

// Chat godoc
// @ID          chat
// @Summary     Chat with Swasth
// @Description Sends the message and prior history to the chat model. Upstream failures answer 200 with status "error" and a fallback reply.
// @Tags        Chat
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.ChatRequest  true  "Chat turn"
//
// @Success     200  {object}  handlers.ChatResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limit exceeded"
// @Router      /chat [post]
func (h *Handlers) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, msgInvalidBody)
		return
	}

	reply := h.chatSvc.Reply(c.Request.Context(), req.Message, req.History)
	degradedLog(c, "chat", reply.Err)

	ok(c, http.StatusOK, ChatResponse{Response: reply.Text, Status: reply.Status})
}
