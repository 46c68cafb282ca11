package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-wellbeing-backend/internal/domain"
)

// ChatOpenRequest opens or closes the chat panel.
type ChatOpenRequest struct {
	Open *bool `json:"open" binding:"required" example:"true"`
}

// SendChatRequest is one user chat message.
type SendChatRequest struct {
	Text string `json:"text" example:"ช่วงนี้นอนไม่ค่อยหลับ"`
}

// TranscriptResponse lists the chat turns of a session.
type TranscriptResponse struct {
	Messages   []domain.ChatMessage `json:"messages"`
	Generating bool                 `json:"generating"`
}

// SendChatResponse carries the reply entry and the full transcript.
type SendChatResponse struct {
	Reply    domain.ChatMessage   `json:"reply"`
	Messages []domain.ChatMessage `json:"messages"`
}

// SetChatOpen godoc
// @ID          setChatOpen
// @Summary     Open or close the chat panel
// @Description Closing the panel clears the transcript.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       id    path  string                    true  "Session ID (UUID)"  format(uuid)
// @Param       body  body  handlers.ChatOpenRequest  true  "Panel state"
// @Success     200  {object}  handlers.SessionView
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Session not found"
// @Router      /sessions/{id}/chat/open [put]
func (h *Handlers) SetChatOpen(c *gin.Context) {
	id, valid := sessionParam(c)
	if !valid {
		return
	}
	var req ChatOpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "open required")
		return
	}
	st, err := h.convSvc.SetOpen(c.Request.Context(), id, *req.Open)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, viewOf(st))
}

// ListChatMessages godoc
// @ID          listChatMessages
// @Summary     Chat transcript
// @Tags        Chat
// @Produce     json
// @Param       id   path  string  true  "Session ID (UUID)"  format(uuid)
// @Success     200  {object}  handlers.TranscriptResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Session not found"
// @Router      /sessions/{id}/chat/messages [get]
func (h *Handlers) ListChatMessages(c *gin.Context) {
	id, valid := sessionParam(c)
	if !valid {
		return
	}
	st, err := h.assessSvc.Get(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, TranscriptResponse{Messages: st.Transcript, Generating: st.Generating})
}

// SendChatMessage godoc
// @ID          sendChatMessage
// @Summary     Send a chat message
// @Description Appends the message, asks the completion API with the prior transcript as
// @Description context, and appends the reply. Completion failures become a notice entry
// @Description in the transcript rather than an error response. Only one message per
// @Description session may be in flight.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       id    path  string                    true  "Session ID (UUID)"  format(uuid)
// @Param       body  body  handlers.SendChatRequest  true  "Message"
// @Success     200  {object}  handlers.SendChatResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Empty or too long"
// @Failure     404  {object}  handlers.ErrorResponse  "Session not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Reply pending"
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limited"
// @Router      /sessions/{id}/chat/messages [post]
func (h *Handlers) SendChatMessage(c *gin.Context) {
	id, valid := sessionParam(c)
	if !valid {
		return
	}
	var req SendChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "text required")
		return
	}
	st, err := h.convSvc.Send(c.Request.Context(), id, req.Text)
	if err != nil {
		serviceError(c, err)
		return
	}
	var reply domain.ChatMessage
	if n := len(st.Transcript); n > 0 {
		reply = st.Transcript[n-1]
	}
	ok(c, http.StatusOK, SendChatResponse{Reply: reply, Messages: st.Transcript})
}
