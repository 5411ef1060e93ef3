// README: Listing-scoped chat session handlers.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"estatematch/internal/modules/chat"
)

type ChatHandler struct {
	chat     *chat.Service
	registry *chat.Registry
}

func NewChatHandler(chatSvc *chat.Service, registry *chat.Registry) *ChatHandler {
	return &ChatHandler{chat: chatSvc, registry: registry}
}

type createSessionReq struct {
	Listing string `json:"listing"`
}

type createSessionResp struct {
	SessionID string `json:"session_id"`
	Greeting  string `json:"greeting"`
}

// CreateSession handles POST /api/chat/sessions.
func (h *ChatHandler) CreateSession(c *gin.Context) {
	var req createSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	sess, err := h.chat.NewSession(c.Request.Context(), req.Listing)
	if err != nil {
		writeChatError(c, err)
		return
	}

	id := h.registry.Put(sess)
	writeJSON(c, http.StatusCreated, createSessionResp{SessionID: id, Greeting: chat.Greeting})
}

type sendMessageReq struct {
	Message string `json:"message"`
}

// SendMessage handles POST /api/chat/sessions/:id/messages.
// A failed engine exchange still returns 200: the reply is the visible
// error-notice turn and the session remains usable.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return
	}

	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeChatError(c, chat.ErrEmptyMessage)
		return
	}

	sess, err := h.registry.Get(id)
	if err != nil {
		writeChatError(c, err)
		return
	}

	reply, err := sess.Send(c.Request.Context(), req.Message)
	if err != nil {
		writeChatError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, map[string]any{"reply": reply})
}

// History handles GET /api/chat/sessions/:id.
func (h *ChatHandler) History(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return
	}

	sess, err := h.registry.Get(id)
	if err != nil {
		writeChatError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, map[string]any{"turns": sess.History()})
}

// DeleteSession handles DELETE /api/chat/sessions/:id. Discards the
// handle and with it the whole conversation.
func (h *ChatHandler) DeleteSession(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return
	}

	h.registry.Delete(id)
	c.Status(http.StatusNoContent)
}
