package api

import (
	"net/http"

	"voyager/pkg/logger"

	chatsvc "voyager/internal/services/chat"
)

// ChatHandler serves the conversational endpoint backed by the agent tree
type ChatHandler struct {
	chat *chatsvc.Service
	log  *logger.Logger
}

// NewChatHandler creates a chat handler
func NewChatHandler(chat *chatsvc.Service, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		chat: chat,
		log:  log.With("component", "chat_handler"),
	}
}

// HandleChat handles POST /chat
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatsvc.Request
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.chat.Chat(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
