package api

import (
	"net/http"

	"voyager/pkg/errors"
	"voyager/pkg/logger"

	"voyager/internal/services/chatsession"
)

// SessionHandler serves the chat session management endpoints
type SessionHandler struct {
	sessions *chatsession.Registry
	log      *logger.Logger
}

// NewSessionHandler creates a session handler
func NewSessionHandler(sessions *chatsession.Registry, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		log:      log.With("component", "session_handler"),
	}
}

// sessionListResponse is the payload for GET /sessions
type sessionListResponse struct {
	ActiveSessions []*chatsession.Info `json:"active_sessions"`
	TotalSessions  int                 `json:"total_sessions"`
}

// HandleList handles GET /sessions, optionally filtered by user_id
func (h *SessionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	var infos []*chatsession.Info
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		infos = h.sessions.ListByUser(userID)
	} else {
		infos = h.sessions.List()
	}

	writeJSON(w, http.StatusOK, sessionListResponse{
		ActiveSessions: infos,
		TotalSessions:  len(infos),
	})
}

// HandleGet handles GET /sessions/{id}
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	info, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

// HandleDelete handles DELETE /sessions/{id}
func (h *SessionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	deleted, err := h.sessions.Delete(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, errors.Wrapf(errors.ErrSessionNotFound, "session %s", sessionID))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "deleted",
		"session_id": sessionID,
	})
}
