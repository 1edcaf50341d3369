package chatsession

import (
	"context"
	"sort"
	"sync"
	"time"

	adksession "google.golang.org/adk/session"

	"voyager/internal/metrics"
	"voyager/pkg/errors"
	"voyager/pkg/logger"
)

// Info is the registry's view of one live chat session.
type Info struct {
	SessionID    string    `json:"session_id"`
	UserID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
	Turns        int       `json:"turns"`
}

// Registry tracks live chat sessions on top of the ADK session service.
// Sessions are keyed by the caller-supplied session ID and live only for
// the lifetime of the process.
type Registry struct {
	appName string
	service adksession.Service

	mu       sync.RWMutex
	sessions map[string]*Info

	log *logger.Logger
}

// NewRegistry builds a registry backed by the given ADK session service.
// A nil service defaults to ADK's in-memory implementation.
func NewRegistry(appName string, service adksession.Service) *Registry {
	if service == nil {
		service = adksession.InMemoryService()
	}
	return &Registry{
		appName:  appName,
		service:  service,
		sessions: make(map[string]*Info),
		log:      logger.Get().With("component", "session_registry"),
	}
}

// Service exposes the underlying ADK session service for the runner.
func (r *Registry) Service() adksession.Service {
	return r.service
}

// GetOrCreate returns the ADK session for the given session ID, creating it
// on first use. A session belongs to the user who opened it; reusing the ID
// with a different user is rejected.
func (r *Registry) GetOrCreate(ctx context.Context, sessionID, userID string) (adksession.Session, bool, error) {
	if sessionID == "" || userID == "" {
		return nil, false, errors.Wrap(errors.ErrInvalidInput, "session_id and user_id are required")
	}

	r.mu.Lock()
	info, exists := r.sessions[sessionID]
	if exists && info.UserID != userID {
		r.mu.Unlock()
		return nil, false, errors.Wrapf(errors.ErrInvalidInput,
			"session %s belongs to another user", sessionID)
	}
	r.mu.Unlock()

	if exists {
		resp, err := r.service.Get(ctx, &adksession.GetRequest{
			AppName:   r.appName,
			UserID:    userID,
			SessionID: sessionID,
		})
		if err != nil {
			return nil, false, errors.Wrap(err, "get session")
		}
		return resp.Session, false, nil
	}

	resp, err := r.service.Create(ctx, &adksession.CreateRequest{
		AppName:   r.appName,
		UserID:    userID,
		SessionID: sessionID,
	})
	if err != nil {
		return nil, false, errors.Wrap(err, "create session")
	}

	now := time.Now().UTC()
	r.mu.Lock()
	r.sessions[sessionID] = &Info{
		SessionID:    sessionID,
		UserID:       userID,
		CreatedAt:    now,
		LastActiveAt: now,
	}
	count := len(r.sessions)
	r.mu.Unlock()

	metrics.SessionsActive.Set(float64(count))
	r.log.Infow("Session created", "session_id", sessionID, "user_id", userID)
	return resp.Session, true, nil
}

// Touch records a completed turn on the session.
func (r *Registry) Touch(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if info, ok := r.sessions[sessionID]; ok {
		info.LastActiveAt = time.Now().UTC()
		info.Turns++
	}
}

// Get returns registry info for a session.
func (r *Registry) Get(sessionID string) (*Info, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, ok := r.sessions[sessionID]
	if !ok {
		return nil, errors.Wrapf(errors.ErrSessionNotFound, "session %s", sessionID)
	}
	cp := *info
	return &cp, nil
}

// List returns all live sessions, newest activity first.
func (r *Registry) List() []*Info {
	r.mu.RLock()
	infos := make([]*Info, 0, len(r.sessions))
	for _, info := range r.sessions {
		cp := *info
		infos = append(infos, &cp)
	}
	r.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].LastActiveAt.After(infos[j].LastActiveAt)
	})
	return infos
}

// ListByUser returns live sessions for one user, newest activity first.
func (r *Registry) ListByUser(userID string) []*Info {
	all := r.List()
	out := make([]*Info, 0, len(all))
	for _, info := range all {
		if info.UserID == userID {
			out = append(out, info)
		}
	}
	return out
}

// Delete removes a session from the registry and the ADK service. Deleting
// a missing session reports deleted=false without error.
func (r *Registry) Delete(ctx context.Context, sessionID string) (bool, error) {
	r.mu.Lock()
	info, ok := r.sessions[sessionID]
	if ok {
		delete(r.sessions, sessionID)
	}
	count := len(r.sessions)
	r.mu.Unlock()

	if !ok {
		return false, nil
	}

	metrics.SessionsActive.Set(float64(count))

	err := r.service.Delete(ctx, &adksession.DeleteRequest{
		AppName:   r.appName,
		UserID:    info.UserID,
		SessionID: sessionID,
	})
	if err != nil {
		// Registry entry is already gone; log and report deleted anyway.
		r.log.Warnw("Failed to delete backing session", "session_id", sessionID, "error", err)
	}

	r.log.Infow("Session deleted", "session_id", sessionID, "user_id", info.UserID)
	return true, nil
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
