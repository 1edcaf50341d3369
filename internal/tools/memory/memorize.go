package memory

import (
	"context"
	"sync"

	"google.golang.org/adk/tool"

	"voyager/internal/tools"
	"voyager/pkg/errors"
)

type sessionKey struct{}

// WithSession tags a context with the chat session the agents are serving.
// The memorize tool files facts under that session.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionID)
}

func sessionFrom(ctx context.Context) string {
	if id, ok := ctx.Value(sessionKey{}).(string); ok && id != "" {
		return id
	}
	return "global"
}

// Store holds facts memorized by agents during conversations, grouped by
// session. The chat service drains a session's facts after each turn and
// persists them onto the user profile.
type Store struct {
	mu    sync.Mutex
	facts map[string]map[string]string
}

// NewStore creates an empty memory store.
func NewStore() *Store {
	return &Store{facts: make(map[string]map[string]string)}
}

// Put records one fact for a session.
func (s *Store) Put(sessionID, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.facts[sessionID] == nil {
		s.facts[sessionID] = make(map[string]string)
	}
	s.facts[sessionID][key] = value
}

// Drain returns and clears all facts recorded for a session.
func (s *Store) Drain(sessionID string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	facts := s.facts[sessionID]
	delete(s.facts, sessionID)
	return facts
}

// Peek returns a copy of the facts recorded for a session.
func (s *Store) Peek(sessionID string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.facts[sessionID]))
	for k, v := range s.facts[sessionID] {
		out[k] = v
	}
	return out
}

// Register adds the memorize tool backed by the store.
func Register(reg *tools.Registry, store *Store) {
	reg.Register(tools.Definition{
		Name:        "memorize",
		Description: "Remember a fact about the traveler, such as a preference or constraint, as a key/value pair",
		Category:    "memory",
	}, func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
		key, _ := args["key"].(string)
		value, _ := args["value"].(string)
		if key == "" || value == "" {
			return nil, errors.Wrap(errors.ErrInvalidInput, "key and value are required")
		}

		sessionID := ctx.SessionID()
		if sessionID == "" {
			sessionID = sessionFrom(ctx)
		}
		store.Put(sessionID, key, value)
		return map[string]interface{}{
			"status": "stored",
			"key":    key,
		}, nil
	})
}
