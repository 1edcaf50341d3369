package chat

import (
	"context"
	"strings"
	"time"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/runner"
	"google.golang.org/genai"

	"voyager/internal/agents"
	"voyager/internal/metrics"
	"voyager/internal/services/chatsession"
	"voyager/internal/services/profile"
	"voyager/internal/services/usercontext"
	toolmemory "voyager/internal/tools/memory"
	"voyager/pkg/errors"
	"voyager/pkg/logger"
)

// AnonymousUser serves chat turns that arrive without a user ID.
const AnonymousUser = "anonymous"

// Request is one chat turn from a client.
type Request struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id,omitempty"`
}

// Event is a condensed agent event exposed to clients.
type Event struct {
	Author    string `json:"author"`
	Content   string `json:"content,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// UserContextInfo summarizes the personalization applied to a turn.
type UserContextInfo struct {
	UserID             string `json:"user_id"`
	ContextInjected    bool   `json:"context_injected"`
	UserName           string `json:"user_name,omitempty"`
	AccessibilityNeeds bool   `json:"accessibility_needs"`
}

// Response is the outcome of one chat turn.
type Response struct {
	Response    string           `json:"response"`
	SessionID   string           `json:"session_id"`
	Events      []Event          `json:"events"`
	UserContext *UserContextInfo `json:"user_context,omitempty"`
}

// Service drives the agent tree for chat turns: session lookup, context
// injection, the runner loop and post-turn memory harvesting.
type Service struct {
	runner   *runner.Runner
	sessions *chatsession.Registry
	contexts *usercontext.Builder
	profiles *profile.Service
	memory   *toolmemory.Store
	log      *logger.Logger
}

// Config wires the chat service.
type Config struct {
	AppName  string
	Root     agent.Agent
	Sessions *chatsession.Registry
	Contexts *usercontext.Builder
	Profiles *profile.Service
	Memory   *toolmemory.Store
}

// NewService creates a chat service around the root agent.
func NewService(cfg Config) (*Service, error) {
	if cfg.Root == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "root agent is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "session registry is required")
	}

	r, err := runner.New(runner.Config{
		AppName:        cfg.AppName,
		Agent:          cfg.Root,
		SessionService: cfg.Sessions.Service(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "create agent runner")
	}

	return &Service{
		runner:   r,
		sessions: cfg.Sessions,
		contexts: cfg.Contexts,
		profiles: cfg.Profiles,
		memory:   cfg.Memory,
		log:      logger.Get().With("service", "chat"),
	}, nil
}

// Chat processes one turn. Known users get personalized context injected
// into the session before the agents run; anonymous turns run without it.
func (s *Service) Chat(ctx context.Context, req Request) (*Response, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, &errors.ValidationError{Field: "message", Message: "message is required"}
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "default"
	}
	userID := req.UserID
	if userID == "" {
		userID = AnonymousUser
	}

	sess, created, err := s.sessions.GetOrCreate(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if created {
		s.log.Infow("Created new session", "session_id", sessionID, "user_id", userID)
	}

	// Context injection is best-effort: a traveler without a profile still
	// gets a generic answer, and a failed injection never leaks partial
	// state into the session.
	var contextInfo *UserContextInfo
	if req.UserID != "" && s.contexts != nil {
		if err := s.contexts.Inject(ctx, sess.State(), req.UserID); err != nil {
			s.log.Warnw("Context injection skipped",
				"user_id", req.UserID,
				"session_id", sessionID,
				"error", err,
			)
		} else if pc, err := usercontext.FromSession(sess.State()); err == nil {
			name, _ := pc.UserInfo["name"].(string)
			contextInfo = &UserContextInfo{
				UserID:          req.UserID,
				ContextInjected: true,
				UserName:        name,
				AccessibilityNeeds: pc.AccessibilitySummary.HasMobilityNeeds ||
					pc.AccessibilitySummary.HasSensoryNeeds,
			}
		}
	}

	userContent := genai.NewContentFromText(req.Message, genai.RoleUser)
	runCtx := toolmemory.WithSession(ctx, sessionID)

	start := time.Now()
	events := make([]Event, 0, 8)
	finalText := ""
	inputTokens, outputTokens := 0, 0

	runConfig := agent.RunConfig{StreamingMode: agent.StreamingModeSSE}
	for event, err := range s.runner.Run(runCtx, userID, sessionID, userContent, runConfig) {
		if err != nil {
			metrics.RecordAgentCall(agents.RoleRoot, time.Since(start), inputTokens, outputTokens, err)
			return nil, errors.Wrap(err, "agent run failed")
		}
		if event == nil || event.LLMResponse.Partial {
			continue
		}

		if event.UsageMetadata != nil {
			inputTokens += int(event.UsageMetadata.PromptTokenCount)
			outputTokens += int(event.UsageMetadata.CandidatesTokenCount)
		}

		if event.LLMResponse.Content == nil {
			continue
		}

		text := ""
		for _, part := range event.LLMResponse.Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		events = append(events, Event{
			Author:    event.Author,
			Content:   text,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		if text != "" {
			finalText = text
		}

		if event.TurnComplete && event.IsFinalResponse() {
			break
		}
	}

	metrics.RecordAgentCall(agents.RoleRoot, time.Since(start), inputTokens, outputTokens, nil)
	s.sessions.Touch(sessionID)
	s.afterTurn(ctx, req.UserID, sessionID)

	return &Response{
		Response:    finalText,
		SessionID:   sessionID,
		Events:      events,
		UserContext: contextInfo,
	}, nil
}

// afterTurn persists side effects of a completed turn: activity tracking
// and any facts the agents memorized. Failures are logged, never surfaced.
func (s *Service) afterTurn(ctx context.Context, userID, sessionID string) {
	if userID == "" {
		return
	}

	if s.profiles != nil {
		if !s.profiles.TouchLastActive(ctx, userID) {
			s.log.Debugw("Activity timestamp not recorded", "user_id", userID)
		}
	}

	if s.memory != nil && s.profiles != nil {
		if facts := s.memory.Drain(sessionID); len(facts) > 0 {
			if err := s.profiles.UpdateLearnedPreferences(ctx, userID, facts); err != nil {
				s.log.Warnw("Failed to persist learned preferences",
					"user_id", userID,
					"count", len(facts),
					"error", err,
				)
			}
		}
	}
}
