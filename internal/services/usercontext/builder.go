package usercontext

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	adksession "google.golang.org/adk/session"

	"voyager/internal/domain/profile"
	"voyager/internal/metrics"
	profilesvc "voyager/internal/services/profile"
	"voyager/pkg/errors"
	"voyager/pkg/logger"
	"voyager/pkg/templates"
)

// Session state keys written by Inject.
const (
	StateKeyUserProfile      = "user_profile"
	StateKeyUserID           = "user_id"
	StateKeyContextInjected  = "context_injected"
	StateKeyContextTimestamp = "context_timestamp"
	StateKeyPersonalized     = "personalized_context"
)

const roleTemplatePrefix = "instructions/roles/"

// PersonalizedContext is the per-user view injected into a chat session and
// consumed by every agent in the tree.
type PersonalizedContext struct {
	UserInfo                 map[string]any               `json:"user_info"`
	AccessibilitySummary     profile.AccessibilitySummary `json:"accessibility_summary"`
	TravelPreferences        profile.TravelSummary        `json:"travel_preferences"`
	CommunicationStyle       string                       `json:"communication_style"`
	PersonalizedInstructions map[string]string            `json:"personalized_instructions"`
}

// Builder assembles personalized context from stored profiles and writes it
// into ADK session state.
type Builder struct {
	profiles  *profilesvc.Service
	templates *templates.Registry
	log       *logger.Logger
}

// NewBuilder wires the builder. A nil registry uses the embedded templates.
func NewBuilder(profiles *profilesvc.Service, registry *templates.Registry) *Builder {
	if registry == nil {
		registry = templates.Get()
	}
	return &Builder{
		profiles:  profiles,
		templates: registry,
		log:       logger.Get().With("component", "context_builder"),
	}
}

// instructionData feeds the base and role instruction templates.
type instructionData struct {
	Name                  string
	Age                   string
	HomeLocation          string
	Nationality           string
	CommunicationStyle    string
	RiskTolerance         string
	HasAccessibilityNeeds bool
	MobilityNeeds         []string
	SensoryNeeds          []string
	CognitiveNeeds        []string
	MobilityAids          []string
	Priorities            []string
	BarrierConcerns       []string
	CommunicationNeeds    []string
	ServiceAnimal         map[string]string
	AssistancePreferences map[string]string
	Destinations          []string
	Styles                []string
	Budget                string
	GroupSize             string
	Transportation        []string
	Activities            []string
}

func newInstructionData(p *profile.UserProfile) instructionData {
	age := ""
	if p.Basic.Age > 0 {
		age = strconv.Itoa(p.Basic.Age) + "-year-old"
	}
	return instructionData{
		Name:                  p.Basic.Name,
		Age:                   age,
		HomeLocation:          p.Basic.HomeLocation,
		Nationality:           p.Basic.Nationality,
		CommunicationStyle:    string(p.Prefs.CommunicationStyle),
		RiskTolerance:         string(p.Prefs.RiskTolerance),
		HasAccessibilityNeeds: p.Accessibility.HasNeeds(),
		MobilityNeeds:         p.Accessibility.MobilityNeeds,
		SensoryNeeds:          p.Accessibility.SensoryNeeds,
		CognitiveNeeds:        p.Accessibility.CognitiveNeeds,
		MobilityAids:          p.Accessibility.MobilityAids,
		Priorities:            p.Accessibility.AccessibilityPriorities,
		BarrierConcerns:       p.Accessibility.BarrierConcerns,
		CommunicationNeeds:    p.Accessibility.CommunicationNeeds,
		ServiceAnimal:         p.Accessibility.ServiceAnimal,
		AssistancePreferences: p.Accessibility.AssistancePreferences,
		Destinations:          p.Interests.PreferredDestinations,
		Styles:                styleNames(p.Interests.TravelStyles),
		Budget:                string(p.Interests.BudgetRange),
		GroupSize:             p.Interests.GroupSizePreference,
		Transportation:        p.Interests.TransportationPrefs,
		Activities:            p.Interests.ActivityInterests,
	}
}

func styleNames(styles []profile.TravelStyle) []string {
	out := make([]string, len(styles))
	for i, s := range styles {
		out[i] = string(s)
	}
	return out
}

// Build assembles personalized context without touching any session.
// Role instructions are discovered from the template registry, so adding a
// template under instructions/roles/ is enough to cover a new agent.
func (b *Builder) Build(p *profile.UserProfile) (*PersonalizedContext, error) {
	data := newInstructionData(p)

	base, err := b.templates.Render("instructions/base", data)
	if err != nil {
		return nil, errors.Wrap(err, "render base instruction")
	}

	instructions := make(map[string]string)
	for _, id := range b.templates.ListPrefix(roleTemplatePrefix) {
		closing, err := b.templates.Render(id, data)
		if err != nil {
			return nil, errors.Wrapf(err, "render role instruction %s", id)
		}
		role := strings.TrimPrefix(id, roleTemplatePrefix)
		instructions[role] = strings.TrimSpace(base) + "\n\n" + strings.TrimSpace(closing)
	}

	return &PersonalizedContext{
		UserInfo: map[string]any{
			"user_id":       p.UserID,
			"name":          p.Basic.Name,
			"nationality":   p.Basic.Nationality,
			"home_location": p.Basic.HomeLocation,
		},
		AccessibilitySummary:     profile.AccessibilitySummaryOf(p.Accessibility),
		TravelPreferences:        profile.TravelSummaryOf(p.Interests),
		CommunicationStyle:       string(p.Prefs.CommunicationStyle),
		PersonalizedInstructions: instructions,
	}, nil
}

// Inject loads the user's profile, builds personalized context and writes it
// into session state. Everything is assembled before the first state write,
// so a failed injection leaves the session untouched.
func (b *Builder) Inject(ctx context.Context, state adksession.State, userID string) error {
	p, err := b.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, errors.ErrProfileNotFound) || errors.Is(err, errors.ErrNotFound) {
			metrics.ContextInjections.WithLabelValues("missing_profile").Inc()
			return errors.Wrapf(errors.ErrProfileNotFound, "inject context for %s", userID)
		}
		metrics.ContextInjections.WithLabelValues("error").Inc()
		return errors.Wrap(err, "load profile for context injection")
	}

	pc, err := b.Build(p)
	if err != nil {
		metrics.ContextInjections.WithLabelValues("error").Inc()
		return err
	}

	// The full profile document goes into state so agents can reach any
	// field; the condensed view lives under the personalized context key.
	profileDoc, err := toStateValue(p)
	if err != nil {
		metrics.ContextInjections.WithLabelValues("error").Inc()
		return err
	}
	contextDoc, err := toStateValue(pc)
	if err != nil {
		metrics.ContextInjections.WithLabelValues("error").Inc()
		return err
	}

	// All values prepared; state writes start here.
	if err := state.Set(StateKeyUserProfile, profileDoc); err != nil {
		metrics.ContextInjections.WithLabelValues("error").Inc()
		return errors.Wrap(err, "set user profile state")
	}
	if err := state.Set(StateKeyUserID, userID); err != nil {
		return errors.Wrap(err, "set user id state")
	}
	if err := state.Set(StateKeyPersonalized, contextDoc); err != nil {
		return errors.Wrap(err, "set personalized context state")
	}
	if err := state.Set(StateKeyContextTimestamp, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return errors.Wrap(err, "set context timestamp")
	}
	if err := state.Set(StateKeyContextInjected, true); err != nil {
		return errors.Wrap(err, "set context injected flag")
	}

	metrics.ContextInjections.WithLabelValues("success").Inc()
	b.log.Infow("Personalized context injected",
		"user_id", userID,
		"accessibility_needs", len(pc.AccessibilitySummary.MobilityNeeds)+
			len(pc.AccessibilitySummary.SensoryNeeds)+
			len(pc.AccessibilitySummary.CognitiveNeeds),
	)
	return nil
}

// Injected reports whether the session already carries personalized context.
func Injected(state adksession.ReadonlyState) bool {
	val, err := state.Get(StateKeyContextInjected)
	if err != nil {
		return false
	}
	injected, ok := val.(bool)
	return ok && injected
}

// FromSession reads personalized context back out of session state.
func FromSession(state adksession.ReadonlyState) (*PersonalizedContext, error) {
	val, err := state.Get(StateKeyPersonalized)
	if err != nil {
		return nil, errors.Wrap(errors.ErrNotFound, "personalized context not present")
	}

	raw, err := json.Marshal(val)
	if err != nil {
		return nil, errors.Wrap(err, "encode personalized context")
	}
	var pc PersonalizedContext
	if err := json.Unmarshal(raw, &pc); err != nil {
		return nil, errors.Wrap(err, "decode personalized context")
	}
	return &pc, nil
}

// InstructionFor returns the composed instruction for one agent role from
// session state, falling back to empty when no context is injected.
func InstructionFor(state adksession.ReadonlyState, role string) string {
	pc, err := FromSession(state)
	if err != nil {
		return ""
	}
	return pc.PersonalizedInstructions[role]
}

// toStateValue round-trips a struct through JSON so session state holds
// plain maps that serialize cleanly.
func toStateValue(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encode state value")
	}
	out := make(map[string]any)
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errors.Wrap(err, "decode state value")
	}
	return out, nil
}
