package profile

import (
	"time"
)

// TravelStyle describes how a traveler prefers to pace their trips.
type TravelStyle string

const (
	TravelStyleBudget    TravelStyle = "budget"
	TravelStyleComfort   TravelStyle = "comfort"
	TravelStyleLuxury    TravelStyle = "luxury"
	TravelStyleAdventure TravelStyle = "adventure"
	TravelStyleRelaxed   TravelStyle = "relaxed"
)

// BudgetRange buckets the traveler's typical spend per trip.
type BudgetRange string

const (
	BudgetRangeLow      BudgetRange = "low"
	BudgetRangeModerate BudgetRange = "moderate"
	BudgetRangeHigh     BudgetRange = "high"
	BudgetRangePremium  BudgetRange = "premium"
)

// CommunicationStyle controls how agents phrase their responses.
type CommunicationStyle string

const (
	CommunicationDetailed CommunicationStyle = "detailed"
	CommunicationConcise  CommunicationStyle = "concise"
	CommunicationVisual   CommunicationStyle = "visual"
	CommunicationAudio    CommunicationStyle = "audio"
)

// RiskTolerance describes how adventurous recommendations may be.
type RiskTolerance string

const (
	RiskLow      RiskTolerance = "low"
	RiskModerate RiskTolerance = "moderate"
	RiskHigh     RiskTolerance = "high"
)

// Group size preference buckets. Free-form values are accepted; these are
// the ones the onboarding flow offers.
const (
	GroupSizeSolo     = "solo"
	GroupSizeCouple   = "couple"
	GroupSizeFamily   = "family"
	GroupSizeGroup    = "group"
	GroupSizeFlexible = "flexible"
)

// BasicInfo holds identifying details of a traveler.
type BasicInfo struct {
	Name         string `json:"name" firestore:"name"`
	Email        string `json:"email" firestore:"email"`
	Phone        string `json:"phone,omitempty" firestore:"phone"`
	Age          int    `json:"age,omitempty" firestore:"age"`
	Nationality  string `json:"nationality" firestore:"nationality"`
	HomeLocation string `json:"home_location" firestore:"home_location"`
}

// TravelInterests captures destinations and activity preferences.
type TravelInterests struct {
	PreferredDestinations    []string      `json:"preferred_destinations" firestore:"preferred_destinations"`
	TravelStyles             []TravelStyle `json:"travel_style" firestore:"travel_style"`
	BudgetRange              BudgetRange   `json:"budget_range" firestore:"budget_range"`
	GroupSizePreference      string        `json:"group_size_preference" firestore:"group_size_preference"`
	AccommodationPreferences []string      `json:"accommodation_preferences" firestore:"accommodation_preferences"`
	ActivityInterests        []string      `json:"activity_interests" firestore:"activity_interests"`
	TransportationPrefs      []string      `json:"transportation_preferences" firestore:"transportation_preferences"`
}

// AccessibilityProfile captures the traveler's accessibility requirements.
// All slices are optional; an empty profile means no declared needs.
type AccessibilityProfile struct {
	MobilityNeeds           []string          `json:"mobility_needs" firestore:"mobility_needs"`
	SensoryNeeds            []string          `json:"sensory_needs" firestore:"sensory_needs"`
	CognitiveNeeds          []string          `json:"cognitive_needs" firestore:"cognitive_needs"`
	DietaryRestrictions     []string          `json:"dietary_restrictions" firestore:"dietary_restrictions"`
	MedicalRequirements     []string          `json:"medical_requirements" firestore:"medical_requirements"`
	MobilityAids            []string          `json:"mobility_aids" firestore:"mobility_aids"`
	AssistancePreferences   map[string]string `json:"assistance_preferences" firestore:"assistance_preferences"`
	AccessibilityPriorities []string          `json:"accessibility_priorities" firestore:"accessibility_priorities"`
	BarrierConcerns         []string          `json:"barrier_concerns" firestore:"barrier_concerns"`
	ServiceAnimal           map[string]string `json:"service_animal,omitempty" firestore:"service_animal"`
	CommunicationNeeds      []string          `json:"communication_needs" firestore:"communication_needs"`
}

// HasNeeds reports whether any accessibility requirement is declared.
func (a AccessibilityProfile) HasNeeds() bool {
	return len(a.MobilityNeeds) > 0 ||
		len(a.SensoryNeeds) > 0 ||
		len(a.CognitiveNeeds) > 0 ||
		len(a.DietaryRestrictions) > 0 ||
		len(a.MedicalRequirements) > 0 ||
		len(a.MobilityAids) > 0 ||
		len(a.AssistancePreferences) > 0 ||
		len(a.AccessibilityPriorities) > 0 ||
		len(a.BarrierConcerns) > 0 ||
		len(a.ServiceAnimal) > 0 ||
		len(a.CommunicationNeeds) > 0
}

// Preferences holds conversational preferences and learned facts.
type Preferences struct {
	CommunicationStyle  CommunicationStyle `json:"communication_style" firestore:"communication_style"`
	RiskTolerance       RiskTolerance      `json:"risk_tolerance" firestore:"risk_tolerance"`
	PlanningHorizon     string             `json:"planning_horizon" firestore:"planning_horizon"`
	LanguagePreferences []string           `json:"language_preferences" firestore:"language_preferences"`
	CurrencyPreference  string             `json:"currency_preference" firestore:"currency_preference"`
	Timezone            string             `json:"timezone" firestore:"timezone"`
	NotificationOptIn   bool               `json:"notification_opt_in" firestore:"notification_opt_in"`
	LearnedPreferences  map[string]string  `json:"learned_preferences" firestore:"learned_preferences"`
	FavoriteDestination string             `json:"favorite_destination,omitempty" firestore:"favorite_destination"`
}

// UserProfile is the aggregate persisted per traveler.
type UserProfile struct {
	UserID        string                   `json:"user_id" firestore:"user_id"`
	Basic         BasicInfo                `json:"basic_info" firestore:"basic_info"`
	Interests     TravelInterests          `json:"travel_interests" firestore:"travel_interests"`
	Accessibility AccessibilityProfile     `json:"accessibility_profile" firestore:"accessibility_profile"`
	Prefs         Preferences              `json:"preferences" firestore:"preferences"`
	TravelHistory []map[string]interface{} `json:"travel_history" firestore:"travel_history"`

	ProfileComplete     bool      `json:"profile_complete" firestore:"profile_complete"`
	OnboardingCompleted bool      `json:"onboarding_completed" firestore:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" firestore:"updated_at"`
	LastActiveAt        time.Time `json:"last_active" firestore:"last_active"`
}

// IsComplete reports whether the profile carries enough information for
// personalized planning: full basic identity plus either declared travel
// interests or declared accessibility needs.
func (p *UserProfile) IsComplete() bool {
	basic := p.Basic.Name != "" &&
		p.Basic.Email != "" &&
		p.Basic.Nationality != "" &&
		p.Basic.HomeLocation != ""
	if !basic {
		return false
	}

	interests := len(p.Interests.PreferredDestinations) > 0 ||
		len(p.Interests.TravelStyles) > 0 ||
		len(p.Interests.ActivityInterests) > 0

	accessibility := len(p.Accessibility.MobilityNeeds) > 0 ||
		len(p.Accessibility.SensoryNeeds) > 0 ||
		len(p.Accessibility.AssistancePreferences) > 0

	return interests || accessibility
}

// Normalize fills enum defaults so downstream consumers never branch on
// empty preference values, and recomputes the stored completeness flag.
func (p *UserProfile) Normalize() {
	if p.Prefs.CommunicationStyle == "" {
		p.Prefs.CommunicationStyle = CommunicationDetailed
	}
	if p.Prefs.RiskTolerance == "" {
		p.Prefs.RiskTolerance = RiskModerate
	}
	if p.Prefs.PlanningHorizon == "" {
		p.Prefs.PlanningHorizon = "1_month"
	}
	if len(p.Prefs.LanguagePreferences) == 0 {
		p.Prefs.LanguagePreferences = []string{"en"}
	}
	if p.Prefs.CurrencyPreference == "" {
		p.Prefs.CurrencyPreference = "USD"
	}
	if p.Prefs.Timezone == "" {
		p.Prefs.Timezone = "UTC"
	}
	if p.Interests.GroupSizePreference == "" {
		p.Interests.GroupSizePreference = GroupSizeFlexible
	}
	p.ProfileComplete = p.IsComplete()
}

// Clone returns a deep copy so in-memory storage never aliases caller state.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}

	cp := *p
	cp.Interests.PreferredDestinations = cloneSlice(p.Interests.PreferredDestinations)
	cp.Interests.TravelStyles = cloneStyles(p.Interests.TravelStyles)
	cp.Interests.AccommodationPreferences = cloneSlice(p.Interests.AccommodationPreferences)
	cp.Interests.ActivityInterests = cloneSlice(p.Interests.ActivityInterests)
	cp.Interests.TransportationPrefs = cloneSlice(p.Interests.TransportationPrefs)
	cp.Accessibility.MobilityNeeds = cloneSlice(p.Accessibility.MobilityNeeds)
	cp.Accessibility.SensoryNeeds = cloneSlice(p.Accessibility.SensoryNeeds)
	cp.Accessibility.CognitiveNeeds = cloneSlice(p.Accessibility.CognitiveNeeds)
	cp.Accessibility.DietaryRestrictions = cloneSlice(p.Accessibility.DietaryRestrictions)
	cp.Accessibility.MedicalRequirements = cloneSlice(p.Accessibility.MedicalRequirements)
	cp.Accessibility.MobilityAids = cloneSlice(p.Accessibility.MobilityAids)
	cp.Accessibility.AccessibilityPriorities = cloneSlice(p.Accessibility.AccessibilityPriorities)
	cp.Accessibility.BarrierConcerns = cloneSlice(p.Accessibility.BarrierConcerns)
	cp.Accessibility.CommunicationNeeds = cloneSlice(p.Accessibility.CommunicationNeeds)
	cp.Accessibility.AssistancePreferences = cloneMap(p.Accessibility.AssistancePreferences)
	cp.Accessibility.ServiceAnimal = cloneMap(p.Accessibility.ServiceAnimal)
	cp.Prefs.LanguagePreferences = cloneSlice(p.Prefs.LanguagePreferences)
	cp.Prefs.LearnedPreferences = cloneMap(p.Prefs.LearnedPreferences)
	cp.TravelHistory = cloneHistory(p.TravelHistory)

	return &cp
}

func cloneSlice(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneStyles(in []TravelStyle) []TravelStyle {
	if in == nil {
		return nil
	}
	out := make([]TravelStyle, len(in))
	copy(out, in)
	return out
}

func cloneMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneHistory(in []map[string]interface{}) []map[string]interface{} {
	if in == nil {
		return nil
	}
	out := make([]map[string]interface{}, len(in))
	for i, entry := range in {
		cp := make(map[string]interface{}, len(entry))
		for k, v := range entry {
			cp[k] = v
		}
		out[i] = cp
	}
	return out
}
