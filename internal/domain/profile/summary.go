package profile

import "time"

// AccessibilitySummary is the condensed accessibility view handed to agents
// and returned by the profile summary endpoint.
type AccessibilitySummary struct {
	HasMobilityNeeds        bool              `json:"has_mobility_needs"`
	HasSensoryNeeds         bool              `json:"has_sensory_needs"`
	HasCognitiveNeeds       bool              `json:"has_cognitive_needs"`
	MobilityNeeds           []string          `json:"mobility_needs"`
	SensoryNeeds            []string          `json:"sensory_needs"`
	CognitiveNeeds          []string          `json:"cognitive_needs"`
	MobilityAids            []string          `json:"mobility_aids"`
	DietaryRestrictions     []string          `json:"dietary_restrictions"`
	MedicalRequirements     []string          `json:"medical_requirements"`
	AssistancePreferences   map[string]string `json:"assistance_preferences"`
	AccessibilityPriorities []string          `json:"accessibility_priorities"`
	BarrierConcerns         []string          `json:"barrier_concerns"`
	ServiceAnimal           map[string]string `json:"service_animal"`
	CommunicationNeeds      []string          `json:"communication_needs"`
}

// TravelSummary is the condensed travel-preference view.
type TravelSummary struct {
	PreferredDestinations    []string      `json:"preferred_destinations"`
	TravelStyles             []TravelStyle `json:"travel_styles"`
	BudgetRange              BudgetRange   `json:"budget_range"`
	GroupSizePreference      string        `json:"group_size_preference"`
	ActivityInterests        []string      `json:"activity_interests"`
	AccommodationPreferences []string      `json:"accommodation_preferences"`
	TransportationPrefs      []string      `json:"transportation_preferences"`
}

// Summary is the condensed profile view returned by list and summary
// endpoints. The derived counts sit at the top level so list consumers
// never have to walk the nested sections.
type Summary struct {
	UserID                  string               `json:"user_id"`
	Name                    string               `json:"name"`
	Email                   string               `json:"email"`
	CreatedAt               time.Time            `json:"created_at"`
	LastActive              time.Time            `json:"last_active"`
	ProfileComplete         bool                 `json:"profile_complete"`
	OnboardingCompleted     bool                 `json:"onboarding_completed"`
	AccessibilityNeedsCount int                  `json:"accessibility_needs_count"`
	TravelInterestsCount    int                  `json:"travel_interests_count"`
	Accessibility           AccessibilitySummary `json:"accessibility_summary"`
	Travel                  TravelSummary        `json:"travel_summary"`
}

// AccessibilitySummaryOf condenses the accessibility profile.
func AccessibilitySummaryOf(a AccessibilityProfile) AccessibilitySummary {
	return AccessibilitySummary{
		HasMobilityNeeds:        len(a.MobilityNeeds) > 0,
		HasSensoryNeeds:         len(a.SensoryNeeds) > 0,
		HasCognitiveNeeds:       len(a.CognitiveNeeds) > 0,
		MobilityNeeds:           emptyIfNil(a.MobilityNeeds),
		SensoryNeeds:            emptyIfNil(a.SensoryNeeds),
		CognitiveNeeds:          emptyIfNil(a.CognitiveNeeds),
		MobilityAids:            emptyIfNil(a.MobilityAids),
		DietaryRestrictions:     emptyIfNil(a.DietaryRestrictions),
		MedicalRequirements:     emptyIfNil(a.MedicalRequirements),
		AssistancePreferences:   emptyMapIfNil(a.AssistancePreferences),
		AccessibilityPriorities: emptyIfNil(a.AccessibilityPriorities),
		BarrierConcerns:         emptyIfNil(a.BarrierConcerns),
		ServiceAnimal:           emptyMapIfNil(a.ServiceAnimal),
		CommunicationNeeds:      emptyIfNil(a.CommunicationNeeds),
	}
}

// TravelSummaryOf condenses travel interests.
func TravelSummaryOf(t TravelInterests) TravelSummary {
	styles := t.TravelStyles
	if styles == nil {
		styles = []TravelStyle{}
	}
	return TravelSummary{
		PreferredDestinations:    emptyIfNil(t.PreferredDestinations),
		TravelStyles:             styles,
		BudgetRange:              t.BudgetRange,
		GroupSizePreference:      t.GroupSizePreference,
		ActivityInterests:        emptyIfNil(t.ActivityInterests),
		AccommodationPreferences: emptyIfNil(t.AccommodationPreferences),
		TransportationPrefs:      emptyIfNil(t.TransportationPrefs),
	}
}

// SummaryOf builds the full profile summary. The accessibility count covers
// mobility, sensory and cognitive entries; the travel count covers
// destinations, activities and accommodation preferences.
func SummaryOf(p *UserProfile) Summary {
	return Summary{
		UserID:              p.UserID,
		Name:                p.Basic.Name,
		Email:               p.Basic.Email,
		CreatedAt:           p.CreatedAt,
		LastActive:          p.LastActiveAt,
		ProfileComplete:     p.IsComplete(),
		OnboardingCompleted: p.OnboardingCompleted,
		AccessibilityNeedsCount: len(p.Accessibility.MobilityNeeds) +
			len(p.Accessibility.SensoryNeeds) +
			len(p.Accessibility.CognitiveNeeds),
		TravelInterestsCount: len(p.Interests.PreferredDestinations) +
			len(p.Interests.ActivityInterests) +
			len(p.Interests.AccommodationPreferences),
		Accessibility: AccessibilitySummaryOf(p.Accessibility),
		Travel:        TravelSummaryOf(p.Interests),
	}
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func emptyMapIfNil(in map[string]string) map[string]string {
	if in == nil {
		return map[string]string{}
	}
	return in
}
