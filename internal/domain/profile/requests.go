package profile

// CreateRequest is the payload for registering a new traveler profile.
// UserID is optional; the service assigns one when absent.
type CreateRequest struct {
	UserID        string                `json:"user_id,omitempty"`
	Basic         BasicInfo             `json:"basic_info"`
	Interests     *TravelInterests      `json:"travel_interests,omitempty"`
	Accessibility *AccessibilityProfile `json:"accessibility_profile,omitempty"`
	Prefs         *Preferences          `json:"preferences,omitempty"`
}

// UpdateRequest replaces whole sections of an existing profile. Sections
// left nil are preserved untouched; sections provided are replaced
// wholesale, so callers send the full section content they want to keep.
type UpdateRequest struct {
	Basic         *BasicInfo            `json:"basic_info,omitempty"`
	Interests     *TravelInterests      `json:"travel_interests,omitempty"`
	Accessibility *AccessibilityProfile `json:"accessibility_profile,omitempty"`
	Prefs         *Preferences          `json:"preferences,omitempty"`
}

// Empty reports whether the update carries no sections at all.
func (r UpdateRequest) Empty() bool {
	return r.Basic == nil && r.Interests == nil && r.Accessibility == nil && r.Prefs == nil
}

// Apply copies the provided sections onto the profile.
func (r UpdateRequest) Apply(p *UserProfile) {
	if r.Basic != nil {
		p.Basic = *r.Basic
	}
	if r.Interests != nil {
		p.Interests = *r.Interests
	}
	if r.Accessibility != nil {
		p.Accessibility = *r.Accessibility
	}
	if r.Prefs != nil {
		p.Prefs = *r.Prefs
	}
}
