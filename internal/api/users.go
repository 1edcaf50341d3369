package api

import (
	"net/http"
	"strconv"

	"voyager/pkg/errors"
	"voyager/pkg/logger"

	"voyager/internal/domain/profile"
	profilesvc "voyager/internal/services/profile"
)

// UserHandler serves the traveler profile CRUD endpoints
type UserHandler struct {
	profiles *profilesvc.Service
	log      *logger.Logger
}

// NewUserHandler creates a user profile handler
func NewUserHandler(profiles *profilesvc.Service, log *logger.Logger) *UserHandler {
	return &UserHandler{
		profiles: profiles,
		log:      log.With("component", "user_handler"),
	}
}

// userListResponse is the paginated list payload
type userListResponse struct {
	Users  []profile.Summary `json:"users"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// userResponse wraps a profile mutation result with a status message.
type userResponse struct {
	UserID  string               `json:"user_id"`
	Profile *profile.UserProfile `json:"profile"`
	Message string               `json:"message"`
}

// HandleCreate handles POST /users
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req profile.CreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	p, err := h.profiles.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		UserID:  p.UserID,
		Profile: p,
		Message: "User profile created successfully",
	})
}

// HandleGet handles GET /users/{id}
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.profiles.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// HandleUpdate handles PUT /users/{id}
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req profile.UpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	p, err := h.profiles.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// HandleDelete handles DELETE /users/{id}
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	deleted, err := h.profiles.Delete(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, errors.Wrapf(errors.ErrProfileNotFound, "user %s", userID))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"deleted": true,
	})
}

// HandleList handles GET /users with limit/offset pagination
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", profilesvc.DefaultListLimit)
	offset := intQuery(r, "offset", 0)

	profiles, total, err := h.profiles.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	summaries := make([]profile.Summary, 0, len(profiles))
	for _, p := range profiles {
		summaries = append(summaries, profile.SummaryOf(p))
	}

	writeJSON(w, http.StatusOK, userListResponse{
		Users:  summaries,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// HandleSummary handles GET /users/{id}/summary
func (h *UserHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.profiles.Summary(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// HandleCompleteOnboarding handles POST /users/{id}/onboarding/complete
func (h *UserHandler) HandleCompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	p, err := h.profiles.SetOnboardingCompleted(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func intQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
