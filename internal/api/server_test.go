package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyager/internal/api"
	"voyager/internal/api/health"
	"voyager/internal/repository/memory"
	"voyager/internal/services/chatsession"
	profilesvc "voyager/internal/services/profile"
	"voyager/internal/tools"
	"voyager/internal/tools/accessibility"
	"voyager/pkg/logger"
)

type fixture struct {
	handler  http.Handler
	profiles *profilesvc.Service
	sessions *chatsession.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logger.Get()
	profiles := profilesvc.NewService(nil, memory.NewProfileStore())
	sessions := chatsession.NewRegistry("voyager", nil)

	registry := tools.NewRegistry()
	accessibility.Register(registry)

	srv := api.NewServer(
		api.ServerConfig{Port: 0, ServiceName: "voyager", Version: "test"},
		api.Handlers{
			Health:    health.New(log, profiles, sessions, "voyager", "test"),
			Users:     api.NewUserHandler(profiles, log),
			Chat:      api.NewChatHandler(nil, log),
			Sessions:  api.NewSessionHandler(sessions, log),
			AgentInfo: api.NewAgentInfoHandler(registry, "gemini-2.5-flash"),
		},
		log,
	)

	return &fixture{handler: srv.Handler(), profiles: profiles, sessions: sessions}
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	out := make(map[string]interface{})
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func createBody(userID string) map[string]interface{} {
	return map[string]interface{}{
		"user_id": userID,
		"basic_info": map[string]interface{}{
			"name":          "Maya",
			"email":         "maya@example.com",
			"nationality":   "Canadian",
			"home_location": "Toronto",
		},
		"accessibility_profile": map[string]interface{}{
			"mobility_needs": []string{"wheelchair"},
		},
	}
}

func TestUsers_CreateAndGet(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/users", createBody("u-1"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode(t, rec)
	assert.Equal(t, "u-1", created["user_id"])
	assert.Equal(t, "User profile created successfully", created["message"])
	prof, ok := created["profile"].(map[string]interface{})
	require.True(t, ok)
	basic, ok := prof["basic_info"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Maya", basic["name"])

	rec = f.do(t, http.MethodGet, "/users/u-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "u-1", body["user_id"])
}

func TestUsers_CreateValidation(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/users", map[string]interface{}{
		"basic_info": map[string]interface{}{"email": "maya@example.com"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "basic_info.name", body["field"])
}

func TestUsers_DuplicateCreateConflicts(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/users", createBody("u-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/users", createBody("u-1"))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUsers_GetMissingIs404(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/users/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUsers_UpdatePreservesSections(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/users", createBody("u-1"))

	rec := f.do(t, http.MethodPut, "/users/u-1", map[string]interface{}{
		"travel_interests": map[string]interface{}{
			"preferred_destinations": []string{"Kyoto"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	p, err := f.profiles.Get(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Kyoto"}, p.Interests.PreferredDestinations)
	assert.Equal(t, []string{"wheelchair"}, p.Accessibility.MobilityNeeds)
}

func TestUsers_UpdateEmptyBodyRejected(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/users", createBody("u-1"))

	rec := f.do(t, http.MethodPut, "/users/u-1", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUsers_DeleteMissingIs404(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/users", createBody("u-1"))

	rec := f.do(t, http.MethodDelete, "/users/u-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["deleted"])

	rec = f.do(t, http.MethodDelete, "/users/u-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodDelete, "/users/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUsers_ListPagination(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"u-1", "u-2", "u-3"} {
		rec := f.do(t, http.MethodPost, "/users", createBody(id))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := f.do(t, http.MethodGet, "/users?limit=2&offset=0", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(3), body["total"])
	users, ok := body["users"].([]interface{})
	require.True(t, ok)
	require.Len(t, users, 2)

	first, ok := users[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "maya@example.com", first["email"])
	assert.Contains(t, first, "created_at")
	assert.Contains(t, first, "last_active")
	assert.Equal(t, float64(1), first["accessibility_needs_count"])
	assert.Contains(t, first, "travel_interests_count")
}

func TestUsers_Summary(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/users", createBody("u-1"))

	rec := f.do(t, http.MethodGet, "/users/u-1/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "u-1", body["user_id"])

	assert.Equal(t, float64(1), body["accessibility_needs_count"])

	acc, ok := body["accessibility_summary"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, acc["has_mobility_needs"])
	assert.Contains(t, acc, "accessibility_priorities")
	assert.Contains(t, acc, "communication_needs")
	assert.Contains(t, acc, "service_animal")
}

func TestUsers_CompleteOnboarding(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/users", createBody("u-1"))

	rec := f.do(t, http.MethodPost, "/users/u-1/onboarding/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["onboarding_completed"])
}

func TestSessions_ListAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.sessions.GetOrCreate(ctx, "s-1", "alice")
	require.NoError(t, err)

	rec := f.do(t, http.MethodGet, "/sessions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(1), body["total_sessions"])

	rec = f.do(t, http.MethodDelete, "/sessions/s-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "deleted", decode(t, rec)["status"])

	// Deleting a missing session is a 404
	rec = f.do(t, http.MethodDelete, "/sessions/s-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAgentInfo(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/agent/info", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)

	assert.Equal(t, "root_agent", body["agent_name"])
	assert.Equal(t, "gemini-2.5-flash", body["model"])
	assert.Len(t, body["sub_agents"], 11)
}

func TestHealth_ReportsDegradedStore(t *testing.T) {
	f := newFixture(t)

	// Fixture has no document store, so the profile component is degraded
	rec := f.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "degraded", body["status"])

	checks, ok := body["checks"].(map[string]interface{})
	require.True(t, ok)
	store, ok := checks["profile_store"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "degraded", store["status"])
}

func TestReadiness_ServesWhileDegraded(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoot_ServiceInfo(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "voyager", body["service"])
	assert.Equal(t, "running", body["status"])
}

func TestCORS_Preflight(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodOptions, "/users", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
