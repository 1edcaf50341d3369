package templates_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyager/pkg/templates"
)

func TestGet_LoadsEmbeddedTemplates(t *testing.T) {
	reg := templates.Get()

	ids := reg.List()
	assert.NotEmpty(t, ids)
	assert.Contains(t, ids, "instructions/base")
	assert.Contains(t, ids, "email/booking_confirmation")
}

func TestListPrefix_DiscoversRoleTemplates(t *testing.T) {
	reg := templates.Get()

	roles := reg.ListPrefix("instructions/roles/")
	require.NotEmpty(t, roles)
	for _, id := range roles {
		assert.True(t, strings.HasPrefix(id, "instructions/roles/"))
	}
	assert.Contains(t, roles, "instructions/roles/root_agent")
	assert.Contains(t, roles, "instructions/roles/notification_agent")
}

func TestRender_BookingConfirmation(t *testing.T) {
	reg := templates.Get()

	out, err := reg.Render("email/booking_confirmation", map[string]interface{}{
		"UserName":    "Maya",
		"Destination": "Lisbon",
		"StartDate":   "2026-09-10",
		"EndDate":     "2026-09-17",
		"Reference":   "VOY-1234",
		"MobilityNeeds": []string{
			"wheelchair accessible room",
		},
		"AssistancePreferences": map[string]string{
			"airport_assistance": "meet and assist",
		},
		"SpecialRequests": "",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Maya")
	assert.Contains(t, out, "Lisbon")
	assert.Contains(t, out, "VOY-1234")
	assert.Contains(t, out, "wheelchair accessible room")
}

func TestRender_UnknownTemplate(t *testing.T) {
	reg := templates.Get()

	_, err := reg.Render("does/not/exist", nil)
	assert.Error(t, err)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "a, b", templates.Join([]string{"a", "b"}, "none"))
	assert.Equal(t, "none", templates.Join(nil, "none"))
	assert.Equal(t, "value", templates.OrElse("value", "fallback"))
	assert.Equal(t, "fallback", templates.OrElse("  ", "fallback"))
	assert.Equal(t, "airport assistance", templates.SnakeToWords("airport_assistance"))
}
