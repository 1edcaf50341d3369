package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyager/internal/adapters/config"
	"voyager/internal/tools"
	"voyager/pkg/templates"
)

func TestRegister_AddsNotificationTools(t *testing.T) {
	reg := tools.NewRegistry()
	Register(reg, NewService(config.SMTPConfig{}), nil)

	names := []string{
		"send_booking_confirmation",
		"send_accessibility_request",
		"send_checkin_reminder",
	}
	for _, name := range names {
		tl, ok := reg.Get(name)
		require.True(t, ok, "tool %s not registered", name)
		assert.Equal(t, name, tl.Name())
	}

	resolved, err := reg.Resolve(names)
	require.NoError(t, err)
	assert.Len(t, resolved, len(names))
}

func TestCheckinReminderTemplate(t *testing.T) {
	body, err := templates.Get().Render("email/checkin_reminder", checkinData{
		UserName:          "Maya",
		FlightNumber:      "AC123",
		DepartureDate:     "2026-09-12",
		SeatNumber:        "14C",
		WheelchairService: "aisle chair at gate",
		PriorityBoarding:  true,
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Dear Maya")
	assert.Contains(t, body, "AC123")
	assert.Contains(t, body, "14C")
	assert.Contains(t, body, "Wheelchair assistance: aisle chair at gate")
	assert.Contains(t, body, "Priority boarding confirmed")
	assert.NotContains(t, body, "Special meal")
}
