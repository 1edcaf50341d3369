package email

import (
	"fmt"

	"google.golang.org/adk/tool"

	"voyager/internal/tools"
	"voyager/pkg/errors"
	"voyager/pkg/templates"
)

const (
	kindBookingConfirmation  = "booking_confirmation"
	kindAccessibilityRequest = "accessibility_request"
	kindCheckinReminder      = "checkin_reminder"
)

// bookingData feeds the booking confirmation template.
type bookingData struct {
	UserName              string
	Destination           string
	StartDate             string
	EndDate               string
	Reference             string
	MobilityNeeds         []string
	AssistancePreferences map[string]string
	SpecialRequests       string
}

// requestData feeds the provider accessibility request template.
type requestData struct {
	ProviderName          string
	GuestName             string
	Reference             string
	ArrivalDate           string
	DepartureDate         string
	MobilityNeeds         []string
	SensoryNeeds          []string
	AssistancePreferences map[string]string
	EquipmentNeeds        []string
	DietaryRestrictions   []string
}

// checkinData feeds the check-in reminder template.
type checkinData struct {
	UserName          string
	FlightNumber      string
	DepartureDate     string
	DepartureTime     string
	DepartureAirport  string
	ArrivalTime       string
	ArrivalAirport    string
	SeatNumber        string
	WheelchairService string
	PriorityBoarding  bool
	SpecialMeal       string
	AssistanceContact string
}

// Register adds the notification tools backed by the email service.
func Register(reg *tools.Registry, svc *Service, registry *templates.Registry) {
	if registry == nil {
		registry = templates.Get()
	}

	reg.Register(tools.Definition{
		Name:        "send_booking_confirmation",
		Description: "Email a booking confirmation with accessibility arrangements to the traveler",
		Category:    "notification",
	}, func(_ tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
		to := stringArg(args, "user_email")
		name := stringArg(args, "user_name")
		if to == "" || name == "" {
			return nil, errors.Wrap(errors.ErrInvalidInput, "user_email and user_name are required")
		}

		data := bookingData{
			UserName:              name,
			Destination:           stringArg(args, "destination"),
			StartDate:             stringArg(args, "start_date"),
			EndDate:               stringArg(args, "end_date"),
			Reference:             stringArg(args, "reference"),
			MobilityNeeds:         stringSliceArg(args, "mobility_needs"),
			AssistancePreferences: stringMapArg(args, "assistance_preferences"),
			SpecialRequests:       stringArg(args, "special_requests"),
		}

		body, err := registry.Render("email/booking_confirmation", data)
		if err != nil {
			return nil, err
		}

		subject := fmt.Sprintf("Booking Confirmation - %s", orElse(data.Destination, "Your Trip"))
		if err := svc.Send(kindBookingConfirmation, to, subject, body); err != nil {
			return nil, err
		}

		return map[string]interface{}{
			"status":    "sent",
			"simulated": svc.Simulated(),
			"recipient": to,
			"subject":   subject,
		}, nil
	})

	reg.Register(tools.Definition{
		Name:        "send_accessibility_request",
		Description: "Email a hotel or airline asking them to confirm the guest's accessibility requirements",
		Category:    "notification",
	}, func(_ tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
		to := stringArg(args, "provider_email")
		provider := stringArg(args, "provider_name")
		guest := stringArg(args, "guest_name")
		if to == "" || provider == "" || guest == "" {
			return nil, errors.Wrap(errors.ErrInvalidInput,
				"provider_email, provider_name and guest_name are required")
		}

		data := requestData{
			ProviderName:          provider,
			GuestName:             guest,
			Reference:             stringArg(args, "reference"),
			ArrivalDate:           stringArg(args, "arrival_date"),
			DepartureDate:         stringArg(args, "departure_date"),
			MobilityNeeds:         stringSliceArg(args, "mobility_needs"),
			SensoryNeeds:          stringSliceArg(args, "sensory_needs"),
			AssistancePreferences: stringMapArg(args, "assistance_preferences"),
			EquipmentNeeds:        stringSliceArg(args, "equipment_needs"),
			DietaryRestrictions:   stringSliceArg(args, "dietary_restrictions"),
		}

		body, err := registry.Render("email/accessibility_request", data)
		if err != nil {
			return nil, err
		}

		subject := fmt.Sprintf("Accessibility Requirements - %s - Booking %s",
			guest, orElse(data.Reference, "pending"))
		if err := svc.Send(kindAccessibilityRequest, to, subject, body); err != nil {
			return nil, err
		}

		return map[string]interface{}{
			"status":    "sent",
			"simulated": svc.Simulated(),
			"recipient": to,
			"provider":  provider,
			"subject":   subject,
		}, nil
	})

	reg.Register(tools.Definition{
		Name:        "send_checkin_reminder",
		Description: "Email the traveler that check-in completed, with seat and accessibility service confirmations",
		Category:    "notification",
	}, func(_ tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
		to := stringArg(args, "user_email")
		name := stringArg(args, "user_name")
		if to == "" || name == "" {
			return nil, errors.Wrap(errors.ErrInvalidInput, "user_email and user_name are required")
		}

		data := checkinData{
			UserName:          name,
			FlightNumber:      stringArg(args, "flight_number"),
			DepartureDate:     stringArg(args, "departure_date"),
			DepartureTime:     stringArg(args, "departure_time"),
			DepartureAirport:  stringArg(args, "departure_airport"),
			ArrivalTime:       stringArg(args, "arrival_time"),
			ArrivalAirport:    stringArg(args, "arrival_airport"),
			SeatNumber:        stringArg(args, "seat_number"),
			WheelchairService: stringArg(args, "wheelchair_assistance"),
			PriorityBoarding:  boolArg(args, "priority_boarding"),
			SpecialMeal:       stringArg(args, "special_meal"),
			AssistanceContact: stringArg(args, "assistance_contact"),
		}

		body, err := registry.Render("email/checkin_reminder", data)
		if err != nil {
			return nil, err
		}

		subject := fmt.Sprintf("Check-in Reminder - Flight %s", orElse(data.FlightNumber, "N/A"))
		if err := svc.Send(kindCheckinReminder, to, subject, body); err != nil {
			return nil, err
		}

		return map[string]interface{}{
			"status":    "sent",
			"simulated": svc.Simulated(),
			"recipient": to,
			"subject":   subject,
		}, nil
	})
}

func boolArg(args map[string]interface{}, key string) bool {
	v, ok := args[key].(bool)
	return ok && v
}

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func stringSliceArg(args map[string]interface{}, key string) []string {
	switch v := args[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func stringMapArg(args map[string]interface{}, key string) map[string]string {
	switch v := args[key].(type) {
	case map[string]string:
		return v
	case map[string]interface{}:
		out := make(map[string]string, len(v))
		for k, item := range v {
			if s, ok := item.(string); ok {
				out[k] = s
			}
		}
		return out
	}
	return nil
}

func orElse(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
