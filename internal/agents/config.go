package agents

// Role names of the agent tree. Each role has a matching prompt template
// under prompts/ and a personalized closing under instructions/roles/.
const (
	RoleRoot                  = "root_agent"
	RoleInspiration           = "inspiration_agent"
	RolePlanning              = "planning_agent"
	RoleBooking               = "booking_agent"
	RoleAccessibilityResearch = "accessibility_research_agent"
	RoleMobilityPreparation   = "mobility_preparation_agent"
	RoleTransitSupport        = "transit_support_agent"
	RoleBarrierNavigation     = "barrier_navigation_agent"
	RoleAccessibilityComms    = "accessibility_communication_agent"
	RoleSmartGuardrails       = "smart_guardrails_agent"
	RoleWebCheckin            = "web_checkin_agent"
	RoleNotification          = "notification_agent"
)

// AgentConfig describes one agent in the tree.
type AgentConfig struct {
	Name           string
	Description    string
	PromptTemplate string   // template ID under prompts/
	Tools          []string // tool names resolved via the tool registry
	OutputKey      string   // session state key for the agent's final text
}

// SubAgentConfigs defines the specialist agents attached to the root, in
// the order they are presented to the model.
var SubAgentConfigs = []AgentConfig{
	{
		Name:           RoleInspiration,
		Description:    "Suggests accessible destinations, activities and trip ideas",
		PromptTemplate: "prompts/inspiration_agent",
		OutputKey:      "inspiration_result",
	},
	{
		Name:           RolePlanning,
		Description:    "Plans accessible flights, seats and lodging for a chosen destination",
		PromptTemplate: "prompts/planning_agent",
		Tools:          []string{"search_accessible_venues", "search_accessible_routes"},
		OutputKey:      "planning_result",
	},
	{
		Name:           RoleBooking,
		Description:    "Completes bookings and confirms accessibility accommodations",
		PromptTemplate: "prompts/booking_agent",
		Tools:          []string{"memorize", "send_booking_confirmation"},
		OutputKey:      "booking_result",
	},
	{
		Name:           RoleAccessibilityResearch,
		Description:    "Researches venue accessibility, disabled traveler reviews and barrier assessments",
		PromptTemplate: "prompts/accessibility_research_agent",
		Tools:          []string{"search_accessible_venues", "get_airport_accessibility"},
		OutputKey:      "accessibility_research_result",
	},
	{
		Name:           RoleMobilityPreparation,
		Description:    "Prepares mobility aids, medical documentation and assistive equipment for travel",
		PromptTemplate: "prompts/mobility_preparation_agent",
		Tools:          []string{"memorize"},
		OutputKey:      "mobility_preparation_result",
	},
	{
		Name:           RoleTransitSupport,
		Description:    "Coordinates airport and station assistance and priority services",
		PromptTemplate: "prompts/transit_support_agent",
		Tools:          []string{"memorize", "get_airport_accessibility"},
		OutputKey:      "transit_support_result",
	},
	{
		Name:           RoleBarrierNavigation,
		Description:    "Finds accessible alternatives in real time when barriers come up",
		PromptTemplate: "prompts/barrier_navigation_agent",
		Tools:          []string{"memorize", "search_accessible_venues", "search_accessible_routes"},
		OutputKey:      "barrier_navigation_result",
	},
	{
		Name:           RoleAccessibilityComms,
		Description:    "Proactively communicates accessibility needs to hotels, airlines and transport providers",
		PromptTemplate: "prompts/accessibility_communication_agent",
		Tools:          []string{"memorize", "send_accessibility_request"},
		OutputKey:      "accessibility_communication_result",
	},
	{
		Name:           RoleSmartGuardrails,
		Description:    "Monitors travel plans for accessibility compliance gaps and safety risks",
		PromptTemplate: "prompts/smart_guardrails_agent",
		Tools:          []string{"memorize", "search_accessible_venues", "get_airport_accessibility"},
		OutputKey:      "smart_guardrails_result",
	},
	{
		Name:           RoleWebCheckin,
		Description:    "Automates flight and hotel check-in with accessible seating and room confirmation",
		PromptTemplate: "prompts/web_checkin_agent",
		Tools:          []string{"memorize", "get_airport_accessibility", "send_checkin_reminder"},
		OutputKey:      "web_checkin_result",
	},
	{
		Name:           RoleNotification,
		Description:    "Sends booking confirmations and accessibility notifications by email",
		PromptTemplate: "prompts/notification_agent",
		Tools:          []string{"memorize", "send_booking_confirmation", "send_accessibility_request"},
		OutputKey:      "notification_result",
	},
}

// RootConfig is the coordinator agent owning all sub-agents.
var RootConfig = AgentConfig{
	Name:           RoleRoot,
	Description:    "Inclusive travel concierge coordinating accessibility-aware specialist agents",
	PromptTemplate: "prompts/root_agent",
	Tools:          []string{"memorize"},
}

// Roles lists every role in the tree, root first.
func Roles() []string {
	roles := []string{RoleRoot}
	for _, cfg := range SubAgentConfigs {
		roles = append(roles, cfg.Name)
	}
	return roles
}
