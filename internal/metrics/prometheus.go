package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Profile metrics
	ProfilesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "voyager_profiles_created_total",
			Help: "Total number of traveler profiles created",
		},
	)

	ProfilesUpdated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "voyager_profiles_updated_total",
			Help: "Total number of traveler profile updates",
		},
	)

	StoreFailovers = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "voyager_profile_store_failovers_total",
			Help: "Times the profile store fell back to in-memory storage",
		},
	)

	StoreOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voyager_profile_store_operations_total",
			Help: "Total profile store operations",
		},
		[]string{"store", "operation", "status"}, // status: success|error
	)

	// Agent metrics
	AgentCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voyager_agent_calls_total",
			Help: "Total number of agent invocations",
		},
		[]string{"agent", "status"}, // status: success|error
	)

	AgentLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "voyager_agent_latency_seconds",
			Help:    "Agent turn latency in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"agent"},
	)

	AgentTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voyager_agent_tokens_total",
			Help: "Total tokens used by agent turns",
		},
		[]string{"agent", "type"}, // type: input|output
	)

	ContextInjections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voyager_context_injections_total",
			Help: "Total personalized context injections into sessions",
		},
		[]string{"status"}, // status: success|missing_profile|error
	)

	// Tool metrics
	ToolExecutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voyager_tool_executions_total",
			Help: "Total number of tool executions",
		},
		[]string{"tool", "status"}, // status: success|error
	)

	ToolLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "voyager_tool_latency_seconds",
			Help:    "Tool execution latency in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"tool"},
	)

	// Email metrics
	EmailsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voyager_emails_sent_total",
			Help: "Total emails sent, including simulated deliveries",
		},
		[]string{"kind", "status"}, // kind: booking_confirmation|accessibility_request, status: sent|simulated|error
	)

	// Session metrics
	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "voyager_sessions_active",
			Help: "Current number of live chat sessions",
		},
	)

	// HTTP metrics
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voyager_http_requests_total",
			Help: "Total HTTP requests served",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "voyager_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"method", "path"},
	)
)

// Init registers all metrics with Prometheus
func Init() {
	prometheus.MustRegister(ProfilesCreated)
	prometheus.MustRegister(ProfilesUpdated)
	prometheus.MustRegister(StoreFailovers)
	prometheus.MustRegister(StoreOperations)

	prometheus.MustRegister(AgentCalls)
	prometheus.MustRegister(AgentLatency)
	prometheus.MustRegister(AgentTokens)
	prometheus.MustRegister(ContextInjections)

	prometheus.MustRegister(ToolExecutions)
	prometheus.MustRegister(ToolLatency)

	prometheus.MustRegister(EmailsSent)
	prometheus.MustRegister(SessionsActive)

	prometheus.MustRegister(HTTPRequests)
	prometheus.MustRegister(HTTPDuration)
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAgentCall records a completed agent turn.
func RecordAgentCall(agent string, latency time.Duration, inputTokens, outputTokens int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	AgentCalls.WithLabelValues(agent, status).Inc()
	AgentLatency.WithLabelValues(agent).Observe(latency.Seconds())

	if inputTokens > 0 {
		AgentTokens.WithLabelValues(agent, "input").Add(float64(inputTokens))
	}
	if outputTokens > 0 {
		AgentTokens.WithLabelValues(agent, "output").Add(float64(outputTokens))
	}
}

// RecordToolExecution records a tool execution
func RecordToolExecution(tool string, latency time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	ToolExecutions.WithLabelValues(tool, status).Inc()
	ToolLatency.WithLabelValues(tool).Observe(latency.Seconds())
}

// RecordStoreOperation records a profile store operation.
func RecordStoreOperation(store, operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	StoreOperations.WithLabelValues(store, operation, status).Inc()
}
