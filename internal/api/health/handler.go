package health

import (
	"encoding/json"
	"net/http"
	"time"

	"voyager/pkg/logger"

	"voyager/internal/services/chatsession"
	profilesvc "voyager/internal/services/profile"
)

// Handler provides health check endpoints
type Handler struct {
	log         *logger.Logger
	profiles    *profilesvc.Service
	sessions    *chatsession.Registry
	startTime   time.Time
	serviceName string
	version     string
}

// New creates a new health check handler
func New(
	log *logger.Logger,
	profiles *profilesvc.Service,
	sessions *chatsession.Registry,
	serviceName string,
	version string,
) *Handler {
	return &Handler{
		log:         log,
		profiles:    profiles,
		sessions:    sessions,
		startTime:   time.Now(),
		serviceName: serviceName,
		version:     version,
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status      string                     `json:"status"` // "healthy", "degraded", "unhealthy"
	Service     string                     `json:"service"`
	Version     string                     `json:"version"`
	Uptime      string                     `json:"uptime"`
	Timestamp   string                     `json:"timestamp"`
	Checks      map[string]ComponentHealth `json:"checks"`
	ErrorDetail string                     `json:"error_detail,omitempty"`
}

// ComponentHealth represents health of a single component
type ComponentHealth struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
	Error  string `json:"error,omitempty"`
}

// HandleLiveness returns 200 OK if service is running
// Used by Kubernetes liveness probe
func (h *Handler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "alive",
	})
}

// HandleReadiness checks if service is ready to accept traffic
// Used by Kubernetes readiness probe
//
// A profile store running on the in-memory fallback still serves
// traffic, so a degraded store does not fail readiness.
func (h *Handler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	checks := h.runChecks()
	allServing := true
	for _, c := range checks {
		if c.Status == "unhealthy" {
			allServing = false
		}
	}

	status := HealthStatus{
		Status:    "healthy",
		Service:   h.serviceName,
		Version:   h.version,
		Uptime:    time.Since(h.startTime).String(),
		Timestamp: time.Now().Format(time.RFC3339),
		Checks:    checks,
	}

	statusCode := http.StatusOK
	if !allServing {
		status.Status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
		h.log.Warnw("Readiness check failed", "checks", checks)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(status)
}

// HandleHealth returns detailed health status (includes all checks)
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	checks := h.runChecks()

	status := HealthStatus{
		Status:    "healthy",
		Service:   h.serviceName,
		Version:   h.version,
		Uptime:    time.Since(h.startTime).String(),
		Timestamp: time.Now().Format(time.RFC3339),
		Checks:    checks,
	}

	statusCode := http.StatusOK
	unhealthy := 0
	degraded := 0
	for _, c := range checks {
		switch c.Status {
		case "unhealthy":
			unhealthy++
		case "degraded":
			degraded++
		}
	}
	if unhealthy == len(checks) && len(checks) > 0 {
		status.Status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	} else if unhealthy > 0 || degraded > 0 {
		status.Status = "degraded" // Still return 200 for degraded
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(status)
}

func (h *Handler) runChecks() map[string]ComponentHealth {
	checks := make(map[string]ComponentHealth)
	checks["profile_store"] = h.checkProfileStore()
	checks["sessions"] = h.checkSessions()
	return checks
}

// checkProfileStore reports which store backend is serving profiles
func (h *Handler) checkProfileStore() ComponentHealth {
	if h.profiles == nil {
		return ComponentHealth{
			Status: "unhealthy",
			Error:  "profile service not configured",
		}
	}

	if h.profiles.Degraded() {
		return ComponentHealth{
			Status: "degraded",
			Detail: "serving from " + h.profiles.StoreName(),
		}
	}

	return ComponentHealth{
		Status: "healthy",
		Detail: "serving from " + h.profiles.StoreName(),
	}
}

// checkSessions verifies the in-process session registry
func (h *Handler) checkSessions() ComponentHealth {
	if h.sessions == nil {
		return ComponentHealth{
			Status: "unhealthy",
			Error:  "session registry not configured",
		}
	}

	return ComponentHealth{
		Status: "healthy",
		Detail: "active sessions tracked in process",
	}
}
