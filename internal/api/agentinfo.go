package api

import (
	"net/http"

	"voyager/internal/agents"
	"voyager/internal/tools"
)

// AgentInfoHandler exposes the agent tree topology for clients
type AgentInfoHandler struct {
	registry  *tools.Registry
	modelName string
}

// NewAgentInfoHandler creates an agent info handler
func NewAgentInfoHandler(registry *tools.Registry, modelName string) *AgentInfoHandler {
	return &AgentInfoHandler{
		registry:  registry,
		modelName: modelName,
	}
}

type subAgentInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tools       []string `json:"tools"`
}

type agentInfoResponse struct {
	AgentName   string             `json:"agent_name"`
	Description string             `json:"description"`
	Model       string             `json:"model"`
	SubAgents   []subAgentInfo     `json:"sub_agents"`
	Tools       []tools.Definition `json:"tools"`
}

// HandleInfo handles GET /agent/info
func (h *AgentInfoHandler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	subAgents := make([]subAgentInfo, 0, len(agents.SubAgentConfigs))
	for _, cfg := range agents.SubAgentConfigs {
		subAgents = append(subAgents, subAgentInfo{
			Name:        cfg.Name,
			Description: cfg.Description,
			Tools:       append([]string{}, cfg.Tools...),
		})
	}

	writeJSON(w, http.StatusOK, agentInfoResponse{
		AgentName:   agents.RootConfig.Name,
		Description: agents.RootConfig.Description,
		Model:       h.modelName,
		SubAgents:   subAgents,
		Tools:       h.registry.Definitions(),
	})
}
