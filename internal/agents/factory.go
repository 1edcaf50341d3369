package agents

import (
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	adkmodel "google.golang.org/adk/model"

	"voyager/internal/tools"
	"voyager/pkg/errors"
	"voyager/pkg/templates"
)

// FactoryDeps gathers external dependencies needed to instantiate agents.
type FactoryDeps struct {
	Model        adkmodel.LLM
	ToolRegistry *tools.Registry
	Templates    *templates.Registry
}

// Factory creates the configured agent tree.
type Factory struct {
	model        adkmodel.LLM
	toolRegistry *tools.Registry
	templates    *templates.Registry
}

// NewFactory builds an agent factory with required dependencies.
func NewFactory(deps FactoryDeps) (*Factory, error) {
	if deps.Model == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "model is required")
	}
	if deps.ToolRegistry == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "tool registry is required")
	}
	if deps.Templates == nil {
		deps.Templates = templates.Get()
	}

	return &Factory{
		model:        deps.Model,
		toolRegistry: deps.ToolRegistry,
		templates:    deps.Templates,
	}, nil
}

// CreateAgent constructs a single ADK agent from a config.
func (f *Factory) CreateAgent(cfg AgentConfig, subAgents []agent.Agent) (agent.Agent, error) {
	agentTools, err := f.toolRegistry.Resolve(cfg.Tools)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve tools for %s", cfg.Name)
	}

	toolInfo := make([]tools.Definition, 0, len(cfg.Tools))
	byName := map[string]tools.Definition{}
	for _, def := range f.toolRegistry.Definitions() {
		byName[def.Name] = def
	}
	for _, name := range cfg.Tools {
		toolInfo = append(toolInfo, byName[name])
	}

	instruction := ""
	if cfg.PromptTemplate != "" {
		data := map[string]interface{}{
			"AgentName": cfg.Name,
			"Tools":     toolInfo,
		}
		instruction, err = f.templates.Render(cfg.PromptTemplate, data)
		if err != nil {
			return nil, errors.Wrapf(err, "render prompt for %s", cfg.Name)
		}
	}

	return llmagent.New(llmagent.Config{
		Name:        cfg.Name,
		Description: cfg.Description,
		Model:       f.model,
		Tools:       agentTools,
		Instruction: instruction,
		OutputKey:   cfg.OutputKey,
		SubAgents:   subAgents,
	})
}

// CreateTree builds the full concierge tree: every specialist sub-agent
// attached to the coordinating root.
func (f *Factory) CreateTree() (agent.Agent, error) {
	subAgents := make([]agent.Agent, 0, len(SubAgentConfigs))
	for _, cfg := range SubAgentConfigs {
		sub, err := f.CreateAgent(cfg, nil)
		if err != nil {
			return nil, err
		}
		subAgents = append(subAgents, sub)
	}

	return f.CreateAgent(RootConfig, subAgents)
}
