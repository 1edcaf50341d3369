package bootstrap

import (
	"context"
	"sync"

	"cloud.google.com/go/firestore"
	"google.golang.org/adk/agent"

	"voyager/internal/adapters/config"
	"voyager/internal/agents"
	"voyager/internal/api"
	"voyager/internal/api/health"
	"voyager/internal/domain/profile"
	"voyager/internal/services/chat"
	"voyager/internal/services/chatsession"
	profilesvc "voyager/internal/services/profile"
	"voyager/internal/services/usercontext"
	"voyager/internal/tools"
	toolemail "voyager/internal/tools/email"
	toolmemory "voyager/internal/tools/memory"
	"voyager/pkg/errors"
	"voyager/pkg/logger"
	"voyager/pkg/templates"
)

// Container holds all application dependencies and their lifecycle
// Components are organized in initialization order
type Container struct {
	// Core configuration & logging
	Config       *config.Config
	Log          *logger.Logger
	ErrorTracker errors.Tracker

	// Infrastructure Layer (Data stores)
	Firestore *firestore.Client // nil when running memory-only

	// Profile stores
	Stores *Stores

	// Domain Layer - Services
	Services *Services

	// Agent runtime
	Agents *Agents

	// Application Layer
	Application *Application

	// Lifecycle management
	WG      *sync.WaitGroup
	Context context.Context
	Cancel  context.CancelFunc
}

// Stores groups the profile store backends
type Stores struct {
	Primary  profile.Store // document store, nil without Firestore credentials
	Fallback profile.Store // in-memory store, always present
}

// Services groups all domain services
type Services struct {
	Profiles *profilesvc.Service   // Profile CRUD with store failover
	Sessions *chatsession.Registry // Chat session bookkeeping over ADK sessions
	Contexts *usercontext.Builder  // Personalized context injection
	Chat     *chat.Service         // Conversational turns through the agent tree
	Memory   *toolmemory.Store     // Facts captured by the memorize tool
	Email    *toolemail.Service    // Outbound notification delivery
	Tools    *tools.Registry       // Agent tool catalog
	Prompts  *templates.Registry   // Instruction and email templates
}

// Agents groups the agent runtime components
type Agents struct {
	Factory   *agents.Factory
	Root      agent.Agent
	ModelName string
}

// Application groups application layer components
type Application struct {
	HTTPServer    *api.Server
	HealthHandler *health.Handler
}

// NewContainer creates a new dependency container
func NewContainer() *Container {
	ctx, cancel := context.WithCancel(context.Background())

	return &Container{
		Stores:      &Stores{},
		Services:    &Services{},
		Agents:      &Agents{},
		Application: &Application{},
		WG:          &sync.WaitGroup{},
		Context:     ctx,
		Cancel:      cancel,
	}
}

// MustInit initializes all components in the correct order
// Panics on any initialization error (fail-fast at startup)
func (c *Container) MustInit() {
	c.MustInitConfig()
	c.MustInitInfrastructure()
	c.MustInitServices()
	c.MustInitAgents()
	c.MustInitApplication()
}

// Start starts the HTTP server in the background
func (c *Container) Start() error {
	c.Log.Info("Starting all systems...")

	c.WG.Add(1)
	go func() {
		defer c.WG.Done()
		if err := c.Application.HTTPServer.Start(); err != nil {
			c.Log.Errorf("HTTP server failed: %v", err)
			c.Cancel() // Trigger shutdown on fatal HTTP error
		}
	}()

	c.Log.Info("✓ All systems operational")
	return nil
}

// Shutdown performs graceful shutdown in the correct order
func (c *Container) Shutdown(timeout context.Context) {
	c.Log.Info("Initiating graceful shutdown...")

	c.Cancel()

	if c.Application.HTTPServer != nil {
		if err := c.Application.HTTPServer.Shutdown(timeout); err != nil {
			c.Log.Errorw("HTTP server shutdown failed", "error", err)
		}
	}

	c.WG.Wait()

	if c.Firestore != nil {
		if err := c.Firestore.Close(); err != nil {
			c.Log.Errorw("Firestore close failed", "error", err)
		}
	}

	if c.ErrorTracker != nil {
		if err := c.ErrorTracker.Flush(context.Background()); err != nil {
			c.Log.Errorw("Error tracker flush failed", "error", err)
		}
	}

	c.Log.Info("✓ Shutdown complete")
}
