package bootstrap

import (
	"cloud.google.com/go/firestore"

	"voyager/internal/adapters/adk"
	"voyager/internal/adapters/config"
	"voyager/internal/adapters/errors/noop"
	"voyager/internal/adapters/errors/sentry"
	"voyager/internal/agents"
	"voyager/internal/api"
	"voyager/internal/api/health"
	"voyager/internal/metrics"
	firestorerepo "voyager/internal/repository/firestore"
	"voyager/internal/repository/memory"
	"voyager/internal/services/chat"
	"voyager/internal/services/chatsession"
	profilesvc "voyager/internal/services/profile"
	"voyager/internal/services/usercontext"
	"voyager/internal/tools"
	"voyager/internal/tools/accessibility"
	toolemail "voyager/internal/tools/email"
	toolmemory "voyager/internal/tools/memory"
	"voyager/pkg/errors"
	"voyager/pkg/logger"
	"voyager/pkg/templates"
)

// Version is the service version reported by the API
const Version = "1.0.0"

// MustInitConfig loads configuration and sets up logging and metrics
func (c *Container) MustInitConfig() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	c.Config = cfg

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	c.Log = logger.Get()
	c.Log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	metrics.Init()

	c.ErrorTracker = c.initErrorTracker()
	logger.SetErrorTracker(c.ErrorTracker)
}

func (c *Container) initErrorTracker() errors.Tracker {
	cfg := c.Config.ErrorTracking
	if !cfg.Enabled || cfg.SentryDSN == "" {
		c.Log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.SentryDSN, cfg.Environment)
	if err != nil {
		c.Log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	c.Log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// MustInitInfrastructure sets up the profile store backends.
// A missing or failing document store is not fatal: the service
// starts on the in-memory store and reports itself degraded.
func (c *Container) MustInitInfrastructure() {
	c.Stores.Fallback = memory.NewProfileStore()

	fsCfg := c.Config.Firestore
	if !fsCfg.Enabled() {
		c.Log.Warn("GOOGLE_CLOUD_PROJECT not set, profiles held in memory only")
		return
	}

	client, err := c.newFirestoreClient()
	if err != nil {
		c.Log.Warnw("Firestore unavailable, profiles held in memory only",
			"project", fsCfg.ProjectID,
			"error", err,
		)
		return
	}

	c.Firestore = client
	c.Stores.Primary = firestorerepo.NewProfileStore(client, fsCfg.Collection)
	c.Log.Infow("✓ Firestore profile store initialized",
		"project", fsCfg.ProjectID,
		"collection", fsCfg.Collection,
	)
}

func (c *Container) newFirestoreClient() (*firestore.Client, error) {
	cfg := c.Config.Firestore
	if cfg.DatabaseID != "" {
		return firestore.NewClientWithDatabase(c.Context, cfg.ProjectID, cfg.DatabaseID)
	}
	return firestore.NewClient(c.Context, cfg.ProjectID)
}

// MustInitServices wires the domain services and the tool catalog
func (c *Container) MustInitServices() {
	c.Services.Prompts = templates.Get()

	c.Services.Profiles = profilesvc.NewService(c.Stores.Primary, c.Stores.Fallback)
	c.Services.Sessions = chatsession.NewRegistry(c.Config.App.Name, nil)
	c.Services.Contexts = usercontext.NewBuilder(c.Services.Profiles, c.Services.Prompts)
	c.Services.Memory = toolmemory.NewStore()
	c.Services.Email = toolemail.NewService(c.Config.SMTP)

	registry := tools.NewRegistry()
	accessibility.Register(registry)
	toolemail.Register(registry, c.Services.Email, c.Services.Prompts)
	toolmemory.Register(registry, c.Services.Memory)
	c.Services.Tools = registry

	c.Log.Infow("✓ Services initialized",
		"profile_store", c.Services.Profiles.StoreName(),
		"tools", len(registry.List()),
		"email_simulated", c.Services.Email.Simulated(),
	)
}

// MustInitAgents builds the Gemini model adapter and the agent tree
func (c *Container) MustInitAgents() {
	client, err := adk.NewGeminiClient(c.Context, c.Config.GenAI)
	if err != nil {
		panic("failed to create GenAI client: " + err.Error())
	}

	model := adk.NewGeminiModel(client, c.Config.GenAI.Model)
	c.Agents.ModelName = c.Config.GenAI.Model

	factory, err := agents.NewFactory(agents.FactoryDeps{
		Model:        model,
		ToolRegistry: c.Services.Tools,
		Templates:    c.Services.Prompts,
	})
	if err != nil {
		panic("failed to create agent factory: " + err.Error())
	}
	c.Agents.Factory = factory

	root, err := factory.CreateTree()
	if err != nil {
		panic("failed to build agent tree: " + err.Error())
	}
	c.Agents.Root = root

	c.Log.Infow("✓ Agent tree initialized",
		"root", agents.RootConfig.Name,
		"sub_agents", len(agents.SubAgentConfigs),
		"model", c.Agents.ModelName,
	)
}

// MustInitApplication wires the chat service and HTTP server
func (c *Container) MustInitApplication() {
	chatService, err := chat.NewService(chat.Config{
		AppName:  c.Config.App.Name,
		Root:     c.Agents.Root,
		Sessions: c.Services.Sessions,
		Contexts: c.Services.Contexts,
		Profiles: c.Services.Profiles,
		Memory:   c.Services.Memory,
	})
	if err != nil {
		panic("failed to create chat service: " + err.Error())
	}
	c.Services.Chat = chatService

	c.Application.HealthHandler = health.New(
		c.Log,
		c.Services.Profiles,
		c.Services.Sessions,
		c.Config.App.Name,
		Version,
	)

	c.Application.HTTPServer = api.NewServer(
		api.ServerConfig{
			Host:        c.Config.Server.Host,
			Port:        c.Config.Server.Port,
			ServiceName: c.Config.App.Name,
			Version:     Version,
		},
		api.Handlers{
			Health:    c.Application.HealthHandler,
			Users:     api.NewUserHandler(c.Services.Profiles, c.Log),
			Chat:      api.NewChatHandler(c.Services.Chat, c.Log),
			Sessions:  api.NewSessionHandler(c.Services.Sessions, c.Log),
			AgentInfo: api.NewAgentInfoHandler(c.Services.Tools, c.Agents.ModelName),
		},
		c.Log,
	)
}
