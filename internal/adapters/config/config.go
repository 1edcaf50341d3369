package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"voyager/pkg/errors"
)

type Config struct {
	App           AppConfig
	Server        ServerConfig
	Firestore     FirestoreConfig
	GenAI         GenAIConfig
	SMTP          SMTPConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"voyager"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port int    `envconfig:"SERVER_PORT" default:"8080"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// FirestoreConfig selects the durable profile backend. When ProjectID is
// empty the application falls back to in-memory storage.
type FirestoreConfig struct {
	ProjectID  string `envconfig:"GOOGLE_CLOUD_PROJECT"`
	Collection string `envconfig:"FIRESTORE_PROFILE_COLLECTION" default:"user_profiles"`
	DatabaseID string `envconfig:"FIRESTORE_DATABASE_ID" default:"(default)"`
}

func (c FirestoreConfig) Enabled() bool {
	return c.ProjectID != ""
}

type GenAIConfig struct {
	UseVertexAI bool   `envconfig:"GOOGLE_GENAI_USE_VERTEXAI" default:"false"`
	APIKey      string `envconfig:"GOOGLE_API_KEY"`
	Project     string `envconfig:"GOOGLE_CLOUD_PROJECT"`
	Location    string `envconfig:"GOOGLE_CLOUD_LOCATION" default:"us-central1"`
	Model       string `envconfig:"GENAI_MODEL" default:"gemini-2.5-flash"`
}

// SMTPConfig drives booking-confirmation and accessibility-request email.
// When Address or Password is empty the email service runs in simulation
// mode and only logs what would have been sent.
type SMTPConfig struct {
	Server   string `envconfig:"SMTP_SERVER" default:"smtp.gmail.com"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Address  string `envconfig:"EMAIL_ADDRESS"`
	Password string `envconfig:"EMAIL_PASSWORD"`
	UseTLS   bool   `envconfig:"SMTP_USE_TLS" default:"true"`
}

func (c SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server, c.Port)
}

func (c SMTPConfig) Configured() bool {
	return c.Address != "" && c.Password != ""
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	Provider    string `envconfig:"ERROR_TRACKING_PROVIDER" default:"sentry"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}
