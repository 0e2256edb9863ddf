// Package config loads all runtime configuration from environment variables.
package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config is the root configuration for the ProjectHub backend.
type Config struct {
	ServerPort int    `env:"SERVER_PORT, default=8080"`
	Env        string `env:"ENV, default=production"`
	LogLevel   string `env:"LOG_LEVEL, default=info"`

	Auth          AuthConfig
	Database      DatabaseConfig
	Notifications NotificationsConfig
	RabbitMQ      RabbitMQConfig
	PubSub        PubSubConfig
}

// AuthConfig holds token signing settings.
//
// JWTSecret has no default on purpose: starting without one is a
// misconfiguration and the server refuses to boot.
type AuthConfig struct {
	JWTSecret       string        `env:"JWT_SECRET"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL, default=24h"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`
}

// DatabaseConfig holds Postgres connection settings.
type DatabaseConfig struct {
	Host     string `env:"DB_HOST, default=localhost"`
	Port     int    `env:"DB_PORT, default=5432"`
	User     string `env:"DB_USER, default=projecthub"`
	Password string `env:"DB_PASSWORD, default=password"`
	DBName   string `env:"DB_NAME, default=projecthub_db"`
	UseSSL   bool   `env:"DB_SSL, default=false"`
}

// NotificationsConfig selects the broker used for domain notifications.
// Backend is "rabbitmq", "pubsub", or empty to disable publishing.
type NotificationsConfig struct {
	Backend string `env:"NOTIFY_BACKEND"`
	Channel string `env:"NOTIFY_CHANNEL, default=projecthub.notifications"`
}

// RabbitMQConfig holds RabbitMQ connection settings.
type RabbitMQConfig struct {
	URL             string `env:"RABBITMQ_URL"`
	QueueDurable    bool   `env:"RABBITMQ_QUEUE_DURABLE, default=true"`
	QueueAutoDelete bool   `env:"RABBITMQ_QUEUE_AUTO_DELETE, default=false"`
}

// PubSubConfig holds Google Cloud Pub/Sub settings.
type PubSubConfig struct {
	ProjectID       string `env:"PUBSUB_PROJECT_ID"`
	CredentialsFile string `env:"PUBSUB_CREDENTIALS_FILE"`
}

// Load reads configuration from the environment. In dev a .env file is
// loaded first, if present.
func Load(ctx context.Context) (Config, error) {
	if os.Getenv("ENV") == "dev" {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}
	return cfg, nil
}

// URL builds a postgres:// connection string from the database settings.
func (c DatabaseConfig) URL() string {
	sslmode := "disable"
	if c.UseSSL {
		sslmode = "require"
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		User:   url.UserPassword(c.User, c.Password),
		Path:   c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", sslmode)
	u.RawQuery = q.Encode()
	return u.String()
}
