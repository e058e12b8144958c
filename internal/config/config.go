package config

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Env string `env:"APP_ENV, default=development"`
}

func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

type HTTPConfig struct {
	Port         string        `env:"PORT, default=3000"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT, default=5s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT, default=10s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT, default=60s"`
}

type DatabaseConfig struct {
	Host       string `env:"DB_HOST, default=localhost"`
	User       string `env:"DB_USER, default=postgres"`
	Password   string `env:"DB_PASSWORD"`
	Name       string `env:"DB_NAME, default=workforce"`
	Port       string `env:"DB_PORT, default=5432"`
	SSLMode    string `env:"DB_SSLMODE, default=disable"`
	MaxRetries int    `env:"DB_MAX_RETRIES, default=5"`
}

// DSN is the keyword/value form accepted by the gorm postgres driver.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

// URL is the form golang-migrate expects. Credentials are escaped.
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// RedisConfig leaves Addr empty to run without the list cache and
// idempotency store.
type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR"`
	CacheTTL       time.Duration `env:"REDIS_CACHE_TTL, default=30m"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL, default=24h"`
}

type KafkaConfig struct {
	Broker        string        `env:"KAFKA_BROKER"`
	ConsumerGroup string        `env:"KAFKA_CONSUMER_GROUP, default=go-workforce-audit"`
	PollInterval  time.Duration `env:"OUTBOX_POLL_INTERVAL, default=3s"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `env:"RATE_LIMIT_RPS, default=20"`
	Burst             int     `env:"RATE_LIMIT_BURST, default=40"`
}

// Load reads .env (when present) and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return LoadWith(ctx, envconfig.OsLookuper())
}

func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
