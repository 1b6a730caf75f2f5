package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// App holds the runtime configuration loaded from .env and environment variables.
type App struct {
	Env             string
	HTTPPort        string
	BackendURL      string
	BackendTimeout  time.Duration
	RedisAddr       string
	Session         SessionConfig
	FriendCacheTTL  time.Duration
	QueueBackend    string
	RateLimitPerMin int
	Log             LogConfig
	AllowedOrigins  []string
	DocsEnabled     bool
}

// SessionConfig controls the gateway's own signed session cookie.
type SessionConfig struct {
	CookieName string
	Issuer     string
	SigningKey string
	TTL        time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// Production reports whether the app runs with production settings.
func (a *App) Production() bool {
	return a.Env == EnvProduction || a.Env == "prod"
}

// Load returns application config populated from the environment with sensible defaults.
func Load() (*App, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &App{
		Env:            v.GetString("APP_ENV"),
		HTTPPort:       v.GetString("HTTP_PORT"),
		BackendURL:     strings.TrimRight(v.GetString("BACKEND_URL"), "/"),
		BackendTimeout: parseDuration(v.GetString("BACKEND_TIMEOUT"), 15*time.Second),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		Session: SessionConfig{
			CookieName: v.GetString("SESSION_COOKIE"),
			Issuer:     v.GetString("SESSION_ISSUER"),
			SigningKey: v.GetString("SESSION_SIGNING_KEY"),
			TTL:        parseDuration(v.GetString("SESSION_TTL"), 24*time.Hour),
		},
		FriendCacheTTL:  parseDuration(v.GetString("FRIEND_CACHE_TTL"), 5*time.Minute),
		QueueBackend:    v.GetString("QUEUE_BACKEND"),
		RateLimitPerMin: v.GetInt("RATE_LIMIT_PER_MIN"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS")),
		DocsEnabled:    v.GetBool("DOCS_ENABLED"),
	}

	if cfg.Production() && cfg.Session.SigningKey == defaultSigningKey {
		return nil, errors.New("SESSION_SIGNING_KEY must be set in production")
	}
	return cfg, nil
}

const defaultSigningKey = "dev-signing-secret-change"

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("BACKEND_URL", "http://localhost:8081")
	v.SetDefault("BACKEND_TIMEOUT", "15s")
	v.SetDefault("REDIS_ADDR", "localhost:6379")

	v.SetDefault("SESSION_COOKIE", "accumulator_session")
	v.SetDefault("SESSION_ISSUER", "accumulator-web")
	v.SetDefault("SESSION_SIGNING_KEY", defaultSigningKey)
	v.SetDefault("SESSION_TTL", "24h")

	v.SetDefault("FRIEND_CACHE_TTL", "5m")
	v.SetDefault("QUEUE_BACKEND", "redis")
	v.SetDefault("RATE_LIMIT_PER_MIN", 120)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("DOCS_ENABLED", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
