package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Session store kinds.
const (
	StoreRedis    = "redis"
	StoreDatabase = "database"
	StoreMemory   = "memory"
)

// Database drivers accepted for the SQL session store.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds runtime configuration values for the portal.
type Config struct {
	AppName string
	AppEnv  string
	AppPort string

	BackendURL     string
	BackendTimeout time.Duration

	SessionStore         string
	SessionTTL           time.Duration
	SessionVerifyGrace   time.Duration
	SessionVerifyTimeout time.Duration
	SessionIdle          time.Duration
	SessionSweepSchedule string

	RedisURL       string
	DatabaseURL    string
	DatabaseDriver string

	CookieHashKey  string
	CookieBlockKey string
	CookieSecure   bool

	AllowOrigins []string

	DashboardCacheTTL time.Duration
	ImportMaxSizeMB   int

	NATSURL     string
	NATSSubject string

	LoginRateLimit  int
	LoginRateWindow time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables (PORTAL_ prefix)
// and an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PORTAL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "SuccessPath Portal")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("backend.url", "http://localhost:5000/api")
	v.SetDefault("backend.timeout", "10s")
	v.SetDefault("session.store", StoreMemory)
	v.SetDefault("session.ttl", "168h")
	v.SetDefault("session.verify_grace", "1500ms")
	v.SetDefault("session.verify_timeout", "10s")
	v.SetDefault("session.idle", "2h")
	v.SetDefault("session.sweep_schedule", "@hourly")
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("cookie.secure", false)
	v.SetDefault("dashboard.cache_ttl", "1m")
	v.SetDefault("import.max_size_mb", 5)
	v.SetDefault("nats.subject", "portal.session")
	v.SetDefault("login.rate_limit", 10)
	v.SetDefault("login.rate_window", "1m")

	durations := map[string]time.Duration{}
	for _, key := range []string{
		"backend.timeout",
		"session.ttl",
		"session.verify_grace",
		"session.verify_timeout",
		"session.idle",
		"dashboard.cache_ttl",
		"login.rate_window",
	} {
		parsed, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", key, err)
		}
		durations[key] = parsed
	}

	cfg := Config{
		AppName:              v.GetString("app.name"),
		AppEnv:               v.GetString("app.env"),
		AppPort:              v.GetString("app.port"),
		BackendURL:           v.GetString("backend.url"),
		BackendTimeout:       durations["backend.timeout"],
		SessionStore:         strings.ToLower(strings.TrimSpace(v.GetString("session.store"))),
		SessionTTL:           durations["session.ttl"],
		SessionVerifyGrace:   durations["session.verify_grace"],
		SessionVerifyTimeout: durations["session.verify_timeout"],
		SessionIdle:          durations["session.idle"],
		SessionSweepSchedule: v.GetString("session.sweep_schedule"),
		RedisURL:             v.GetString("redis.url"),
		DatabaseURL:          v.GetString("database.url"),
		DatabaseDriver:       strings.ToLower(strings.TrimSpace(v.GetString("database.driver"))),
		CookieHashKey:        v.GetString("cookie.hash_key"),
		CookieBlockKey:       v.GetString("cookie.block_key"),
		CookieSecure:         v.GetBool("cookie.secure"),
		AllowOrigins:         splitList(v.GetString("cors.allow_origins")),
		DashboardCacheTTL:    durations["dashboard.cache_ttl"],
		ImportMaxSizeMB:      v.GetInt("import.max_size_mb"),
		NATSURL:              v.GetString("nats.url"),
		NATSSubject:          v.GetString("nats.subject"),
		LoginRateLimit:       v.GetInt("login.rate_limit"),
		LoginRateWindow:      durations["login.rate_window"],
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that have no usable default.
func (c Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("backend url must be provided")
	}
	if len(c.CookieHashKey) < 32 {
		return fmt.Errorf("cookie hash key must be at least 32 bytes")
	}
	switch n := len(c.CookieBlockKey); n {
	case 0, 16, 24, 32:
	default:
		return fmt.Errorf("cookie block key must be 16, 24 or 32 bytes, got %d", n)
	}

	switch c.SessionStore {
	case StoreMemory:
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("redis url must be provided for the redis session store")
		}
	case StoreDatabase:
		if c.DatabaseURL == "" {
			return fmt.Errorf("database url must be provided for the database session store")
		}
		if c.DatabaseDriver != DriverPostgres && c.DatabaseDriver != DriverSQLite {
			return fmt.Errorf("unsupported database driver %q", c.DatabaseDriver)
		}
	default:
		return fmt.Errorf("unsupported session store %q", c.SessionStore)
	}
	return nil
}

func splitList(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
