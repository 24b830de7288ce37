package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testHashKey = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORTAL_COOKIE_HASH_KEY", testHashKey)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StoreMemory, cfg.SessionStore)
	require.Equal(t, 10*time.Second, cfg.BackendTimeout)
	require.Equal(t, 1500*time.Millisecond, cfg.SessionVerifyGrace)
	require.Equal(t, "@hourly", cfg.SessionSweepSchedule)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Empty(t, cfg.AllowOrigins)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORTAL_COOKIE_HASH_KEY", testHashKey)
	t.Setenv("PORTAL_SESSION_STORE", "Redis")
	t.Setenv("PORTAL_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("PORTAL_BACKEND_TIMEOUT", "3s")
	t.Setenv("PORTAL_CORS_ALLOW_ORIGINS", "http://localhost:3000, https://portal.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StoreRedis, cfg.SessionStore)
	require.Equal(t, 3*time.Second, cfg.BackendTimeout)
	require.Equal(t, []string{"http://localhost:3000", "https://portal.example.com"}, cfg.AllowOrigins)
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	t.Setenv("PORTAL_COOKIE_HASH_KEY", testHashKey)
	t.Setenv("PORTAL_SESSION_TTL", "forever")

	_, err := Load()
	require.ErrorContains(t, err, "session.ttl")
}

func TestValidate(t *testing.T) {
	base := Config{BackendURL: "http://backend/api", CookieHashKey: testHashKey, SessionStore: StoreMemory}
	require.NoError(t, base.Validate())

	short := base
	short.CookieHashKey = "short"
	require.Error(t, short.Validate())

	block := base
	block.CookieBlockKey = "abc"
	require.Error(t, block.Validate())

	redisMissing := base
	redisMissing.SessionStore = StoreRedis
	require.Error(t, redisMissing.Validate())

	database := base
	database.SessionStore = StoreDatabase
	database.DatabaseURL = "file:portal.db"
	database.DatabaseDriver = DriverSQLite
	require.NoError(t, database.Validate())

	database.DatabaseDriver = "mysql"
	require.Error(t, database.Validate())
}
