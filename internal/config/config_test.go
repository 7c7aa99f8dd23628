package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("PORT", "")
	t.Setenv("DISCLOSURE_INITIAL", "")
	t.Setenv("DISCLOSURE_STEP", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8787", cfg.Port)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Contains(t, cfg.DatabaseURL, "dbname=travelbond")
	assert.Equal(t, 3, cfg.DisclosureInitial)
	assert.Equal(t, 3, cfg.DisclosureStep)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.TracingEnabled())
}

func TestLoad_SQLite(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("DB_PATH", "/tmp/tb.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "/tmp/tb.db", cfg.DatabaseURL)
}

func TestValidate(t *testing.T) {
	base := Config{
		JWTSecret:         []byte("s"),
		DatabaseDriver:    "postgres",
		DisclosureInitial: 3,
		DisclosureStep:    3,
		RateLimitRequests: 10,
	}
	require.NoError(t, base.Validate())

	bad := base
	bad.DatabaseDriver = "mysql"
	assert.Error(t, bad.Validate())

	bad = base
	bad.DisclosureStep = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.DisclosureInitial = -1
	assert.Error(t, bad.Validate())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, splitList(" https://a.test, ,https://b.test "))
	assert.Empty(t, splitList(""))
}

func TestDatabaseFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_PATH", "/tmp/travelbond-test.db")

	driver, dsn := DatabaseFromEnv()
	assert.Equal(t, "sqlite", driver)
	assert.Equal(t, "/tmp/travelbond-test.db", dsn)

	t.Setenv("DATABASE_URL", "file::memory:")
	_, dsn = DatabaseFromEnv()
	assert.Equal(t, "file::memory:", dsn)
}
