package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TR_ROUTING_SCENARIO_SE", "")
	t.Setenv("MAX_CONCURRENCY", "")
	t.Setenv("RATE_LIMIT_MS", "")

	cfg := Load()

	assert.Equal(t, "", cfg.Scenario(ScenarioCodeSE))
	assert.Equal(t, 3, cfg.MaxConcurrency)
	assert.Equal(t, 0, cfg.RateLimitMs)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.PostgresEnabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TR_ROUTING_SCENARIO_SE", "scenario-uuid")
	t.Setenv("MAX_CONCURRENCY", "8")
	t.Setenv("RATE_LIMIT_MS", "250")
	t.Setenv("REQUESTS_PER_SECOND", "2.5")
	t.Setenv("POSTGRES_ENABLED", "true")
	t.Setenv("ROUTING_TIMEOUT_MS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "scenario-uuid", cfg.Scenario(ScenarioCodeSE))
	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.Equal(t, 250, cfg.RateLimitMs)
	assert.Equal(t, 2.5, cfg.RequestsPerSecond)
	assert.True(t, cfg.PostgresEnabled)
	assert.Equal(t, 2*time.Minute, cfg.RoutingTimeout)
}

func TestDepartureSeconds(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"08:00", 8 * 3600},
		{"17:45", 17*3600 + 45*60},
		{"noon", 8 * 3600},
		{"25:99", 8 * 3600},
	}

	for _, tt := range tests {
		cfg := &Config{DepartureTime: tt.raw}
		if got := cfg.DepartureSeconds(); got != tt.want {
			t.Errorf("DepartureSeconds(%q) = %d; want %d", tt.raw, got, tt.want)
		}
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost: "db", PostgresPort: "5432", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "d", PostgresSSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=d sslmode=disable", cfg.DSN())
}
