package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, k := range []string{"HOST", "PORT", "MAX_STORES", "MAX_SUBSETS", "ADMIN_IDS", "SESSION_IDLE_TTL", "RATE_LIMIT_RPS"} {
			t.Setenv(k, "")
		}
		cfg := Load()
		assert.Equal(t, "127.0.0.1:8082", cfg.Addr())
		assert.Equal(t, 2, cfg.MaxStores)
		assert.Equal(t, 200000, cfg.MaxSubsets)
		assert.Equal(t, 24*time.Hour, cfg.SessionIdleTTL)
		assert.Equal(t, 20.0, cfg.RateLimitRPS)
		assert.Empty(t, cfg.AdminIDs)
	})

	t.Run("custom values from environment", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("MAX_STORES", "3")
		t.Setenv("ADMIN_IDS", " 42, ,7 ")
		t.Setenv("SESSION_IDLE_TTL", "30m")
		t.Setenv("ALLOW_ORIGINS", "http://a.test,http://b.test")
		cfg := Load()
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, 3, cfg.MaxStores)
		assert.Equal(t, []string{"42", "7"}, cfg.AdminIDs)
		assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowOrigins)
	})

	t.Run("invalid values fall back to defaults", func(t *testing.T) {
		t.Setenv("MAX_STORES", "-1")
		t.Setenv("MAX_SUBSETS", "lots")
		t.Setenv("SESSION_IDLE_TTL", "soon")
		cfg := Load()
		assert.Equal(t, 2, cfg.MaxStores)
		assert.Equal(t, 200000, cfg.MaxSubsets)
		assert.Equal(t, 24*time.Hour, cfg.SessionIdleTTL)
	})
}
