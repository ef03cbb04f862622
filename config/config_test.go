package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("KAFKA_BROKER", "")
	t.Setenv("EVENTS_TOPIC", "")
	t.Setenv("GATEWAY_PORT", "")
	t.Setenv("STATS_SVC_URL", "")

	cfg := Load()

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "8080", cfg.GatewayPort)
	assert.Equal(t, "http://localhost:8083", cfg.StatsSvcURL)
	assert.Equal(t, DefaultEventsTopic, cfg.EventsTopic)
	assert.Empty(t, cfg.KafkaBroker)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "chef")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "menu")
	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "host=db port=6543 user=chef password=secret dbname=menu sslmode=require", cfg.PostgresDSN())
	assert.Equal(t, "cache:6380", cfg.RedisAddr())
}
