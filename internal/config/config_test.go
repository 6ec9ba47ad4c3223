package config_test

import (
	"testing"
	"time"

	"elibrary/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	cfg := config.New()

	assert.Equal(t, ":5000", cfg.HTTP.Port)
	assert.Equal(t, "./uploads", cfg.Uploads.Dir)
	assert.Equal(t, 30*time.Second, cfg.Global.RequestTimeout)
	assert.NotEmpty(t, cfg.Database.URL)
	assert.NotEmpty(t, cfg.RabbitMQ.URL)
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", ":9999")
	t.Setenv("UPLOAD_DIR", "/tmp/elib-uploads")
	t.Setenv("REQUEST_TIMEOUT", "5s")

	cfg := config.New()

	assert.Equal(t, ":9999", cfg.HTTP.Port)
	assert.Equal(t, "/tmp/elib-uploads", cfg.Uploads.Dir)
	assert.Equal(t, 5*time.Second, cfg.Global.RequestTimeout)
}
