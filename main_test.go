package main

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"inspection-analytics/config"
)

func TestNewLogger(t *testing.T) {
	logger := newLogger(config.LoggingConfig{Level: "debug", Format: "json"})
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())

	logger = newLogger(config.LoggingConfig{Level: "warn", Format: "console"})
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	// unknown levels fall back to info
	logger = newLogger(config.LoggingConfig{Level: "nope", Format: "json"})
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}
