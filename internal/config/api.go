package config

import (
	"log/slog"
	"time"

	"crypto-feed/internal/pkg/config"
)

// APIConfig configures the manual trigger HTTP API.
type APIConfig struct {
	Port int

	// TriggerInterval and TriggerBurst size the token bucket shared by all manual
	// trigger endpoints. Each accepted trigger starts a provider round trip.
	TriggerInterval time.Duration
	TriggerBurst    int

	// ShutdownTimeout bounds graceful shutdown, including in-flight triggers.
	ShutdownTimeout time.Duration
}

// DefaultAPIConfig allows one manual trigger every 30 seconds with a burst of 2.
func DefaultAPIConfig() APIConfig {
	return APIConfig{
		Port:            8080,
		TriggerInterval: 30 * time.Second,
		TriggerBurst:    2,
		ShutdownTimeout: 2 * time.Minute,
	}
}

// LoadAPIConfig reads the API settings from the environment.
func LoadAPIConfig(logger *slog.Logger) (APIConfig, *config.Collector) {
	def := DefaultAPIConfig()
	c := &config.Collector{}
	cfg := APIConfig{
		Port: config.Track(c, "api_port",
			config.LoadEnvInt("API_PORT", def.Port, func(v int) error { return config.ValidateIntRange(v, 1, 65535) })),
		TriggerInterval: config.Track(c, "trigger_interval",
			config.LoadEnvDuration("MANUAL_TRIGGER_INTERVAL", def.TriggerInterval, config.ValidatePositiveDuration)),
		TriggerBurst: config.Track(c, "trigger_burst",
			config.LoadEnvInt("MANUAL_TRIGGER_BURST", def.TriggerBurst, func(v int) error { return config.ValidateIntRange(v, 1, 100) })),
		ShutdownTimeout: config.Track(c, "shutdown_timeout",
			config.LoadEnvDuration("API_SHUTDOWN_TIMEOUT", def.ShutdownTimeout, config.ValidatePositiveDuration)),
	}
	for _, w := range c.Warnings {
		logger.Warn("Configuration fallback applied", slog.String("warning", w))
	}
	return cfg, c
}
