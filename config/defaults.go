package config

import "time"

// DevSigningSecret is the development placeholder key. It is not a secret:
// the dev signer exists to exercise the signing path, not to protect it.
const DevSigningSecret = "rho2-dev-secret-key"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server:    DefaultServerConfig(),
		Stream:    DefaultStreamConfig(),
		Heartbeat: DefaultHeartbeatConfig(),
		Signing:   DefaultSigningConfig(),
		Log:       DefaultLogConfig(),
		Telemetry: DefaultTelemetryConfig(),
	}
}

// DefaultServerConfig returns the default server settings.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		HTTPPort:        8080,
		MetricsPort:     9091,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 15 * time.Second,
		RateLimitRPS:    100,
		RateLimitBurst:  200,
	}
}

// DefaultStreamConfig returns the default stream settings.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		Enabled: true,
		Path:    "/stream",
	}
}

// DefaultHeartbeatConfig returns the default local heartbeat settings.
func DefaultHeartbeatConfig() HeartbeatConfig {
	return HeartbeatConfig{
		Enabled:  true,
		NodeID:   "arcbridge-local",
		Interval: 3 * time.Second,
	}
}

// DefaultSigningConfig returns the default signing settings.
func DefaultSigningConfig() SigningConfig {
	return SigningConfig{
		Enabled: true,
		Secret:  DevSigningSecret,
	}
}

// DefaultLogConfig returns the default logging settings.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:            "info",
		Format:           "json",
		OutputPaths:      []string{"stdout"},
		EnableCaller:     true,
		EnableStacktrace: false,
	}
}

// DefaultTelemetryConfig returns the default metrics settings.
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Enabled:   true,
		Namespace: "arcbridge",
	}
}
