package config

import "time"

// Application constants
const (
	AppName = "concentrado-stats"

	// EnvPrefix namespaces environment variables, e.g. CONCENTRADO_SERVER_PORT.
	EnvPrefix = "CONCENTRADO"
	// ConfigFileEnv names an explicit YAML config file.
	ConfigFileEnv = "CONCENTRADO_CONFIG_FILE"

	// Rate Limiting
	DefaultRateLimit = 20 // requests per second
	DefaultBurstSize = 40

	DefaultRequestTimeout = 60 * time.Second

	// Processing
	DefaultWorkers        = 4
	DefaultMaxFiles       = 100
	DefaultMaxUploadBytes = 64 << 20
	ParseCacheDuration    = 30 * time.Minute

	DefaultLogLevel = "info"
)
