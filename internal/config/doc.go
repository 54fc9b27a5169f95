// Package config loads the service configuration.
//
// Values are resolved in three layers, later layers winning:
//
//  1. Default()
//  2. a YAML file: $CONCENTRADO_CONFIG_FILE, else config.yaml or
//     configs/config.yaml when present
//  3. environment variables prefixed with CONCENTRADO_
//
// Environment variables follow the struct nesting:
//
//	CONCENTRADO_SERVER_PORT=9090
//	CONCENTRADO_PROCESSING_WORKERS=8
//	CONCENTRADO_PROCESSING_CACHE_TTL=10m
//	CONCENTRADO_SECURITY_RATE_LIMIT_RPS=5
//	CONCENTRADO_LOGGING_LEVEL=debug
//
// The merged configuration is validated with go-playground/validator
// struct tags before it is returned.
package config
