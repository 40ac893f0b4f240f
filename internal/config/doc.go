// Package config defines the application configuration structure and
// loading logic. Configuration is read from environment variables with the
// TEACHME_ prefix and optionally from a config.yaml file, with environment
// variables taking precedence.
package config
