package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvironmentType represents the application environment
type EnvironmentType string

const (
	EnvironmentDevelopment EnvironmentType = "development"
	EnvironmentProduction  EnvironmentType = "production"
)

// String returns the string representation of the environment type
func (e EnvironmentType) String() string {
	return string(e)
}

// IsValid checks if the environment type is valid
func (e EnvironmentType) IsValid() bool {
	switch e {
	case EnvironmentDevelopment, EnvironmentProduction:
		return true
	default:
		return false
	}
}

// Environment holds the environment variables.
// The token secret and expirations live here rather than in the YAML file
// so they never end up committed with the rest of the configuration.
type Environment struct {
	Environment     EnvironmentType `env:"ENVIRONMENT"`
	ConfigPath      string          `env:"CONFIG_PATH"`
	JWTSecret       string          `env:"JWT_SECRET"`
	AccessTokenTTL  time.Duration   `env:"ACCESS_TOKEN_TTL_SECONDS"`
	RefreshTokenTTL time.Duration   `env:"REFRESH_TOKEN_TTL_SECONDS"`
}

// LoadEnv loads the environment variables
func LoadEnv() *Environment {
	envStr := getEnv("ENVIRONMENT", string(EnvironmentDevelopment))
	envStr = strings.TrimSpace(envStr)
	envStr = strings.ToLower(envStr)
	envType := EnvironmentType(envStr)

	if !envType.IsValid() {
		envType = EnvironmentDevelopment
	}

	return &Environment{
		Environment:     envType,
		ConfigPath:      getEnv("CONFIG_PATH", "config.yaml"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		AccessTokenTTL:  getEnvSeconds("ACCESS_TOKEN_TTL_SECONDS", 900),
		RefreshTokenTTL: getEnvSeconds("REFRESH_TOKEN_TTL_SECONDS", 604800),
	}
}

// getEnv gets the environment variable with a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

// getEnvSeconds reads an integer number of seconds, falling back to the
// default when the variable is unset or unparsable.
func getEnvSeconds(key string, defaultSeconds int) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return time.Duration(defaultSeconds) * time.Second
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return time.Duration(defaultSeconds) * time.Second
	}
	return time.Duration(n) * time.Second
}
