package configs

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the top-level struct to hold all application configuration.
// The json tags (`json:"..."`) are essential for correctly mapping the
// keys from the config.json file to the fields in this struct.
type Config struct {
	Server   ServerConfig   `json:"server,omitempty"`
	Log      LogConfig      `json:"log,omitempty"`
	Store    StoreConfig    `json:"store,omitempty"`
	Identity IdentityConfig `json:"identity,omitempty"`
}

// ServerConfig holds the server-specific configuration.
type ServerConfig struct {
	Port string `json:"port"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	Level string `json:"level"`
}

// StoreConfig selects and configures the permissions store.
type StoreConfig struct {
	// Driver is "postgres" or "memory" (the latter for local demos).
	Driver           string `json:"driver"`
	ConnectionString string `json:"connectionString"`
}

// IdentityConfig carries the identity-service endpoint URL the GraphQL
// front-end's collaborator consumes; this core itself makes no outbound
// calls with it, it only needs to pass the setting through.
type IdentityConfig struct {
	EndpointURL string `json:"endpointUrl,omitempty"`
}

// AppConfig is the process-wide configuration instance, set by LoadConfig.
var AppConfig *Config

// LoadConfig reads the configuration file named by CONFIG_PATH (default
// ./config.json), unmarshals it, applies the AUTHZ_* environment overrides
// and the port/driver defaults, and returns a pointer to the Config struct.
// It also sets the global AppConfig.
func LoadConfig() (*Config, error) {
	// Get config path from environment variable, default to ./config.json
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config.json"
	}

	// Read the entire file into memory.
	data, err := os.ReadFile(path)
	if err != nil {
		// Return a clear error if the file cannot be read.
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	// Initialize a new Config struct to hold the parsed data.
	var config Config

	// Unmarshal the JSON data into the Config struct.
	// The json tags on the struct fields guide this process.
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config JSON: %w", err)
	}

	config.Server.Port = getEnvOrDefault("AUTHZ_SERVER_PORT", config.Server.Port)
	config.Store.Driver = getEnvOrDefault("AUTHZ_STORE_DRIVER", config.Store.Driver)
	config.Store.ConnectionString = getEnvOrDefault("AUTHZ_STORE_CONNECTION_STRING", config.Store.ConnectionString)
	config.Log.Level = getEnvOrDefault("AUTHZ_LOG_LEVEL", config.Log.Level)

	if config.Server.Port == "" {
		config.Server.Port = "4000"
	}
	if config.Store.Driver == "" {
		config.Store.Driver = "memory"
	}

	// Set global config
	AppConfig = &config

	// Return the populated config object.
	return &config, nil
}

// getEnvOrDefault returns the environment variable named by key, or
// defaultValue if it is unset or empty.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
