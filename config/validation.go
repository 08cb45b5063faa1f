package config

import (
	"fmt"
	"os"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	RequiredEnvVars []string
	RequiredSecrets []string
}

var requirements = map[Environment]ConfigRequirements{
	Development: {
		RequiredSecrets: []string{
			"db_user",
			"db_password",
			"jwt_secret",
			"redis_password",
		},
	},
	Test: {
		RequiredSecrets: []string{
			"db_user",
			"db_password",
			"jwt_secret",
			"redis_password",
		},
	},
	CI: {
		RequiredEnvVars: []string{
			"SERVER_PORT",
			"DB_HOST",
			"DB_PORT",
			"DB_USER",
			"DB_NAME",
			"REDIS_HOST",
			"REDIS_PORT",
		},
		// CI uses environment variables, not Docker secrets
		RequiredSecrets: []string{},
	},
	Production: {
		RequiredSecrets: []string{
			"db_user",
			"db_password",
			"jwt_secret",
			"redis_password",
		},
	},
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	reqs := requirements[env]

	var errors []string

	for _, envVar := range reqs.RequiredEnvVars {
		if value := os.Getenv(envVar); value == "" {
			errors = append(errors, fmt.Sprintf("required environment variable %s is not set", envVar))
		}
	}

	for _, secret := range reqs.RequiredSecrets {
		if value := readSecret(secret); value == "" {
			errors = append(errors, fmt.Sprintf("required secret %s is not set", secret))
		}
	}

	if cfg.DBPassword == "" {
		errors = append(errors, "database password is required")
	}
	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT secret is required")
	}

	// The bridge settings come in pairs: a Notion token without a
	// database id (or vice versa) is a misconfiguration, not a
	// disabled bridge.
	if (cfg.NotionToken == "") != (cfg.NotionDatabaseID == "") {
		errors = append(errors, "notion_token and notion_database_id must be set together")
	}
	if (cfg.HomeAssistantURL == "") != (cfg.HomeAssistantToken == "") {
		errors = append(errors, "hass_url and hass_token must be set together")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
