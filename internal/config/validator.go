package config

import (
	"fmt"
	"os"
	"strings"
)

// RequiredEnvVars lists the environment variables that must be set for the
// service to start. PORT and the LOG_* variables have defaults and are not
// listed here.
var RequiredEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"API_KEY",
}

// ValidateEnv checks that all required environment variables are present and
// non-empty. It returns a single error naming every missing variable so a
// misconfigured deployment fails fast with a complete report.
func ValidateEnv() error {
	var missing []string
	for _, key := range RequiredEnvVars {
		if value, exists := os.LookupEnv(key); !exists || strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}
