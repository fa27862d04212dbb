package config

import (
	"os"
	"strconv"
)

// Server and data configuration, all sourced from environment variables with
// defaults so a local checkout runs without a .env file.

func Port() string {
	return getEnvWithDefault("PORT", "8080")
}

// DataDir is the root directory holding the aadhar_enrolment,
// aadhar_demographic and aadhar_biometric CSV subdirectories.
func DataDir() string {
	return getEnvWithDefault("DATA_DIR", "Dataset")
}

// MetadataFile optionally points at a YAML file overriding the built-in
// analysis metadata tables. Empty means built-ins only.
func MetadataFile() string {
	return os.Getenv("METADATA_FILE")
}

func GeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

func GeminiModel() string {
	return getEnvWithDefault("GEMINI_MODEL", "gemini-flash-latest")
}

// Helper functions
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
