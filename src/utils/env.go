package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const DEV_ENV_FILENAME = ".env.development"
const PROD_ENV_FILENAME = ".env.production"

func InitEnvironmentVariables(projectDir string) error {
	if os.Getenv("ENV") == "production" {
		log.Info("Running in production environment")
		return nil
	}

	// Determine which .env file to load
	envFile := filepath.Join(projectDir, DEV_ENV_FILENAME) // default to development environment
	if os.Getenv("GO_ENV") == "production" {
		envFile = filepath.Join(projectDir, PROD_ENV_FILENAME)
	}

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		log.Warnf("no %s file found: using ambient environment", envFile)
		return nil
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("failed to load %s file: %v", envFile, err)
	}

	return nil
}

func GetEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s environment variable not set", key)
	}

	return value, nil
}
