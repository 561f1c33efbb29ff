package utils

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// LoadEnv reads a dotenv file when one is present. Deployments pass
// configuration through the environment directly, so a missing file is
// not an error.
func LoadEnv(logger *zap.Logger) {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		logger.Info("No env file, relying on process environment", zap.String("path", path))
		return
	}
	logger.Info("Env file loaded", zap.String("path", path))
}
