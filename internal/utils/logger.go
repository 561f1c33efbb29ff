package utils

import "go.uber.org/zap"

// NewLogger builds the process logger. Production config for ENV=prod,
// human-readable development config otherwise.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
