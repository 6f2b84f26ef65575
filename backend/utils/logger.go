package utils

import "go.uber.org/zap"

// InitLogger builds the process-wide logger. Development gets the console
// encoder with human-readable timestamps; anything else gets production JSON.
func InitLogger(appEnv string) (*zap.Logger, error) {
	if appEnv == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
