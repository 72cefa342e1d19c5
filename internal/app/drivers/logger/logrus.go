package logger

import (
	"sleepclinic-service/internal/app/config"
	"time"

	"github.com/sirupsen/logrus"
)

// NewLogrusLogger configures the process-level logger used by the command
// entrypoints for boot and shutdown messages.
func NewLogrusLogger(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *logrus.Logger {
	logger := logrus.StandardLogger()
	configureLogrus(logger, driverConfig.Logger, internalConfig.App.Env)
	return logger
}

func configureLogrus(logger *logrus.Logger, loggerConfig config.Logger, env string) {
	level, err := logrus.ParseLevel(loggerConfig.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if env == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
		return
	}
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
