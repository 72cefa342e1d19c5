package logger

import (
	"sleepclinic-service/internal/app/config"
	"sleepclinic-service/internal/pkg/constvars"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapLogger builds the JSON logger handed to every layer below main.
func NewZapLogger(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *zap.Logger {
	zapLogger, err := newZapConfig(driverConfig.Logger, internalConfig.App.Env).Build()
	if err != nil {
		logrus.Fatalf("Error while initializing zap logger: %v", err)
	}
	return zapLogger.With(
		zap.String(constvars.LoggingServiceKey, constvars.ServiceName),
		zap.String(constvars.LoggingVersionKey, internalConfig.App.Version),
	)
}

// newZapConfig starts from zap's production preset. Unknown levels fall back
// to info, and only production writes to the configured files.
func newZapConfig(loggerConfig config.Logger, env string) zap.Config {
	level, err := zapcore.ParseLevel(loggerConfig.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.Development = env == "development"
	zapConfig.Sampling = nil
	zapConfig.EncoderConfig.TimeKey = "time"
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	zapConfig.OutputPaths = []string{"stdout"}

	if env == "production" {
		zapConfig.OutputPaths = []string{loggerConfig.OutputFileName}
		zapConfig.ErrorOutputPaths = []string{"stderr", loggerConfig.OutputErrorFileName}
	}
	return zapConfig
}
