// Package observability provides the zap logger setup and the Prometheus
// metrics exported by the relay.
package observability

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger. Production JSON encoding is the
// default; set LOG_FORMAT=console for human-readable development output.
func NewLogger(serviceName string) *zap.Logger {
	var config zap.Config
	if os.Getenv("LOG_FORMAT") == "console" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	logger, err := config.Build()
	if err != nil {
		// zap only fails to build on invalid config, which is static here.
		panic(err)
	}
	return logger.With(zap.String("service", serviceName))
}
