// README: zap logger bootstrap.
package observability

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process-wide logger. Production config (JSON, info level)
// unless ATLAS_ENV is "dev", which switches to the colored development encoder.
func NewLogger() (*zap.Logger, error) {
	if os.Getenv("ATLAS_ENV") == "dev" {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	return cfg.Build()
}
