package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Log is the process-wide logger. It is a no-op until Init is called.
var Log = zap.NewNop()

// Init builds the zap logger for the given environment (prod or anything else)
func Init(env string) error {
	var cfg zap.Config
	switch strings.ToLower(env) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = l
	return nil
}

// Sync flushes buffered entries
func Sync() {
	_ = Log.Sync()
}
