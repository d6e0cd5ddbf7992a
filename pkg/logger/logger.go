package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu   sync.Mutex
	base = zap.NewNop()
)

// Init builds the process-wide logger. pretty switches to the colored
// console encoder for local development.
func Init(level string, pretty bool) (*zap.Logger, error) {
	var cfg zap.Config
	if pretty {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := cfg.Build(zap.AddStacktrace(zapcore.FatalLevel))
	if err != nil {
		return nil, err
	}

	mu.Lock()
	base = l
	mu.Unlock()
	return l, nil
}

// L returns the process-wide logger. Before Init it is a no-op logger,
// which keeps tests quiet.
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return base
}

func Sync() {
	_ = L().Sync()
}
