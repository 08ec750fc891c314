package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger returns the program logger described by c. With level "none" it is
// a no-op logger. The returned close function flushes and releases the
// log file.
func (c LogConfig) Logger(name string) (*zap.Logger, func() error, error) {
	var level zap.AtomicLevel
	switch c.Level {
	case LogDebug:
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case LogNormal:
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	default:
		return zap.NewNop(), func() error { return nil }, nil
	}

	flags := os.O_CREATE | os.O_WRONLY
	if c.Mode == "overwrite" {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(c.Path, flags, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to access log destination (%s): %w", c.Path, err)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(f), level)
	log := zap.New(core, zap.AddCaller()).Named(name)

	closer := func() error {
		_ = log.Sync()
		return f.Close()
	}
	return log, closer, nil
}
