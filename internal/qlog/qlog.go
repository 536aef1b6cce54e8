// Package qlog centralizes structured logger construction so every package
// in this module logs through the same zap.Logger configuration, the way
// the oqtopus-style engines in the wider quantum-tooling ecosystem call
// zap.L() from anywhere without threading a logger through every function.
package qlog

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu      sync.RWMutex
	current = zap.NewNop()
)

// Configure installs the process-wide logger. Format selects between a
// human console encoder and structured JSON; level is one of zap's parsable
// level strings ("debug", "info", "warn", "error").
func Configure(level, format string) error {
	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	if level != "" {
		var lvl zap.AtomicLevel
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return err
		}
		cfg.Level = lvl
	}
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	mu.Lock()
	current = logger
	mu.Unlock()
	return nil
}

// L returns the current process-wide logger. Before Configure is called it
// is a no-op logger, so packages may call qlog.L() unconditionally at
// import time or in tests.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Sync flushes any buffered log entries. Safe to call even when no logger
// has been configured.
func Sync() {
	_ = L().Sync()
}
