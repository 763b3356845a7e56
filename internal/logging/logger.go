// Package logging provides config-driven categorized file logging for mockachino.
// The interactive UI owns the terminal, so everything goes to a log file.
// Logging is controlled by logging.debug_mode in the config - when false, no logs are written.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jaidar2003/Mockachino/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup and shutdown
	CategoryAPI    Category = "api"    // Outbound collection fetches
	CategoryUI     Category = "ui"     // Page models and user actions
	CategoryConfig Category = "config" // Config load and hot reload
)

var (
	mu      sync.RWMutex
	cfg     config.LoggingConfig
	base    *zap.Logger
	file    *os.File
	loggers = make(map[Category]*zap.SugaredLogger)
	nop     = zap.NewNop().Sugar()
)

// Initialize sets up the log file from the logging config.
// A config with debug_mode off leaves every category as a no-op.
func Initialize(lc config.LoggingConfig) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	cfg = lc

	if !lc.DebugMode {
		return nil
	}
	if lc.File == "" {
		return fmt.Errorf("logging file path required")
	}

	if err := os.MkdirAll(filepath.Dir(lc.File), 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}
	f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if lc.JSONFormat {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	file = f
	base = zap.New(zapcore.NewCore(enc, zapcore.AddSync(f), parseLevel(lc.Level)))
	base.Info("logging initialized", zap.String("file", lc.File), zap.String("level", lc.Level))
	return nil
}

// Close flushes and closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if base != nil {
		_ = base.Sync()
		base = nil
	}
	if file != nil {
		_ = file.Close()
		file = nil
	}
	loggers = make(map[Category]*zap.SugaredLogger)
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return categoryEnabledLocked(category)
}

func categoryEnabledLocked(category Category) bool {
	if !cfg.DebugMode || base == nil {
		return false
	}
	enabled, exists := cfg.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if debug mode is disabled or category is disabled.
func Get(category Category) *zap.SugaredLogger {
	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	enabled := categoryEnabledLocked(category)
	mu.RUnlock()

	if !enabled {
		return nop
	}

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}
	if base == nil {
		return nop
	}
	l := base.Named(string(category)).Sugar()
	loggers[category] = l
	return l
}

// API logs an info message to the api category.
func API(format string, args ...interface{}) {
	Get(CategoryAPI).Infof(format, args...)
}

// APIDebug logs a debug message to the api category.
func APIDebug(format string, args ...interface{}) {
	Get(CategoryAPI).Debugf(format, args...)
}

// APIError logs an error message to the api category.
func APIError(format string, args ...interface{}) {
	Get(CategoryAPI).Errorf(format, args...)
}

// UI logs an info message to the ui category.
func UI(format string, args ...interface{}) {
	Get(CategoryUI).Infof(format, args...)
}

// UIDebug logs a debug message to the ui category.
func UIDebug(format string, args ...interface{}) {
	Get(CategoryUI).Debugf(format, args...)
}

// Boot logs an info message to the boot category.
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Infof(format, args...)
}

// ConfigWarn logs a warning to the config category.
func ConfigWarn(format string, args ...interface{}) {
	Get(CategoryConfig).Warnf(format, args...)
}
