// Package logging provides config-driven categorized logging for sociogram.
// Logs are written to .sociogram/logs/ when debug_mode is on; otherwise only
// warnings and errors reach the console writer (if any).
// Categories are zap named loggers and can be muted at runtime.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"sociogram/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup and shutdown
	CategoryFeed   Category = "feed"   // Feed store mutations and persistence
	CategoryPrefs  Category = "prefs"  // Preference store
	CategoryStore  Category = "store"  // Storage backends
	CategoryConfig Category = "config" // Config loading and reloads
	CategoryUI     Category = "ui"     // Terminal UI
)

// Logger owns the root zap logger and the live level/category settings.
type Logger struct {
	root       *zap.Logger
	level      zap.AtomicLevel
	categories atomic.Pointer[map[string]bool]
	debugMode  bool
	file       *os.File
	closeOnce  sync.Once
}

// New builds a Logger. In debug mode output goes to cfg.File, or to a dated
// file under <stateDir>/logs. Otherwise output goes to console at warn level
// or above; a nil console discards it.
func New(cfg config.LoggingConfig, stateDir string, console io.Writer) (*Logger, error) {
	l := &Logger{
		level:     zap.NewAtomicLevelAt(parseLevel(cfg.Level)),
		debugMode: cfg.DebugMode,
	}
	l.setCategories(cfg.Categories)

	var sink zapcore.WriteSyncer
	switch {
	case cfg.DebugMode:
		path := cfg.File
		if path == "" {
			logsDir := filepath.Join(stateDir, "logs")
			if err := os.MkdirAll(logsDir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create logs directory: %w", err)
			}
			path = filepath.Join(logsDir, time.Now().Format("2006-01-02")+".log")
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = f
		sink = zapcore.AddSync(f)
	case console != nil:
		sink = zapcore.AddSync(console)
		if l.level.Level() < zapcore.WarnLevel {
			l.level.SetLevel(zapcore.WarnLevel)
		}
	default:
		l.root = zap.NewNop()
		return l, nil
	}

	core := zapcore.NewCore(newEncoder(cfg.Format), sink, l.level)
	l.root = zap.New(categoryCore{Core: core, logger: l})
	return l, nil
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	l := &Logger{root: zap.NewNop(), level: zap.NewAtomicLevel()}
	l.setCategories(nil)
	return l
}

func newEncoder(format string) zapcore.Encoder {
	if format == "json" {
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(ec)
	}
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewConsoleEncoder(ec)
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
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

// Zap returns the root logger.
func (l *Logger) Zap() *zap.Logger {
	return l.root
}

// Get returns the named logger for a category.
func (l *Logger) Get(category Category) *zap.Logger {
	return l.root.Named(string(category))
}

// Level returns the current minimum level.
func (l *Logger) Level() zapcore.Level {
	return l.level.Level()
}

// IsDebugMode returns whether file logging is on.
func (l *Logger) IsDebugMode() bool {
	return l.debugMode
}

// IsCategoryEnabled returns whether a specific category is enabled.
func (l *Logger) IsCategoryEnabled(category Category) bool {
	return l.allows(string(category))
}

// Apply retunes level and category toggles from a reloaded config. The sink
// chosen at construction stays in place.
func (l *Logger) Apply(cfg config.LoggingConfig) {
	level := parseLevel(cfg.Level)
	if !l.debugMode && level < zapcore.WarnLevel {
		level = zapcore.WarnLevel
	}
	l.level.SetLevel(level)
	l.setCategories(cfg.Categories)
}

func (l *Logger) setCategories(categories map[string]bool) {
	cp := make(map[string]bool, len(categories))
	for k, v := range categories {
		cp[k] = v
	}
	l.categories.Store(&cp)
}

// allows reports whether a logger name's top-level category is enabled.
func (l *Logger) allows(name string) bool {
	if name == "" {
		return true
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	cats := l.categories.Load()
	if cats == nil {
		return true
	}
	enabled, ok := (*cats)[name]
	return !ok || enabled
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		_ = l.root.Sync()
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}

// categoryCore drops entries whose category is muted.
type categoryCore struct {
	zapcore.Core
	logger *Logger
}

func (c categoryCore) With(fields []zapcore.Field) zapcore.Core {
	return categoryCore{Core: c.Core.With(fields), logger: c.logger}
}

func (c categoryCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.logger.allows(entry.LoggerName) {
		return ce
	}
	if c.Enabled(entry.Level) {
		return ce.AddCore(entry, c)
	}
	return ce
}

// =============================================================================
// PERFORMANCE TIMING
// =============================================================================

// Timer measures an operation and logs its duration.
type Timer struct {
	logger *zap.Logger
	op     string
	start  time.Time
}

// StartTimer begins timing an operation
func StartTimer(logger *zap.Logger, operation string) *Timer {
	return &Timer{
		logger: logger,
		op:     operation,
		start:  time.Now(),
	}
}

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Debug(t.op+" completed", zap.Duration("elapsed", elapsed))
	return elapsed
}

// StopWithThreshold logs warning if duration exceeds threshold
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		t.logger.Warn(t.op+" was slow", zap.Duration("elapsed", elapsed), zap.Duration("threshold", threshold))
	} else {
		t.logger.Debug(t.op+" completed", zap.Duration("elapsed", elapsed))
	}
	return elapsed
}
