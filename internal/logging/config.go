package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EnvLogLevel     = "ENUMTABLE_LOG_LEVEL"
	EnvLogFormat    = "ENUMTABLE_LOG_FORMAT"
	EnvLogTimestamp = "ENUMTABLE_LOG_TIMESTAMP"
	EnvLogNoColor   = "ENUMTABLE_LOG_NOCOLOR"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Config selects how the process-wide logger is built.
type Config struct {
	Level     zapcore.Level
	Disabled  bool
	JSON      bool
	Timestamp bool
	NoColor   bool
}

var (
	mu            sync.RWMutex
	logger        = zap.NewNop()
	configureOnce sync.Once
)

// L returns the process-wide logger. It is a no-op logger until Configure
// or SetLogger runs.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetLogger replaces the process-wide logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	logger = l
	mu.Unlock()
}

func ConfigureRuntime() *zap.Logger { return Configure(ProfileRuntime, os.Stderr) }

func ConfigureTests() *zap.Logger { return Configure(ProfileTest, os.Stderr) }

// Configure builds the logger for profile once, applying environment
// overrides, and installs it. Later calls return the installed logger.
func Configure(profile Profile, w io.Writer) *zap.Logger {
	configureOnce.Do(func() {
		cfg := DefaultConfig(profile)
		ApplyEnv(&cfg, os.Getenv)
		SetLogger(New(cfg, w))
	})
	return L()
}

func DefaultConfig(profile Profile) Config {
	switch profile {
	case ProfileTest:
		return Config{Level: zapcore.DebugLevel, NoColor: true}
	default:
		return Config{Level: zapcore.WarnLevel, Timestamp: true}
	}
}

// ApplyEnv overrides cfg from ENUMTABLE_LOG_* variables. Unparseable values
// are ignored.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if lvl, off, ok := parseLevel(getenv(EnvLogLevel)); ok {
		cfg.Level, cfg.Disabled = lvl, off
	}
	switch strings.ToLower(strings.TrimSpace(getenv(EnvLogFormat))) {
	case "json":
		cfg.JSON = true
	case "console", "text":
		cfg.JSON = false
	}
	if v, ok := parseBool(getenv(EnvLogTimestamp)); ok {
		cfg.Timestamp = v
	}
	if v, ok := parseBool(getenv(EnvLogNoColor)); ok {
		cfg.NoColor = v
	}
}

// New builds a logger writing to w.
func New(cfg Config, w io.Writer) *zap.Logger {
	if cfg.Disabled || w == nil {
		return zap.NewNop()
	}
	var enc zapcore.Encoder
	if cfg.JSON {
		ec := zap.NewProductionEncoderConfig()
		if !cfg.Timestamp {
			ec.TimeKey = zapcore.OmitKey
		}
		enc = zapcore.NewJSONEncoder(ec)
	} else {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		if cfg.NoColor {
			ec.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		if !cfg.Timestamp {
			ec.TimeKey = zapcore.OmitKey
		}
		enc = zapcore.NewConsoleEncoder(ec)
	}
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), cfg.Level)
	return zap.New(core).Named("enumtablegen")
}

func parseLevel(raw string) (lvl zapcore.Level, off, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zapcore.WarnLevel, false, false
	case "trace", "debug":
		return zapcore.DebugLevel, false, true
	case "info":
		return zapcore.InfoLevel, false, true
	case "warn", "warning":
		return zapcore.WarnLevel, false, true
	case "error":
		return zapcore.ErrorLevel, false, true
	case "disabled", "disable", "off", "none":
		return zapcore.WarnLevel, true, true
	default:
		return zapcore.WarnLevel, false, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
