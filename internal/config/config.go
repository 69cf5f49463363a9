package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything cocteler reads from its config file.
type Config struct {
	DataDir       string
	LogFile       string
	LogLevel      string
	Language      string
	Theme         string
	WriteDebounce time.Duration
	FlushTimeout  time.Duration
	// Ephemeral keeps all state in memory for the session. Flag only.
	Ephemeral bool
}

const (
	defaultConfigPath      = "~/.config/cocteler/config.toml"
	defaultDataDir         = "~/.local/share/cocteler"
	defaultLogLevel        = "info"
	defaultLanguage        = "en"
	defaultTheme           = "Negroni"
	defaultWriteDebounceMS = 150
	defaultFlushTimeoutMS  = 2000

	dbFileName  = "cocteler.db"
	logFileName = "cocteler.log"
)

// LogLevels lists the accepted log_level values.
var LogLevels = []string{"debug", "info", "warn", "error"}

type fileConfig struct {
	DataDir         string `toml:"data_dir"`
	LogFile         string `toml:"log_file"`
	LogLevel        string `toml:"log_level"`
	Language        string `toml:"language"`
	Theme           string `toml:"theme"`
	WriteDebounceMS *int   `toml:"write_debounce_ms"`
	FlushTimeoutMS  *int   `toml:"flush_timeout_ms"`
}

func (f fileConfig) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.LogLevel, validation.In(anySlice(LogLevels)...)),
		validation.Field(&f.Language, validation.In("en", "es")),
		validation.Field(&f.WriteDebounceMS, validation.Min(0), validation.Max(60_000)),
		validation.Field(&f.FlushTimeoutMS, validation.NilOrNotEmpty, validation.Min(1), validation.Max(60_000)),
	)
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	dataDir := mustExpand(defaultDataDir)
	return Config{
		DataDir:       dataDir,
		LogFile:       filepath.Join(dataDir, logFileName),
		LogLevel:      defaultLogLevel,
		Language:      defaultLanguage,
		Theme:         defaultTheme,
		WriteDebounce: defaultWriteDebounceMS * time.Millisecond,
		FlushTimeout:  defaultFlushTimeoutMS * time.Millisecond,
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	raw.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	raw.Language = strings.ToLower(strings.TrimSpace(raw.Language))
	if err := raw.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	if dir := strings.TrimSpace(raw.DataDir); dir != "" {
		cfg.DataDir = mustExpand(dir)
	}
	cfg.LogFile = filepath.Join(cfg.DataDir, logFileName)
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if raw.LogLevel != "" {
		cfg.LogLevel = raw.LogLevel
	}
	if raw.Language != "" {
		cfg.Language = raw.Language
	}
	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		cfg.Theme = theme
	}
	if raw.WriteDebounceMS != nil {
		cfg.WriteDebounce = time.Duration(*raw.WriteDebounceMS) * time.Millisecond
	}
	if raw.FlushTimeoutMS != nil {
		cfg.FlushTimeout = time.Duration(*raw.FlushTimeoutMS) * time.Millisecond
	}

	return cfg, nil
}

// Overrides carries command-line or environment values. Zero values mean
// "not set".
type Overrides struct {
	DataDir   string
	LogFile   string
	LogLevel  string
	Language  string
	Theme     string
	Ephemeral bool
}

// WithOverrides applies the set fields of o. A new data dir also moves the
// log file unless one is given explicitly.
func (c Config) WithOverrides(o Overrides) Config {
	if dir := strings.TrimSpace(o.DataDir); dir != "" {
		defaultLog := filepath.Join(c.DataDir, logFileName)
		c.DataDir = mustExpand(dir)
		if c.LogFile == defaultLog {
			c.LogFile = filepath.Join(c.DataDir, logFileName)
		}
	}
	if f := strings.TrimSpace(o.LogFile); f != "" {
		c.LogFile = mustExpand(f)
	}
	if l := strings.ToLower(strings.TrimSpace(o.LogLevel)); l != "" {
		c.LogLevel = l
	}
	if l := strings.ToLower(strings.TrimSpace(o.Language)); l != "" {
		c.Language = l
	}
	if t := strings.TrimSpace(o.Theme); t != "" {
		c.Theme = t
	}
	if o.Ephemeral {
		c.Ephemeral = true
	}
	return c
}

// DBPath returns the SQLite database location.
func (c Config) DBPath() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return filepath.Join(mustExpand(defaultDataDir), dbFileName)
	}
	return filepath.Join(c.DataDir, dbFileName)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

func anySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
