// Package config resolves runtime settings from a .env file, the
// environment and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/abhisek/quizdeck/internal/store"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvDB        = "QUIZDECK_DB"
	EnvQuestions = "QUIZDECK_QUESTIONS"
	EnvSeed      = "QUIZDECK_SEED"
	EnvLogLevel  = "QUIZDECK_LOG_LEVEL"
	EnvLogFile   = "QUIZDECK_LOG_FILE"
)

// Config holds everything the commands need to build the app.
type Config struct {
	// DBPath is the SQLite file. Empty means the default data directory.
	DBPath string

	// QuestionsPath overrides the built-in deck. Empty means built-in.
	QuestionsPath string

	// Seed makes the shuffle reproducible. Zero means random.
	Seed uint64

	// Ephemeral keeps all progress in memory for this run only.
	Ephemeral bool

	LogLevel slog.Level

	// LogFile receives the TUI's log output. Empty means quizdeck.log
	// next to the database.
	LogFile string
}

// DefaultConfig returns a Config with defaults.
func DefaultConfig() Config {
	return Config{LogLevel: slog.LevelInfo}
}

// LoadDotEnv loads the given .env files into the process environment
// without overriding variables that are already set. With no arguments it
// loads ./.env. Missing files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if p := os.Getenv(EnvDB); p != "" {
		cfg.DBPath = p
	}
	if p := os.Getenv(EnvQuestions); p != "" {
		cfg.QuestionsPath = p
	}
	if s := os.Getenv(EnvSeed); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	if l := os.Getenv(EnvLogLevel); l != "" {
		lvl, err := ParseLevel(l)
		if err != nil {
			return cfg, err
		}
		cfg.LogLevel = lvl
	}
	if p := os.Getenv(EnvLogFile); p != "" {
		cfg.LogFile = p
	}

	return cfg, nil
}

// ParseLevel accepts debug, info, warn or error in any case.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%s: unknown level %q", EnvLogLevel, s)
	}
	return lvl, nil
}

// ResolveDBPath returns DBPath or the default location, and makes sure the
// parent directory exists.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, store.EnsureDir(c.DBPath)
	}
	return store.DefaultDBPath()
}

// ResolveLogFile returns LogFile, or quizdeck.log beside dbPath.
func (c Config) ResolveLogFile(dbPath string) string {
	if c.LogFile != "" {
		return c.LogFile
	}
	if dbPath == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(dbPath), "quizdeck.log")
}
