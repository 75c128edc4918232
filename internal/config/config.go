// Package config loads newsstand configuration from defaults, an optional
// YAML file and NEWSSTAND_* environment variables, in that order of
// precedence (later wins).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"newsstand/store"
)

// FileName is the config file looked up in the working directory when no
// explicit path is given.
const FileName = "newsstand.yaml"

const envPrefix = "NEWSSTAND_"

// Config is the full newsstand configuration.
type Config struct {
	Database Database `koanf:"database"`
	Log      Log      `koanf:"log"`
}

// Database configures the SQLite store.
type Database struct {
	// Path is the database file; ":memory:" for an in-memory store.
	Path string `koanf:"path"`
	// ForeignKeys turns on per-connection foreign key enforcement.
	ForeignKeys bool `koanf:"foreign_keys"`
}

// Log configures logging.
type Log struct {
	Level string `koanf:"level"`
	// Queries logs every SQL statement at debug level.
	Queries bool `koanf:"queries"`
}

func defaults() map[string]any {
	return map[string]any{
		"database.path":         store.DefaultPath,
		"database.foreign_keys": false,
		"log.level":             "info",
		"log.queries":           false,
	}
}

// Load reads the configuration. path may be "": then FileName is used if
// it exists, and a missing file is not an error. Environment variables
// override file values; nested keys use a double underscore, e.g.
// NEWSSTAND_DATABASE__FOREIGN_KEYS=true.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("config: defaults: %w", err)
	}

	explicit := path != ""
	if path == "" {
		path = FileName
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	} else if explicit {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envToKey), nil); err != nil {
		return Config{}, fmt.Errorf("config: env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

// envToKey maps NEWSSTAND_DATABASE__FOREIGN_KEYS to database.foreign_keys.
// "__" separates nesting levels so key names may keep single underscores.
func envToKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
