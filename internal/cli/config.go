package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/trig29/Flowchart-Json-Editor/pkg/history"
	"github.com/trig29/Flowchart-Json-Editor/pkg/store"
)

// Config holds the editor settings loaded from the TOML config file.
// Every field has a usable default; a missing config file is not an error.
type Config struct {
	// HistoryLimit bounds the undo/redo depth of the interactive editor.
	HistoryLimit int `toml:"history_limit"`

	// Listen is the address the serve command binds to.
	Listen string `toml:"listen"`

	Store StoreConfig `toml:"store"`
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	// Backend is one of "file", "memory", "redis", "mongo".
	Backend string `toml:"backend"`

	// Dir is the document directory for the file backend.
	// Empty means ~/.config/flowedit/documents/
	Dir string `toml:"dir"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// defaultConfig returns the settings used when no config file exists.
func defaultConfig() Config {
	return Config{
		HistoryLimit: history.DefaultLimit,
		Listen:       "127.0.0.1:8765",
		Store: StoreConfig{
			Backend:   "file",
			RedisAddr: "localhost:6379",
			MongoURI:  "mongodb://localhost:27017",
		},
	}
}

// defaultConfigPath returns ~/.config/flowedit/config.toml.
func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "flowedit", "config.toml"), nil
}

// loadConfig reads the TOML config at path, falling back to the default
// location when path is empty and to defaults when no file exists. An
// explicitly given path must exist.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return cfg, err
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, fmt.Errorf("config file not found: %s", path)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// configKey is the context key for the loaded config.
const configKey ctxKey = 1

// withConfig returns a new context with the config attached.
func withConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext retrieves the config from ctx, or defaults if absent.
func configFromContext(ctx context.Context) Config {
	if cfg, ok := ctx.Value(configKey).(Config); ok {
		return cfg
	}
	return defaultConfig()
}

// openStore builds the configured persistence backend.
func openStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case "", "file":
		return store.NewFileStore(cfg.Dir)
	case "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		return store.NewRedisStore(ctx, store.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Backend)
	}
}
