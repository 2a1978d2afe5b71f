package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config captures settings stored in .modelcat/config.yaml.
//
// Example YAML:
//
//	catalog:
//	  path: catalog.yaml
//	cache:
//	  chat-size: 32
//	  embedding-size: 8
//	logging:
//	  level: info
//	  format: text
//
// Every field can be overridden from the environment (see the env tags).
// Zero-value Config is invalid – use Default() when no config file is
// found.
type Config struct {
	Catalog Catalog `yaml:"catalog"`
	Cache   Cache   `yaml:"cache"`
	Logging Logging `yaml:"logging"`
}

// Catalog locates the catalog document.
type Catalog struct {
	// Path is relative to the project root unless absolute.
	Path string `yaml:"path" env:"MODELCAT_CATALOG_PATH"`
}

// Cache sizes the two model caches.
type Cache struct {
	ChatSize      int `yaml:"chat-size" env:"MODELCAT_CHAT_CACHE_SIZE"`
	EmbeddingSize int `yaml:"embedding-size" env:"MODELCAT_EMBEDDING_CACHE_SIZE"`
}

// Logging captures logging-specific settings.
type Logging struct {
	Level  string `yaml:"level" env:"MODELCAT_LOG_LEVEL"`
	Format string `yaml:"format" env:"MODELCAT_LOG_FORMAT"`
}

const (
	defaultCatalogPath   = "catalog.yaml"
	defaultChatSize      = 32
	defaultEmbeddingSize = 8
	defaultLogLevel      = "info"
	defaultLogFormat     = "text"
)

// relPath is where the config file lives inside a project root.
const relPath = ".modelcat/config.yaml"

// Default returns a Config populated with hard-coded defaults.
func Default() *Config {
	return &Config{
		Catalog: Catalog{Path: defaultCatalogPath},
		Cache: Cache{
			ChatSize:      defaultChatSize,
			EmbeddingSize: defaultEmbeddingSize,
		},
		Logging: Logging{Level: defaultLogLevel, Format: defaultLogFormat},
	}
}

// Load reads .modelcat/config.yaml located under projectRoot. When the file
// does not exist the defaults are used. Environment overrides are applied
// in both cases.
func Load(projectRoot string) (*Config, error) {
	if projectRoot == "" {
		return nil, fmt.Errorf("projectRoot must not be empty")
	}
	cfg, err := LoadFS(os.DirFS(projectRoot))
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(cfg.Catalog.Path) {
		cfg.Catalog.Path = filepath.Join(projectRoot, cfg.Catalog.Path)
	}
	return cfg, nil
}

// LoadFS performs the same operation as Load but works directly on an
// fs.FS. Catalog.Path is left as written.
func LoadFS(fsys fs.FS) (*Config, error) {
	cfg := Default()

	data, err := fs.ReadFile(fsys, relPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", relPath, err)
		}
	case os.IsNotExist(err):
		// No config file – keep defaults.
	default:
		return nil, fmt.Errorf("failed to read %s: %w", relPath, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fillDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fillDefaults restores defaults for fields a config file left empty.
func fillDefaults(cfg *Config) {
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = defaultCatalogPath
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaultLogFormat
	}
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if c.Cache.ChatSize < 1 {
		return fmt.Errorf("cache.chat-size must be at least 1, got %d", c.Cache.ChatSize)
	}
	if c.Cache.EmbeddingSize < 1 {
		return fmt.Errorf("cache.embedding-size must be at least 1, got %d", c.Cache.EmbeddingSize)
	}
	return nil
}
