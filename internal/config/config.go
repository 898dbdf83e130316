package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the in-memory representation of ~/.verbmotion/verbmotion.yaml.
type Config struct {
	TemplatesDir     string        `yaml:"templates_dir"`
	VerbHashFile     string        `yaml:"verb_hash_file"`
	AnchorsDir       string        `yaml:"anchors_dir"`
	EmbeddingTimeout time.Duration `yaml:"embedding_timeout,omitempty"`
	CacheSize        int           `yaml:"cache_size,omitempty"`
	LogLevel         string        `yaml:"log_level,omitempty"`
}

const (
	// DefaultEmbeddingTimeout bounds one embedding fallback round trip.
	DefaultEmbeddingTimeout = 10 * time.Second
	// DefaultCacheSize is the number of verb embeddings kept in memory.
	DefaultCacheSize = 256
)

// HomeDir returns the absolute path to ~/.verbmotion/.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".verbmotion"), nil
}

// ConfigPath returns the absolute path to ~/.verbmotion/verbmotion.yaml.
func ConfigPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "verbmotion.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the Config written by verbmotion init.
func DefaultConfig() (*Config, error) {
	dir, err := HomeDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		TemplatesDir:     filepath.Join(dir, "templates"),
		VerbHashFile:     filepath.Join(dir, "verb_hash.json"),
		AnchorsDir:       filepath.Join(dir, "anchors"),
		EmbeddingTimeout: DefaultEmbeddingTimeout,
		CacheSize:        DefaultCacheSize,
		LogLevel:         "warn",
	}, nil
}

// Load reads and parses ~/.verbmotion/verbmotion.yaml.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads and parses the config at path, filling unset fields.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	for _, p := range []*string{&cfg.TemplatesDir, &cfg.VerbHashFile, &cfg.AnchorsDir} {
		if *p, err = ExpandPath(*p); err != nil {
			return nil, err
		}
	}
	if cfg.EmbeddingTimeout <= 0 {
		cfg.EmbeddingTimeout = DefaultEmbeddingTimeout
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	return &cfg, nil
}

// Save marshals cfg and writes it to ~/.verbmotion/verbmotion.yaml.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(path), err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}
