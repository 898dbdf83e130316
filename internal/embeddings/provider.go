// Package embeddings turns text into fixed-length vectors for the similarity
// fallback tier.
package embeddings

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kamusis/verbmotion/internal/config"
)

// Provider embeds text into a fixed-length float vector.
//
// Implementations must be deterministic for the same input text and model.
type Provider interface {
	ModelID() string
	Dim() int
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Config contains the resolved embeddings configuration.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// LoadConfig resolves embeddings config from environment variables first,
// then ~/.verbmotion/.env.
func LoadConfig() (*Config, error) {
	var cfg Config
	for key, dst := range map[string]*string{
		config.KeyEmbeddingsProvider: &cfg.Provider,
		config.KeyEmbeddingsModel:    &cfg.Model,
		config.KeyEmbeddingsAPIKey:   &cfg.APIKey,
		config.KeyEmbeddingsBaseURL:  &cfg.BaseURL,
	} {
		v, err := config.GetConfigValue(key)
		if err != nil {
			return nil, err
		}
		*dst = v
	}
	return &cfg, nil
}

// NewFromConfig returns the provider cfg selects.
func NewFromConfig(cfg *Config) (Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("embeddings config is nil")
	}
	switch cfg.Provider {
	case "":
		return nil, fmt.Errorf("embeddings provider is not configured (set %s)", config.KeyEmbeddingsProvider)
	case "openai":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "https://api.openai.com/v1"
		}
		return NewOpenAI(cfg.Model, cfg.APIKey, baseURL), nil
	case "ollama":
		return NewOllama(cfg.BaseURL, cfg.Model), nil
	case "hashing":
		dim := DefaultHashingDim
		if cfg.Model != "" {
			n, err := strconv.Atoi(cfg.Model)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("hashing provider expects a positive dimension as model, got %q", cfg.Model)
			}
			dim = n
		}
		return NewHashing(dim), nil
	default:
		return nil, fmt.Errorf("unsupported embeddings provider: %s", cfg.Provider)
	}
}
