package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Keys read through GetConfigValue.
const (
	KeyEmbeddingsProvider = "VERBMOTION_EMBEDDINGS_PROVIDER"
	KeyEmbeddingsModel    = "VERBMOTION_EMBEDDINGS_MODEL"
	KeyEmbeddingsAPIKey   = "VERBMOTION_EMBEDDINGS_API_KEY"
	KeyEmbeddingsBaseURL  = "VERBMOTION_EMBEDDINGS_BASE_URL"
)

// DotEnvPath returns the absolute path to ~/.verbmotion/.env.
func DotEnvPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".env"), nil
}

// LoadDotEnv reads ~/.verbmotion/.env. A missing file yields an empty map.
func LoadDotEnv() (map[string]string, error) {
	p, err := DotEnvPath()
	if err != nil {
		return nil, err
	}
	return LoadDotEnvFile(p)
}

// LoadDotEnvFile parses KEY=VALUE lines from path.
//
// Parsing rules:
// - Empty lines and lines starting with '#' are ignored.
// - An optional leading "export " is dropped.
// - Whitespace around KEY and VALUE is trimmed.
// - One pair of matching single or double quotes around VALUE is removed.
func LoadDotEnvFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("cannot open dotenv file %s: %w", path, err)
	}
	defer f.Close()

	out := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		out[k] = unquote(strings.TrimSpace(v))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read dotenv file %s: %w", path, err)
	}
	return out, nil
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

// GetConfigValue returns the process environment value for key, falling back
// to ~/.verbmotion/.env.
func GetConfigValue(key string) (string, error) {
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	dotenv, err := LoadDotEnv()
	if err != nil {
		return "", err
	}
	return dotenv[key], nil
}

// EnsureDotEnvTemplate creates ~/.verbmotion/.env with empty values for the
// embedding keys unless the file already exists.
func EnsureDotEnvTemplate() error {
	p, err := DotEnvPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(p); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("cannot stat dotenv file %s: %w", p, err)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(p), err)
	}

	var b strings.Builder
	b.WriteString("# provider: openai | ollama | hashing\n")
	for _, k := range []string{KeyEmbeddingsProvider, KeyEmbeddingsModel, KeyEmbeddingsAPIKey, KeyEmbeddingsBaseURL} {
		b.WriteString(k + "=\n")
	}
	if err := os.WriteFile(p, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("cannot write dotenv template %s: %w", p, err)
	}
	return nil
}
