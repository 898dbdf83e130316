package motion

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/titanous/json5"
	"gopkg.in/yaml.v3"
)

// Decode parses one template document. A document holds a single template
// or an array of templates. format is a file extension: ".json", ".json5",
// ".yaml" or ".yml".
func Decode(data []byte, format string) ([]Template, error) {
	switch strings.ToLower(format) {
	case ".json", ".json5":
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var ts []Template
			if err := json5.Unmarshal(trimmed, &ts); err != nil {
				return nil, err
			}
			return ts, nil
		}
		var t Template
		if err := json5.Unmarshal(trimmed, &t); err != nil {
			return nil, err
		}
		return []Template{t}, nil
	case ".yaml", ".yml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, err
		}
		if len(node.Content) == 0 {
			return nil, nil
		}
		if node.Content[0].Kind == yaml.SequenceNode {
			var ts []Template
			if err := node.Content[0].Decode(&ts); err != nil {
				return nil, err
			}
			return ts, nil
		}
		var t Template
		if err := node.Content[0].Decode(&t); err != nil {
			return nil, err
		}
		return []Template{t}, nil
	}
	return nil, fmt.Errorf("unsupported template format %q", format)
}

// LoadFile reads the templates held by path.
func LoadFile(path string) ([]Template, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read template file %s: %w", path, err)
	}
	ts, err := Decode(b, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("invalid template file %s: %w", path, err)
	}
	return ts, nil
}

// IsTemplateFile reports whether path has a template document extension.
func IsTemplateFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".json5", ".yaml", ".yml":
		return true
	}
	return false
}

// LoadDir reads every template document directly under dir, in file name
// order.
func LoadDir(dir string) ([]Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read templates dir %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsTemplateFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var out []Template
	for _, n := range names {
		ts, err := LoadFile(filepath.Join(dir, n))
		if err != nil {
			return nil, err
		}
		out = append(out, ts...)
	}
	return out, nil
}
