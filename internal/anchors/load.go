package anchors

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Load reads a store from dir containing manifest + anchors + vectors.
func Load(dir string) (*Store, error) {
	manifestPath := filepath.Join(dir, manifestFile)
	b, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read manifest %s: %w", manifestPath, err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest JSON %s: %w", manifestPath, err)
	}
	if m.Dim <= 0 {
		return nil, fmt.Errorf("invalid dim in manifest: %d", m.Dim)
	}
	if m.VectorFile == "" {
		m.VectorFile = defaultVectorFile
	}
	if m.AnchorsFile == "" {
		m.AnchorsFile = defaultAnchorFile
	}

	entries, err := loadEntries(filepath.Join(dir, m.AnchorsFile))
	if err != nil {
		return nil, err
	}
	vectors, err := loadVectors(filepath.Join(dir, m.VectorFile), len(entries), m.Dim)
	if err != nil {
		return nil, err
	}
	return &Store{Manifest: m, Entries: entries, Vectors: vectors}, nil
}

func loadEntries(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open anchors file %s: %w", path, err)
	}
	defer f.Close()

	var out []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("invalid anchors JSONL %s: %w", path, err)
		}
		out = append(out, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read anchors file %s: %w", path, err)
	}
	return out, nil
}

func loadVectors(path string, n, dim int) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open vector file %s: %w", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("cannot stat vector file %s: %w", path, err)
	}
	expected := int64(n * dim * 4)
	if expected != st.Size() {
		return nil, fmt.Errorf("vector file size mismatch: got %d want %d (anchors=%d dim=%d)", st.Size(), expected, n, dim)
	}

	out := make([]float32, n*dim)
	if err := binary.Read(io.LimitReader(f, expected), binary.LittleEndian, out); err != nil {
		return nil, fmt.Errorf("cannot read vectors from %s: %w", path, err)
	}
	return out, nil
}
