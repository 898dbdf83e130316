package anchors

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Write writes store artifacts to dir.
func Write(dir string, manifest Manifest, entries []Entry, vectors []float32) error {
	if manifest.Dim <= 0 {
		return fmt.Errorf("invalid dim: %d", manifest.Dim)
	}
	if len(entries) == 0 {
		return ErrEmpty
	}
	if len(vectors) != len(entries)*manifest.Dim {
		return fmt.Errorf("%w: got %d want %d", ErrVectorLengthMismatch, len(vectors), len(entries)*manifest.Dim)
	}
	if manifest.VectorFile == "" {
		manifest.VectorFile = defaultVectorFile
	}
	if manifest.AnchorsFile == "" {
		manifest.AnchorsFile = defaultAnchorFile
	}
	if manifest.CreatedAt == "" {
		manifest.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create anchors dir %s: %w", dir, err)
	}

	mb, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, manifestFile), mb, 0o644); err != nil {
		return fmt.Errorf("cannot write manifest: %w", err)
	}

	if err := writeEntries(filepath.Join(dir, manifest.AnchorsFile), entries); err != nil {
		return err
	}

	vf, err := os.Create(filepath.Join(dir, manifest.VectorFile))
	if err != nil {
		return fmt.Errorf("cannot create vectors file: %w", err)
	}
	if err := binary.Write(vf, binary.LittleEndian, vectors); err != nil {
		_ = vf.Close()
		return fmt.Errorf("cannot write vectors: %w", err)
	}
	return vf.Close()
}

func writeEntries(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create anchors file: %w", err)
	}
	bw := bufio.NewWriter(f)
	enc := json.NewEncoder(bw)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			_ = f.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// AtomicSwap replaces destDir with srcDir by renaming.
func AtomicSwap(srcDir, destDir string) error {
	if err := os.MkdirAll(filepath.Dir(destDir), 0o755); err != nil {
		return err
	}
	backup := destDir + ".bak"
	_ = os.RemoveAll(backup)
	if _, err := os.Stat(destDir); err == nil {
		if err := os.Rename(destDir, backup); err != nil {
			return err
		}
	}
	if err := os.Rename(srcDir, destDir); err != nil {
		if _, stErr := os.Stat(backup); stErr == nil {
			_ = os.Rename(backup, destDir)
		}
		return err
	}
	_ = os.RemoveAll(backup)
	return nil
}
