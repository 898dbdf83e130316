package verbhash

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// LoadFile reads a verb-hash artifact: a flat JSON object of form → id.
func LoadFile(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read verb hash %s: %w", path, err)
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("invalid verb hash JSON %s: %w", path, err)
	}
	return New(m), nil
}

// WriteFile writes artifact to path while holding path+".lock", replacing
// any existing file by rename.
func WriteFile(path string, artifact map[string]string, lockTimeout time.Duration) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create dir for %s: %w", path, err)
	}
	unlock, err := lockFile(path+".lock", lockTimeout)
	if err != nil {
		return err
	}
	defer unlock()

	b, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("cannot write verb hash %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("cannot install verb hash %s: %w", path, err)
	}
	return nil
}

func lockFile(lockPath string, timeout time.Duration) (func(), error) {
	l := flock.New(lockPath)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return func() {}, fmt.Errorf("cannot acquire lock %s: %w", lockPath, err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return func() {}, fmt.Errorf("another writer holds %s", lockPath)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
