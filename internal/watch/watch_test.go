package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherDebouncesTemplateChanges(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	w, err := New(dir, 50*time.Millisecond, nil, func() { calls.Add(1) })
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json5"), []byte("{}"), 0o644))
	}
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	time.Sleep(150 * time.Millisecond)
	assert.EqualValues(t, 1, calls.Load())
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	w, err := New(dir, 20*time.Millisecond, nil, func() { calls.Add(1) })
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	time.Sleep(150 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestWatcherMissingDir(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing"), 0, nil, func() {})
	require.NoError(t, err)
	assert.Error(t, w.Start(context.Background()))
	w.Stop()
}

func TestWatcherStopWaitsForRunningReload(t *testing.T) {
	dir := t.TempDir()
	entered := make(chan struct{})
	release := make(chan struct{})
	var (
		once     sync.Once
		finished atomic.Bool
	)
	w, err := New(dir, 10*time.Millisecond, nil, func() {
		once.Do(func() { close(entered) })
		<-release
		finished.Store(true)
	})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("{}"), 0o644))
	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("reload never started")
	}

	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a reload was running")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after the reload finished")
	}
	assert.True(t, finished.Load())
}
