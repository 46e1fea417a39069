package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leapstack-labs/ngaudit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runWatcher starts w and returns a channel receiving each reported batch.
func runWatcher(t *testing.T, w *Watcher) <-chan []string {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	batches := make(chan []string, 8)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, changed []string) {
			batches <- changed
		})
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop after cancel")
		}
	})
	return batches
}

func waitBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()
	select {
	case b := <-batches:
		return b
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for a change")
		return nil
	}
}

func TestWatcher_Directory(t *testing.T) {
	dir := t.TempDir()
	w, err := New([]string{dir}, Options{Debounce: 20 * time.Millisecond, Logger: testutil.NewTestLogger(t)})
	require.NoError(t, err)
	batches := runWatcher(t, w)

	// Not a record document.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	path := filepath.Join(dir, "records.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o600))

	changed := waitBatch(t, batches)
	assert.Equal(t, []string{path}, changed)
}

func TestWatcher_NewSubdirectory(t *testing.T) {
	dir := t.TempDir()
	w, err := New([]string{dir}, Options{Debounce: 20 * time.Millisecond})
	require.NoError(t, err)
	batches := runWatcher(t, w)

	sub := filepath.Join(dir, "feature")
	require.NoError(t, os.Mkdir(sub, 0o750))
	// Give the watcher time to register the new directory.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(sub, "feature.yaml")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o600))

	changed := waitBatch(t, batches)
	assert.Contains(t, changed, path)
}

func TestWatcher_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o600))

	w, err := New([]string{path}, Options{Debounce: 20 * time.Millisecond})
	require.NoError(t, err)
	assert.True(t, w.relevant(path))
	assert.False(t, w.relevant(filepath.Join(dir, "other.json")))

	batches := runWatcher(t, w)
	require.NoError(t, os.WriteFile(path, []byte(`[{"path": "a.ts", "kind": "other"}]`), 0o600))

	changed := waitBatch(t, batches)
	assert.Equal(t, []string{path}, changed)
}

func TestWatcher_Relevant(t *testing.T) {
	dir := t.TempDir()
	w, err := New([]string{dir}, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"json in root", filepath.Join(dir, "a.json"), true},
		{"yaml nested", filepath.Join(dir, "x", "b.yml"), true},
		{"typescript", filepath.Join(dir, "a.ts"), false},
		{"outside root", filepath.Join(filepath.Dir(dir), "c.json"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.path))
		})
	}
}

func TestNew_MissingPath(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing")}, Options{})
	assert.Error(t, err)
}
