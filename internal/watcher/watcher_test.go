package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReportsDebouncedChange(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "people.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(watched, []byte("axioms: []\n"), 0644))

	changes := make(chan string, 10)
	w := New([]string{watched}, func(path string) { changes <- path }, nil).
		WithDebounce(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(watched, []byte("axioms: []\n"), 0644))
	}

	select {
	case path := <-changes:
		abs, err := filepath.Abs(watched)
		require.NoError(t, err)
		assert.Equal(t, abs, path)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}

	// burst collapsed into a single callback
	select {
	case path := <-changes:
		t.Fatalf("unexpected second change for %s", path)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	w := New([]string{filepath.Join(t.TempDir(), "missing", "kb.yaml")}, func(string) {}, nil)
	err := w.Watch(context.Background())
	assert.ErrorContains(t, err, "failed to watch directory")
}
