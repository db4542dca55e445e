package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/decisionhub/internal/logger"
)

func TestRunReportsChanges(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 8)
	done := make(chan error, 1)
	w := New(logger.Nop(), WithDebounce(20*time.Millisecond))
	go func() {
		done <- w.Run(ctx, dir, func() { changes <- struct{}{} })
	}()

	// The watch is registered asynchronously; keep touching the file until a change lands.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(dir, "solver.yaml"), []byte("solver: {}\n"), 0o644)
		select {
		case <-changes:
			return true
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
}

func TestRunMissingDirectory(t *testing.T) {
	t.Parallel()

	err := New(logger.Nop()).Run(context.Background(), filepath.Join(t.TempDir(), "absent"), func() {})
	require.ErrorContains(t, err, "watch ")
}

func TestRelevant(t *testing.T) {
	t.Parallel()

	require.True(t, relevant(fsnotify.Event{Name: "/p/model.go", Op: fsnotify.Write}))
	require.True(t, relevant(fsnotify.Event{Name: "/p/solver.yaml", Op: fsnotify.Remove}))
	require.False(t, relevant(fsnotify.Event{Name: "/p/model.go", Op: fsnotify.Chmod}))
	require.False(t, relevant(fsnotify.Event{Name: "/p/.model.go.swp", Op: fsnotify.Write}))
	require.False(t, relevant(fsnotify.Event{Name: "/p/model.go~", Op: fsnotify.Create}))
}
