package assetwatch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "polyline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("thickness: 1\n"), 0644))

	w, err := New(path, 50*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	for i := range 3 {
		require.NoError(t, os.WriteFile(path, []byte("thickness: "+string(rune('2'+i))+"\n"), 0644))
	}

	select {
	case got := <-w.Changes():
		abs, _ := filepath.Abs(path)
		assert.Equal(t, abs, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	// The burst collapses into one notification.
	select {
	case <-w.Changes():
		t.Fatal("expected a single notification for one burst")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "polyline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("thickness: 1\n"), 0644))

	w, err := New(path, 10*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644))
	select {
	case <-w.Changes():
		t.Fatal("unrelated file triggered a change")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "polyline.yaml"), time.Millisecond, nil)
	assert.Error(t, err)
}

func TestCloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polyline.yaml")
	w, err := New(path, time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
