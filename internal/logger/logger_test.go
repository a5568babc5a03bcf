package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLogger(t *testing.T) {
	l := NewMemory()
	l.Slog().Info("mesh rebuilt", "vertices", 6)
	l.Slog().Error("failed to load material", "path", "materials/missing.yaml")

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "level=INFO")
	assert.Contains(t, lines[0], "vertices=6")
	assert.Contains(t, lines[1], "level=ERROR")
	assert.True(t, l.Contains("materials/missing.yaml"))
	assert.False(t, l.Contains("nope"))
}

func TestLevelFilter(t *testing.T) {
	l := New("", slog.LevelWarn)
	l.Slog().Info("hidden")
	l.Slog().Warn("shown")
	assert.Len(t, l.Lines(), 1)
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "out.txt")
	l := New(path, slog.LevelInfo)
	l.Slog().Info("first")
	l.Slog().Info("second")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=first")
	assert.Contains(t, string(data), "msg=second")
}

func TestLinesBounded(t *testing.T) {
	l := NewMemory()
	for i := range maxLines + 10 {
		l.Slog().Info(fmt.Sprintf("line %d", i))
	}
	lines := l.Lines()
	assert.Len(t, lines, maxLines)
	assert.Contains(t, lines[len(lines)-1], fmt.Sprintf("line %d", maxLines+9))
}
