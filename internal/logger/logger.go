package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LogFilePath is the default log file, relative to the working directory.
const LogFilePath = "logs/polyline.txt"

// maxLines bounds the in-memory history so long viewer sessions don't grow without limit.
const maxLines = 512

// Logger keeps recent log lines in memory (for the on-screen overlay) and appends
// each line to a file on disk. It is the sink behind a slog text handler.
type Logger struct {
	mu    sync.Mutex
	lines []string
	path  string
	slog  *slog.Logger
}

// New returns a Logger writing to path, creating its directory. An empty path keeps lines in memory only.
func New(path string, level slog.Level) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	l := &Logger{lines: make([]string, 0), path: path}
	l.slog = slog.New(slog.NewTextHandler(l, &slog.HandlerOptions{Level: level}))
	return l
}

// NewMemory returns a Logger that only keeps lines in memory. Used by tests and the export command.
func NewMemory() *Logger {
	return New("", slog.LevelDebug)
}

// Slog returns the structured logger backed by l.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// Write implements io.Writer for the slog handler. Each call carries one formatted record.
func (l *Logger) Write(p []byte) (int, error) {
	text := strings.TrimRight(string(p), "\n")

	l.mu.Lock()
	for _, line := range strings.Split(text, "\n") {
		l.lines = append(l.lines, line)
	}
	if over := len(l.lines) - maxLines; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
	l.mu.Unlock()

	if l.path == "" {
		return len(p), nil
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		// The record stays in memory; a missing log file should not stop the viewer.
		return len(p), nil
	}
	_, _ = f.Write(p)
	_ = f.Close()
	return len(p), nil
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Contains reports whether any stored line contains substr.
func (l *Logger) Contains(substr string) bool {
	for _, line := range l.Lines() {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
