// Package evallog persists raw evaluation payloads to disk for later
// inspection, one JSON file per evaluation grouped by session.
package evallog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type Logger struct {
	baseDir string

	mu       sync.Mutex
	sessions map[string]*sessionDir
	used     map[string]bool
}

type sessionDir struct {
	path string
	next int
}

func New(baseDir string) *Logger {
	return &Logger{
		baseDir:  baseDir,
		sessions: make(map[string]*sessionDir),
		used:     make(map[string]bool),
	}
}

// Entry is the on-disk record for a single evaluation call.
type Entry struct {
	Timestamp    string `json:"timestamp"`
	Mode         string `json:"mode"`
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	Question     string `json:"question,omitempty"`
	Transcript   string `json:"transcript,omitempty"`
	Evaluation   any    `json:"evaluation,omitempty"`
	Error        string `json:"error,omitempty"`
	ResponseTime int64  `json:"response_time_ms"`
}

// Log writes one entry under <base>/YYYY-MM-DD/HHMMSS_<mode>/eval_NNN.json.
// The session key groups entries from the same run into one folder; a write
// failure is returned but never blocks the caller's evaluation path.
func (l *Logger) Log(sessionKey, mode string, entry Entry) error {
	if l == nil || l.baseDir == "" {
		return nil
	}

	l.mu.Lock()
	dir, ok := l.sessions[sessionKey]
	if !ok {
		now := time.Now()
		path := filepath.Join(l.baseDir, now.Format("2006-01-02"),
			fmt.Sprintf("%s_%s", now.Format("150405"), mode))
		// Two sessions in the same second with the same mode must not share
		// a folder.
		for n := 2; l.used[path]; n++ {
			path = filepath.Join(l.baseDir, now.Format("2006-01-02"),
				fmt.Sprintf("%s_%s_%d", now.Format("150405"), mode, n))
		}
		l.used[path] = true
		dir = &sessionDir{path: path, next: 1}
		l.sessions[sessionKey] = dir
	}
	seq := dir.next
	dir.next++
	path := dir.path
	l.mu.Unlock()

	if err := os.MkdirAll(path, 0o755); err != nil {
		return err
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(path, fmt.Sprintf("eval_%03d.json", seq)), data, 0o644)
}
