// Package audit keeps an append-only activity journal under the home
// directory. Each mutation of the board appends one JSON line; the journal is
// the history behind the dashboard's recent-activity view.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event is one journal line.
type Event struct {
	Type      string    `json:"type"` // task_created, task_completed, points_awarded, ...
	TaskID    string    `json:"taskId,omitempty"`
	TaskName  string    `json:"taskName,omitempty"`
	User      string    `json:"user,omitempty"`
	Points    int       `json:"points,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Journal appends events to <home>/activity.log. Safe for concurrent use.
type Journal struct {
	mu   sync.Mutex
	path string
}

// Open returns a journal rooted at home. The file is created on first append.
func Open(home string) *Journal {
	return &Journal{path: filepath.Join(home, "activity.log")}
}

// Append writes one event. A zero Timestamp is stamped with the current time.
// A nil journal discards events, so callers without a home dir need no guard.
func (j *Journal) Append(e Event) error {
	if j == nil {
		return nil
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	line, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(j.path), 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}
	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first. A missing file is an empty
// journal, not an error. Malformed lines are skipped.
func (j *Journal) Recent(limit int) ([]Event, error) {
	if j == nil {
		return nil, nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	f, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var events []Event
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Event
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			continue
		}
		events = append(events, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	// Newest first.
	for i, k := 0, len(events)-1; i < k; i, k = i+1, k-1 {
		events[i], events[k] = events[k], events[i]
	}
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}
