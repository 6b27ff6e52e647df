// Package rtdb implements the store interface against a hosted keyed-document
// database exposed over plain HTTP (Firebase Realtime Database REST shape).
//
// Collections live at {base}/{collection}.json and decode as map[key]record;
// POST to a collection returns {"name": "<generated-key>"}, PATCH merges
// fields into one record, and DELETE removes it. The server assigns keys, so
// record IDs here are the hosted database's push keys rather than UUIDs.
package rtdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/board"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/store"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/pkg/models"
)

// Store talks to a hosted keyed-document database. It is safe for concurrent use.
type Store struct {
	BaseURL    string       // e.g. "https://example-default-rtdb.firebaseio.com"
	AuthToken  string       // optional; appended as the auth query parameter
	HTTPClient *http.Client // optional; nil uses http.DefaultClient
}

// Open returns a store for the given database base URL.
func Open(baseURL string) (*Store, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("rtdb base URL required")
	}
	return &Store{BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *Store) client() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return http.DefaultClient
}

func (s *Store) url(path string) string {
	u := s.BaseURL + path + ".json"
	if s.AuthToken != "" {
		u += "?auth=" + s.AuthToken
	}
	return u
}

func (s *Store) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.url(path), bodyReader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.client().Do(req)
}

func (s *Store) doJSON(ctx context.Context, method, path string, body any, out any) error {
	resp, err := s.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("rtdb %s %s: status %d", method, path, resp.StatusCode)
	}
	if out != nil {
		// An absent collection or record decodes from the literal "null";
		// leave out at its zero value in that case.
		dec := json.NewDecoder(resp.Body)
		if err := dec.Decode(out); err != nil {
			return fmt.Errorf("rtdb %s %s: decode: %w", method, path, err)
		}
		return nil
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// push POSTs a record to a collection and returns the server-generated key.
func (s *Store) push(ctx context.Context, collection string, record any) (string, error) {
	var out struct {
		Name string `json:"name"`
	}
	if err := s.doJSON(ctx, http.MethodPost, "/"+collection, record, &out); err != nil {
		return "", err
	}
	if out.Name == "" {
		return "", fmt.Errorf("rtdb: push to %s returned no key", collection)
	}
	return out.Name, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var raw map[string]models.Employee
	if err := s.doJSON(ctx, http.MethodGet, "/employees", nil, &raw); err != nil {
		return nil, err
	}
	return board.NormalizeEmployees(raw), nil
}

func (s *Store) GetEmployeeByName(ctx context.Context, name string) (*models.Employee, error) {
	employees, err := s.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	for i := range employees {
		if strings.EqualFold(employees[i].Name, name) {
			return &employees[i], nil
		}
	}
	return nil, fmt.Errorf("employee %q: %w", name, store.ErrNotFound)
}

func (s *Store) CreateEmployee(ctx context.Context, e models.Employee) (string, error) {
	if e.Name == "" {
		return "", fmt.Errorf("employee name required")
	}
	if e.Department == "" {
		e.Department = models.DepartmentDevelopment
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	e.ID = ""
	return s.push(ctx, "employees", e)
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	return s.deleteRecord(ctx, "employees", id)
}

func (s *Store) ListTasks(ctx context.Context) ([]models.Task, error) {
	var raw map[string]models.Task
	if err := s.doJSON(ctx, http.MethodGet, "/tasks", nil, &raw); err != nil {
		return nil, err
	}
	return board.NormalizeTasks(raw), nil
}

func (s *Store) GetTask(ctx context.Context, id string) (*models.Task, error) {
	var t *models.Task
	if err := s.doJSON(ctx, http.MethodGet, "/tasks/"+id, nil, &t); err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("task %s: %w", id, store.ErrNotFound)
	}
	t.ID = id
	return t, nil
}

func (s *Store) CreateTask(ctx context.Context, t models.Task) (string, error) {
	if t.TaskName == "" {
		return "", fmt.Errorf("task name required")
	}
	if t.AssignedTo == "" {
		return "", fmt.Errorf("task assignee required")
	}
	if t.Status == "" {
		t.Status = models.StatusPending
	}
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now().UTC()
	}
	t.ID = ""
	return s.push(ctx, "tasks", t)
}

func (s *Store) UpdateTaskStatus(ctx context.Context, id, status string, completedAt *time.Time) error {
	if _, err := s.GetTask(ctx, id); err != nil {
		return err
	}
	patch := map[string]any{"status": status}
	if completedAt != nil {
		patch["completedAt"] = completedAt.UTC()
	}
	return s.doJSON(ctx, http.MethodPatch, "/tasks/"+id, patch, nil)
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	return s.deleteRecord(ctx, "tasks", id)
}

func (s *Store) ListPoints(ctx context.Context) ([]models.PointEntry, error) {
	var raw map[string]models.PointEntry
	if err := s.doJSON(ctx, http.MethodGet, "/points", nil, &raw); err != nil {
		return nil, err
	}
	return board.NormalizePoints(raw), nil
}

func (s *Store) CreatePointEntry(ctx context.Context, e models.PointEntry) (string, error) {
	if e.UserName == "" {
		return "", fmt.Errorf("point entry user name required")
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	e.ID = ""
	return s.push(ctx, "points", e)
}

// deleteRecord removes one record after confirming it exists; the hosted
// database reports success for deletes of absent paths, which would hide
// bad IDs from callers.
func (s *Store) deleteRecord(ctx context.Context, collection, id string) error {
	var raw json.RawMessage
	if err := s.doJSON(ctx, http.MethodGet, "/"+collection+"/"+id, nil, &raw); err != nil {
		return err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return fmt.Errorf("%s %s: %w", strings.TrimSuffix(collection, "s"), id, store.ErrNotFound)
	}
	return s.doJSON(ctx, http.MethodDelete, "/"+collection+"/"+id, nil, nil)
}

// Close is a no-op; the store holds no connections of its own.
func (s *Store) Close() error { return nil }
