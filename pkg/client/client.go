// Package client provides a Go SDK for the taskboard HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/pkg/models"
)

// Client calls the taskboard HTTP API. It is safe for concurrent use.
type Client struct {
	BaseURL    string       // e.g. "http://localhost:8417"
	APIKey     string       // optional; set for X-API-Key / api_key
	HTTPClient *http.Client // optional; nil uses http.DefaultClient
}

// New returns a client for the given base URL (e.g. "http://localhost:8417").
// APIKey is optional; when set, requests use the X-API-Key header.
func New(baseURL, apiKey string) *Client {
	return &Client{BaseURL: baseURL, APIKey: apiKey}
}

func (c *Client) client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(b)
	}
	u := c.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		req.Header.Set("X-API-Key", c.APIKey)
	}
	return c.client().Do(req)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		if errBody.Error != "" {
			return fmt.Errorf("api %s %s: %s", method, path, errBody.Error)
		}
		return fmt.Errorf("api %s %s: status %d", method, path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Health returns the /health response (ok: true).
func (c *Client) Health(ctx context.Context) (ok bool, err error) {
	var out struct {
		OK bool `json:"ok"`
	}
	err = c.doJSON(ctx, http.MethodGet, "/health", nil, &out)
	return out.OK, err
}

// LoginResult is the /login response. Employee is set only for employee logins.
type LoginResult struct {
	OK       bool             `json:"ok"`
	Role     string           `json:"role"`
	Employee *models.Employee `json:"employee,omitempty"`
}

// LoginEmployee signs in by employee name (matched case-insensitively).
func (c *Client) LoginEmployee(ctx context.Context, name string) (*LoginResult, error) {
	var out LoginResult
	err := c.doJSON(ctx, http.MethodPost, "/login", map[string]string{
		"name": name, "role": models.RoleEmployee,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// LoginEmployer signs in as the employer with the admin password.
func (c *Client) LoginEmployer(ctx context.Context, password string) (*LoginResult, error) {
	var out LoginResult
	err := c.doJSON(ctx, http.MethodPost, "/login", map[string]string{
		"role": models.RoleEmployer, "password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListEmployees returns all employees.
func (c *Client) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	err := c.doJSON(ctx, http.MethodGet, "/employees", nil, &out)
	return out, err
}

// CreateEmployee registers an employee and returns its ID.
func (c *Client) CreateEmployee(ctx context.Context, e models.Employee) (id string, err error) {
	var out struct {
		ID string `json:"id"`
	}
	err = c.doJSON(ctx, http.MethodPost, "/employees", e, &out)
	return out.ID, err
}

// DeleteEmployee removes an employee by ID.
func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/employees/"+url.PathEscape(id), nil, nil)
}

// TaskQuery narrows ListTasks results. Zero fields match everything.
type TaskQuery struct {
	AssignedTo string
	Status     string
	TaskType   string
}

// ListTasks returns tasks, optionally filtered.
func (c *Client) ListTasks(ctx context.Context, q TaskQuery) ([]models.Task, error) {
	v := url.Values{}
	if q.AssignedTo != "" {
		v.Set("assignedTo", q.AssignedTo)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.TaskType != "" {
		v.Set("type", q.TaskType)
	}
	path := "/tasks"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}
	var out []models.Task
	err := c.doJSON(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// CreateTask creates a task and returns the new task IDs. AssignedTo may name
// one employee, "all" for a broadcast, or "selected" with the employees list;
// broadcasts return one ID per target.
func (c *Client) CreateTask(ctx context.Context, task models.Task, employees []string) ([]string, error) {
	body := struct {
		models.Task
		Employees []string `json:"employees,omitempty"`
	}{Task: task, Employees: employees}
	var out struct {
		ID  string   `json:"id"`
		IDs []string `json:"ids"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/tasks", body, &out); err != nil {
		return nil, err
	}
	if out.ID != "" {
		return []string{out.ID}, nil
	}
	return out.IDs, nil
}

// GetTask returns a task by ID.
func (c *Client) GetTask(ctx context.Context, id string) (*models.Task, error) {
	var out models.Task
	err := c.doJSON(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, &out)
	return &out, err
}

// UpdateTaskStatus sets a task's status (pending, in-progress, or completed).
func (c *Client) UpdateTaskStatus(ctx context.Context, id, status string) error {
	return c.doJSON(ctx, http.MethodPatch, "/tasks/"+url.PathEscape(id), map[string]string{"status": status}, nil)
}

// DeleteTask removes a task by ID.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

// CompleteTask marks a task completed, crediting userName (the task's assignee
// when empty). It returns the points awarded.
func (c *Client) CompleteTask(ctx context.Context, id, userName string) (points int, err error) {
	var out struct {
		OK     bool `json:"ok"`
		Points int  `json:"points"`
	}
	body := map[string]string{"userName": userName}
	err = c.doJSON(ctx, http.MethodPost, "/tasks/"+url.PathEscape(id)+"/complete", body, &out)
	return out.Points, err
}

// GroupedTasks is the /tasks/grouped response: broadcast tasks collapsed into
// groups, everything else listed individually.
type GroupedTasks struct {
	Individual []models.Task      `json:"individual"`
	Groups     []models.TaskGroup `json:"groups"`
}

// ListGroupedTasks returns tasks partitioned into groups and individual rows.
func (c *Client) ListGroupedTasks(ctx context.Context) (*GroupedTasks, error) {
	var out GroupedTasks
	err := c.doJSON(ctx, http.MethodGet, "/tasks/grouped", nil, &out)
	return &out, err
}

// Points returns the all-time point totals per user.
func (c *Client) Points(ctx context.Context) (map[string]int, error) {
	var out map[string]int
	err := c.doJSON(ctx, http.MethodGet, "/points", nil, &out)
	return out, err
}

// PointsFor returns one user's all-time point total.
func (c *Client) PointsFor(ctx context.Context, user string) (int, error) {
	var out struct {
		User  string `json:"user"`
		Total int    `json:"total"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/points?user="+url.QueryEscape(user), nil, &out)
	return out.Total, err
}

// Leaderboard returns the ranked top scorers for a window ("week", "month",
// or "allTime"; empty means allTime). Limit 0 uses the server default.
func (c *Client) Leaderboard(ctx context.Context, window string, limit int) ([]models.LeaderboardEntry, error) {
	v := url.Values{}
	if window != "" {
		v.Set("window", window)
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	path := "/leaderboard"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}
	var out []models.LeaderboardEntry
	err := c.doJSON(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// ActivityEvent is one row of the server's activity journal, newest first.
type ActivityEvent struct {
	Type      string `json:"type"`
	TaskID    string `json:"taskId,omitempty"`
	TaskName  string `json:"taskName,omitempty"`
	User      string `json:"user,omitempty"`
	Points    int    `json:"points,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Activity returns recent journal events (limit 0 uses the server default).
func (c *Client) Activity(ctx context.Context, limit int) ([]ActivityEvent, error) {
	path := "/activity"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out []ActivityEvent
	err := c.doJSON(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// Challenges returns progress against the weekly challenge catalog.
func (c *Client) Challenges(ctx context.Context) ([]models.ChallengeProgress, error) {
	var out []models.ChallengeProgress
	err := c.doJSON(ctx, http.MethodGet, "/challenges", nil, &out)
	return out, err
}
