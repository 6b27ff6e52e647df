package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/notify"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/pkg/models"
)

func newTestApp(t *testing.T, opts ServerOptions) (*App, *httptest.Server) {
	t.Helper()
	if opts.Home == "" {
		opts.Home = t.TempDir()
	}
	if opts.Addr == "" {
		opts.Addr = "127.0.0.1:0"
	}
	app, err := NewApp(opts)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	ts := httptest.NewServer(app.Server.Handler)
	t.Cleanup(ts.Close)
	return app, ts
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// TestHandlers exercises the main routes end to end on the SQLite store.
func TestHandlers(t *testing.T) {
	t.Parallel()
	_, ts := newTestApp(t, ServerOptions{})

	// POST employee with empty name
	resp := postJSON(t, ts.URL+"/employees", `{"name":""}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("POST /employees empty name: status=%d", resp.StatusCode)
	}

	// Create employees
	resp = postJSON(t, ts.URL+"/employees", `{"name":"Alice","email":"alice@example.com"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /employees: status=%d", resp.StatusCode)
	}
	resp = postJSON(t, ts.URL+"/employees", `{"name":"Bob","department":"Design"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /employees bob: status=%d", resp.StatusCode)
	}

	listResp, _ := http.Get(ts.URL + "/employees")
	defer func() { _ = listResp.Body.Close() }()
	var employees []models.Employee
	_ = json.NewDecoder(listResp.Body).Decode(&employees)
	if len(employees) != 2 {
		t.Fatalf("GET /employees: got %d, want 2", len(employees))
	}

	// Create a single-assignee task
	resp = postJSON(t, ts.URL+"/tasks", `{"taskName":"Migrate billing","assignedTo":"Alice","difficulty":"medium"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /tasks: status=%d", resp.StatusCode)
	}
	var created struct {
		ID string `json:"id"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&created)
	if created.ID == "" {
		t.Fatal("expected task id from POST /tasks")
	}

	// Unknown assignee rejected
	resp = postJSON(t, ts.URL+"/tasks", `{"taskName":"Orphan","assignedTo":"Nobody"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("POST /tasks unknown assignee: status=%d", resp.StatusCode)
	}

	// Broadcast creates one row per employee
	resp = postJSON(t, ts.URL+"/tasks", `{"taskName":"Standup notes","assignedTo":"all","difficulty":"easy"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /tasks broadcast: status=%d", resp.StatusCode)
	}
	var broadcast struct {
		IDs []string `json:"ids"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&broadcast)
	if len(broadcast.IDs) != 2 {
		t.Fatalf("broadcast ids = %v, want 2", broadcast.IDs)
	}

	// Grouped view: broadcast rows collapse into one group
	groupedResp, _ := http.Get(ts.URL + "/tasks/grouped")
	defer func() { _ = groupedResp.Body.Close() }()
	var grouped struct {
		Individual []models.Task      `json:"individual"`
		Groups     []models.TaskGroup `json:"groups"`
	}
	_ = json.NewDecoder(groupedResp.Body).Decode(&grouped)
	if len(grouped.Groups) != 1 || grouped.Groups[0].TaskName != "Standup notes" {
		t.Fatalf("groups = %+v, want one Standup notes group", grouped.Groups)
	}
	if len(grouped.Individual) != 1 {
		t.Fatalf("individual = %+v, want the single Migrate billing row", grouped.Individual)
	}

	// Filtered task list
	filteredResp, _ := http.Get(ts.URL + "/tasks?assignedTo=Alice&status=pending")
	defer func() { _ = filteredResp.Body.Close() }()
	var filtered []models.Task
	_ = json.NewDecoder(filteredResp.Body).Decode(&filtered)
	for _, task := range filtered {
		if task.AssignedTo != "Alice" || task.Status != models.StatusPending {
			t.Fatalf("filter leak: %+v", task)
		}
	}

	// PATCH invalid status
	patchBad, _ := http.NewRequest(http.MethodPatch, ts.URL+"/tasks/"+created.ID, strings.NewReader(`{"status":"invalid"}`))
	patchBad.Header.Set("Content-Type", "application/json")
	badResp, _ := http.DefaultClient.Do(patchBad)
	defer func() { _ = badResp.Body.Close() }()
	if badResp.StatusCode != http.StatusBadRequest {
		t.Fatalf("PATCH invalid status: %d", badResp.StatusCode)
	}

	// PATCH to in-progress
	patchReq, _ := http.NewRequest(http.MethodPatch, ts.URL+"/tasks/"+created.ID, strings.NewReader(`{"status":"in-progress"}`))
	patchReq.Header.Set("Content-Type", "application/json")
	patchResp, _ := http.DefaultClient.Do(patchReq)
	defer func() { _ = patchResp.Body.Close() }()
	if patchResp.StatusCode != http.StatusOK {
		t.Fatalf("PATCH status: %d", patchResp.StatusCode)
	}

	// Complete awards points by difficulty (medium = 100)
	resp = postJSON(t, ts.URL+"/tasks/"+created.ID+"/complete", `{"userName":"Alice"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST complete: status=%d", resp.StatusCode)
	}
	var completed struct {
		OK     bool `json:"ok"`
		Points int  `json:"points"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&completed)
	if !completed.OK || completed.Points != 100 {
		t.Fatalf("complete = %+v, want ok with 100 points", completed)
	}

	// Points total for Alice
	pointsResp, _ := http.Get(ts.URL + "/points?user=Alice")
	defer func() { _ = pointsResp.Body.Close() }()
	var points struct {
		User  string `json:"user"`
		Total int    `json:"total"`
	}
	_ = json.NewDecoder(pointsResp.Body).Decode(&points)
	if points.Total != 100 {
		t.Fatalf("points total = %d, want 100", points.Total)
	}

	// Leaderboard has Alice at rank 1
	lbResp, _ := http.Get(ts.URL + "/leaderboard?window=week")
	defer func() { _ = lbResp.Body.Close() }()
	var lb []models.LeaderboardEntry
	_ = json.NewDecoder(lbResp.Body).Decode(&lb)
	if len(lb) == 0 || lb[0].Name != "Alice" || lb[0].Rank != 1 {
		t.Fatalf("leaderboard = %+v", lb)
	}

	// Challenges evaluate without error
	chResp, _ := http.Get(ts.URL + "/challenges")
	defer func() { _ = chResp.Body.Close() }()
	var challenges []models.ChallengeProgress
	_ = json.NewDecoder(chResp.Body).Decode(&challenges)
	if len(challenges) == 0 {
		t.Fatal("expected default challenges")
	}

	// GET single task shows completion
	getTask, _ := http.Get(ts.URL + "/tasks/" + created.ID)
	defer func() { _ = getTask.Body.Close() }()
	var task models.Task
	_ = json.NewDecoder(getTask.Body).Decode(&task)
	if task.Status != models.StatusCompleted || task.CompletedAt == nil {
		t.Fatalf("task after complete = %+v", task)
	}

	// DELETE task, then 404
	delReq, _ := http.NewRequest(http.MethodDelete, ts.URL+"/tasks/"+created.ID, nil)
	delResp, _ := http.DefaultClient.Do(delReq)
	defer func() { _ = delResp.Body.Close() }()
	if delResp.StatusCode != http.StatusOK {
		t.Fatalf("DELETE task: %d", delResp.StatusCode)
	}
	getGone, _ := http.Get(ts.URL + "/tasks/" + created.ID)
	defer func() { _ = getGone.Body.Close() }()
	if getGone.StatusCode != http.StatusNotFound {
		t.Fatalf("GET deleted task: %d", getGone.StatusCode)
	}

	// Metrics fallback handler
	metricsResp, _ := http.Get(ts.URL + "/metrics")
	defer func() { _ = metricsResp.Body.Close() }()
	if metricsResp.StatusCode != http.StatusOK {
		t.Fatalf("GET /metrics: %d", metricsResp.StatusCode)
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()
	_, ts := newTestApp(t, ServerOptions{AdminPassword: "hunter2"})

	postJSON(t, ts.URL+"/employees", `{"name":"Carol"}`)

	// Employee login is case-insensitive
	resp := postJSON(t, ts.URL+"/login", `{"name":"CAROL","role":"employee"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("employee login: %d", resp.StatusCode)
	}
	var login struct {
		OK       bool             `json:"ok"`
		Role     string           `json:"role"`
		Employee *models.Employee `json:"employee"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&login)
	if !login.OK || login.Employee == nil || login.Employee.Name != "Carol" {
		t.Fatalf("login body = %+v", login)
	}

	// Unknown employee
	resp = postJSON(t, ts.URL+"/login", `{"name":"Mallory","role":"employee"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unknown employee login: %d", resp.StatusCode)
	}

	// Employer password check
	resp = postJSON(t, ts.URL+"/login", `{"role":"employer","password":"hunter2"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("employer login: %d", resp.StatusCode)
	}
	resp = postJSON(t, ts.URL+"/login", `{"role":"employer","password":"wrong"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("employer wrong password: %d", resp.StatusCode)
	}
}

func TestLogin_employerDisabledWithoutPassword(t *testing.T) {
	t.Parallel()
	_, ts := newTestApp(t, ServerOptions{})
	resp := postJSON(t, ts.URL+"/login", `{"role":"employer","password":""}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("employer login with no configured password: %d", resp.StatusCode)
	}
}

func TestSelectedAssignment(t *testing.T) {
	t.Parallel()
	_, ts := newTestApp(t, ServerOptions{})

	for _, name := range []string{"Alice", "Bob", "Carol"} {
		postJSON(t, ts.URL+"/employees", fmt.Sprintf(`{"name":%q}`, name))
	}

	resp := postJSON(t, ts.URL+"/tasks", `{"taskName":"Pair review","assignedTo":"selected","employees":["Alice","Bob"]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST selected: %d", resp.StatusCode)
	}
	var out struct {
		IDs []string `json:"ids"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	if len(out.IDs) != 2 {
		t.Fatalf("selected ids = %v, want 2", out.IDs)
	}

	// selected with no employees list
	resp = postJSON(t, ts.URL+"/tasks", `{"taskName":"Nothing","assignedTo":"selected"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("selected with no list: %d", resp.StatusCode)
	}
}

func TestAPIKeyMiddleware(t *testing.T) {
	t.Parallel()
	_, ts := newTestApp(t, ServerOptions{APIKey: "secret"})

	// /health and /metrics exempt
	healthResp, _ := http.Get(ts.URL + "/health")
	defer func() { _ = healthResp.Body.Close() }()
	if healthResp.StatusCode != http.StatusOK {
		t.Fatalf("GET /health without key: %d", healthResp.StatusCode)
	}

	// /employees without key -> 401
	noKey, _ := http.Get(ts.URL + "/employees")
	defer func() { _ = noKey.Body.Close() }()
	if noKey.StatusCode != http.StatusUnauthorized {
		t.Fatalf("GET /employees without key: %d", noKey.StatusCode)
	}

	// with header
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/employees", nil)
	req.Header.Set("X-API-Key", "secret")
	resp, _ := http.DefaultClient.Do(req)
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /employees with key: %d", resp.StatusCode)
	}

	// with query param
	resp2, _ := http.Get(ts.URL + "/employees?api_key=secret")
	defer func() { _ = resp2.Body.Close() }()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("GET /employees with api_key query: %d", resp2.StatusCode)
	}

	// wrong key
	req3, _ := http.NewRequest(http.MethodGet, ts.URL+"/employees", nil)
	req3.Header.Set("X-API-Key", "wrong")
	resp3, _ := http.DefaultClient.Do(req3)
	defer func() { _ = resp3.Body.Close() }()
	if resp3.StatusCode != http.StatusUnauthorized {
		t.Fatalf("GET /employees with wrong key: %d", resp3.StatusCode)
	}
}

func TestActivityJournal(t *testing.T) {
	t.Parallel()
	_, ts := newTestApp(t, ServerOptions{})

	resp := postJSON(t, ts.URL+"/employees", `{"name":"Dana"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /employees: status=%d", resp.StatusCode)
	}
	resp = postJSON(t, ts.URL+"/tasks", `{"taskName":"write release notes","assignedTo":"Dana","difficulty":"easy"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /tasks: status=%d", resp.StatusCode)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	resp = postJSON(t, ts.URL+"/tasks/"+created.ID+"/complete", `{}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST complete: status=%d", resp.StatusCode)
	}

	resp, err := http.Get(ts.URL + "/activity")
	if err != nil {
		t.Fatalf("GET /activity: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	var events []struct {
		Type   string `json:"type"`
		TaskID string `json:"taskId"`
		User   string `json:"user"`
		Points int    `json:"points"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		t.Fatalf("decode activity: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("activity: got %d events, want 3", len(events))
	}
	// Newest first: points_awarded, task_completed, task_created.
	if events[0].Type != "points_awarded" || events[0].Points != 50 || events[0].User != "Dana" {
		t.Errorf("events[0]: %+v", events[0])
	}
	if events[2].Type != "task_created" || events[2].TaskID != created.ID {
		t.Errorf("events[2]: %+v", events[2])
	}
}

func TestDashboardRoot(t *testing.T) {
	t.Parallel()
	_, ts := newTestApp(t, ServerOptions{})

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /: status=%d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "Task Board") {
		t.Error("GET /: expected dashboard page")
	}
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Assignment
}

func (n *recordingNotifier) Name() string { return "recording" }

func (n *recordingNotifier) NotifyAssignment(ctx context.Context, a notify.Assignment) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, a)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

// Notifications fire only for a direct single-assignee create, and only when
// that assignee has an email on file. Broadcast and multi-select assignment
// never notify.
func TestCreateTaskNotifications(t *testing.T) {
	t.Parallel()
	rec := &recordingNotifier{}
	reg := notify.NewRegistry()
	reg.Register(rec)
	_, ts := newTestApp(t, ServerOptions{Notifiers: reg})

	for _, body := range []string{
		`{"name":"Alice","email":"alice@example.com"}`,
		`{"name":"Bob"}`,
		`{"name":"Carol","email":"carol@example.com"}`,
	} {
		resp := postJSON(t, ts.URL+"/employees", body)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("POST /employees %s: status=%d", body, resp.StatusCode)
		}
	}

	resp := postJSON(t, ts.URL+"/tasks", `{"taskName":"standup","assignedTo":"all"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("broadcast create: status=%d", resp.StatusCode)
	}
	if got := rec.count(); got != 0 {
		t.Fatalf("broadcast notified %d times, want 0", got)
	}

	resp = postJSON(t, ts.URL+"/tasks", `{"taskName":"pairing","assignedTo":"selected","employees":["Alice","Carol"]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("selected create: status=%d", resp.StatusCode)
	}
	if got := rec.count(); got != 0 {
		t.Fatalf("selected notified %d times, want 0", got)
	}

	resp = postJSON(t, ts.URL+"/tasks", `{"taskName":"deploy","assignedTo":"Bob"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("no-email create: status=%d", resp.StatusCode)
	}
	if got := rec.count(); got != 0 {
		t.Fatalf("assignee without email notified %d times, want 0", got)
	}

	resp = postJSON(t, ts.URL+"/tasks", `{"taskName":"review PR","assignedTo":"Alice","description":"review the store PR"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("single create: status=%d", resp.StatusCode)
	}
	if got := rec.count(); got != 1 {
		t.Fatalf("single assignee with email notified %d times, want 1", got)
	}
	a := rec.sent[0]
	if a.EmployeeName != "Alice" || a.EmployeeEmail != "alice@example.com" {
		t.Errorf("assignment target: %+v", a)
	}
	if a.Task.TaskName != "review PR" || a.Task.ID == "" {
		t.Errorf("assignment task: %+v", a.Task)
	}
}
