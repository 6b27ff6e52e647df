package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/audit"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/board"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/notify"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/otel"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/store"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/store/postgres"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/store/rtdb"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/ui"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/pkg/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// limitBody wraps r.Body with http.MaxBytesReader so handlers cannot read more than maxBytes.
func limitBody(w http.ResponseWriter, r *http.Request, maxBytes int64) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
}

// bodyLimitMiddleware limits request body size for POST, PUT, PATCH to prevent OOM.
func bodyLimitMiddleware(maxBytes int64, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			limitBody(w, r, maxBytes)
		}
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware sets CORS headers for dev mode (dashboard dev server on a different origin).
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ServerOptions configures the HTTP server (home dir, listen addr, API key, store, metrics).
type ServerOptions struct {
	Home           string
	Addr           string
	Dev            bool
	APIKey         string       // if set, require X-API-Key header or query api_key
	DBDriver       string       // "sqlite" (default), "postgres", or "rtdb"
	DBURL          string       // for postgres: connection string (or set DATABASE_URL env)
	RTDBURL        string       // for rtdb: hosted database base URL
	AdminPassword  string       // employer login password; empty disables employer login
	Notifiers      *notify.Registry
	MetricsHandler http.Handler // if set, used for /metrics (e.g. OTel Prometheus handler)
	UseOtelHTTP    bool         // if true, wrap handler with otelhttp for request metrics
}

// App holds the HTTP server, SSE hub, store, notifier registry, and home path.
type App struct {
	Server    *http.Server
	Hub       *SSEHub
	Store     store.Store
	Notifiers *notify.Registry
	Journal   *audit.Journal
	Home      string
}

// NewServer builds an HTTP server from options; kept for callers that only need the server.
func NewServer(opts ServerOptions) *http.Server {
	app, err := NewApp(opts)
	if err != nil {
		panic(err)
	}
	return app.Server
}

// NewApp creates the HTTP app (server, hub, store, notifiers) and registers all routes.
func NewApp(opts ServerOptions) (*App, error) {
	hub := NewSSEHub()
	mux := http.NewServeMux()

	var st store.Store
	var err error
	switch opts.DBDriver {
	case "postgres":
		st, err = postgres.Open(opts.DBURL)
	case "rtdb":
		st, err = rtdb.Open(opts.RTDBURL)
	default:
		st, err = store.Open(opts.Home)
	}
	if err != nil {
		return nil, err
	}

	var jrnl *audit.Journal
	if opts.Home != "" {
		jrnl = audit.Open(opts.Home)
	}

	reg := opts.Notifiers
	if reg == nil {
		reg = notify.NewRegistry()
	}
	if u := os.Getenv("SLACK_WEBHOOK_URL"); u != "" && reg.Get("slack") == nil {
		reg.Register(notify.SlackWebhook{WebhookURL: u})
	}

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"ok": true})
	})

	if opts.MetricsHandler != nil {
		mux.Handle("/metrics", opts.MetricsHandler)
	} else {
		mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			tasks, _ := st.ListTasks(r.Context())
			var pending, inProgress, completed int64
			for _, t := range tasks {
				switch t.Status {
				case models.StatusPending:
					pending++
				case models.StatusInProgress:
					inProgress++
				case models.StatusCompleted:
					completed++
				}
			}
			_, _ = fmt.Fprintf(w, "# TYPE taskboard_tasks_total gauge\n")
			_, _ = fmt.Fprintf(w, "taskboard_tasks_total{status=\"pending\"} %d\n", pending)
			_, _ = fmt.Fprintf(w, "taskboard_tasks_total{status=\"in-progress\"} %d\n", inProgress)
			_, _ = fmt.Fprintf(w, "taskboard_tasks_total{status=\"completed\"} %d\n", completed)
		})
	}

	mux.HandleFunc("/stream", hub.Handler())

	// --- Login ---
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var body struct {
			Name     string `json:"name"`
			Role     string `json:"role"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid json")
			return
		}
		switch body.Role {
		case models.RoleEmployer:
			if opts.AdminPassword == "" || body.Password != opts.AdminPassword {
				writeJSONError(w, http.StatusUnauthorized, "invalid password")
				return
			}
			writeJSON(w, map[string]any{"ok": true, "role": models.RoleEmployer})
			return
		case models.RoleEmployee, "":
			if body.Name == "" {
				writeJSONError(w, http.StatusBadRequest, "name required")
				return
			}
			e, err := st.GetEmployeeByName(r.Context(), body.Name)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					writeJSONError(w, http.StatusUnauthorized, "employee not found")
					return
				}
				writeJSONError(w, http.StatusInternalServerError, err.Error())
				return
			}
			writeJSON(w, map[string]any{"ok": true, "role": models.RoleEmployee, "employee": e})
			return
		default:
			writeJSONError(w, http.StatusBadRequest, "role must be employee or employer")
			return
		}
	})

	// --- Employees ---
	mux.HandleFunc("/employees", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			employees, err := st.ListEmployees(r.Context())
			if err != nil {
				writeJSONError(w, http.StatusInternalServerError, err.Error())
				return
			}
			writeJSON(w, employees)
			return
		case http.MethodPost:
			var e models.Employee
			if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
				writeJSONError(w, http.StatusBadRequest, "invalid json")
				return
			}
			if e.Name == "" {
				writeJSONError(w, http.StatusBadRequest, "name required")
				return
			}
			id, err := st.CreateEmployee(r.Context(), e)
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, err.Error())
				return
			}
			hub.PublishEvent(EventEmployeeUpdate, map[string]any{"id": id, "name": e.Name})
			writeJSON(w, map[string]any{"id": id})
			return
		default:
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
	})

	mux.HandleFunc("/employees/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/employees/")
		if id == "" || strings.Contains(id, "/") {
			writeJSONError(w, http.StatusNotFound, "not found")
			return
		}
		if r.Method != http.MethodDelete {
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if err := st.DeleteEmployee(r.Context(), id); err != nil {
			writeStoreError(w, err)
			return
		}
		hub.PublishEvent(EventEmployeeUpdate, map[string]any{"id": id})
		writeJSON(w, map[string]any{"ok": true})
	})

	// --- Tasks ---
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			tasks, err := st.ListTasks(r.Context())
			if err != nil {
				writeJSONError(w, http.StatusInternalServerError, err.Error())
				return
			}
			filter := board.TaskFilter{
				AssignedTo: r.URL.Query().Get("assignedTo"),
				Status:     r.URL.Query().Get("status"),
				TaskType:   r.URL.Query().Get("type"),
			}
			writeJSON(w, board.FilterTasks(tasks, filter))
			return
		case http.MethodPost:
			handleCreateTask(w, r, st, hub, reg, jrnl)
			return
		default:
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
	})

	mux.HandleFunc("/tasks/grouped", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		tasks, err := st.ListTasks(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		individual, groups := board.PartitionTasks(tasks)
		writeJSON(w, map[string]any{"individual": individual, "groups": groups})
	})

	mux.HandleFunc("/tasks/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/tasks/")
		parts := strings.Split(rest, "/")
		if len(parts) < 1 || parts[0] == "" {
			writeJSONError(w, http.StatusNotFound, "not found")
			return
		}
		id := parts[0]

		// /tasks/{id}/complete
		if len(parts) >= 2 && parts[1] == "complete" {
			if r.Method != http.MethodPost {
				writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
				return
			}
			handleCompleteTask(w, r, st, hub, jrnl, id)
			return
		}

		if len(parts) > 1 && parts[1] != "" {
			writeJSONError(w, http.StatusNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodGet:
			task, err := st.GetTask(r.Context(), id)
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, task)
			return
		case http.MethodPatch:
			var body struct {
				Status string `json:"status"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				writeJSONError(w, http.StatusBadRequest, "invalid json")
				return
			}
			if !validStatus(body.Status) {
				writeJSONError(w, http.StatusBadRequest, "status must be pending, in-progress, or completed")
				return
			}
			if err := st.UpdateTaskStatus(r.Context(), id, body.Status, nil); err != nil {
				writeStoreError(w, err)
				return
			}
			otel.RecordTaskOp(r.Context(), "update", body.Status)
			hub.PublishEvent(EventTaskUpdate, map[string]any{"task_id": id, "status": body.Status})
			writeJSON(w, map[string]any{"ok": true})
			return
		case http.MethodDelete:
			if err := st.DeleteTask(r.Context(), id); err != nil {
				writeStoreError(w, err)
				return
			}
			otel.RecordTaskOp(r.Context(), "delete", "")
			hub.PublishEvent(EventTaskUpdate, map[string]any{"task_id": id})
			writeJSON(w, map[string]any{"ok": true})
			return
		default:
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
	})

	// --- Points, leaderboard, challenges ---
	mux.HandleFunc("/points", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		entries, err := st.ListPoints(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if user := r.URL.Query().Get("user"); user != "" {
			writeJSON(w, map[string]any{"user": user, "total": board.TotalFor(entries, user)})
			return
		}
		writeJSON(w, board.AggregatePoints(entries, models.WindowAllTime, time.Now()))
	})

	mux.HandleFunc("/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		entries, err := st.ListPoints(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		window := r.URL.Query().Get("window")
		if window == "" {
			window = models.WindowAllTime
		}
		limit := models.DefaultLeaderboardLimit
		if l := r.URL.Query().Get("limit"); l != "" {
			if n, err := strconv.Atoi(l); err == nil && n > 0 {
				limit = n
			}
		}
		writeJSON(w, board.Leaderboard(entries, window, limit, time.Now()))
	})

	mux.HandleFunc("/activity", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		limit := 50
		if l := r.URL.Query().Get("limit"); l != "" {
			if n, err := strconv.Atoi(l); err == nil && n > 0 {
				limit = n
			}
		}
		events, err := jrnl.Recent(limit)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if events == nil {
			events = []audit.Event{}
		}
		writeJSON(w, events)
	})

	mux.HandleFunc("/challenges", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		tasks, err := st.ListTasks(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, board.EvaluateChallenges(board.DefaultChallenges(), tasks, time.Now()))
	})

	mux.Handle("/", ui.Handler())

	var handler http.Handler = mux
	handler = bodyLimitMiddleware(models.DefaultMaxRequestBodyBytes, handler)
	if opts.Dev {
		handler = corsMiddleware(handler)
	}
	if opts.APIKey != "" {
		handler = apiKeyMiddleware(opts.APIKey, handler)
	}
	handler = requestLogMiddleware(handler)
	if opts.UseOtelHTTP {
		handler = otelhttp.NewHandler(handler, "taskboard")
	}
	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	srv.RegisterOnShutdown(func() {
		_ = st.Close()
	})

	return &App{Server: srv, Hub: hub, Store: st, Notifiers: reg, Journal: jrnl, Home: opts.Home}, nil
}

// createTaskRequest is the POST /tasks body. AssignedTo may name one employee,
// "all" for a broadcast, or "selected" with Employees listing targets; one
// task row is created per target.
type createTaskRequest struct {
	models.Task
	Employees []string `json:"employees,omitempty"`
}

func handleCreateTask(w http.ResponseWriter, r *http.Request, st store.Store, hub *SSEHub, reg *notify.Registry, jrnl *audit.Journal) {
	var body createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.TaskName == "" {
		writeJSONError(w, http.StatusBadRequest, "taskName required")
		return
	}
	if body.AssignedTo == "" {
		writeJSONError(w, http.StatusBadRequest, "assignedTo required")
		return
	}

	// Only a direct single-assignee create triggers notifications; broadcast
	// and multi-select assignment never email (EmployerView behavior).
	single := body.AssignedTo != models.AssignAll && body.AssignedTo != models.AssignSelected

	var targets []models.Employee
	switch body.AssignedTo {
	case models.AssignAll:
		all, err := st.ListEmployees(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if len(all) == 0 {
			writeJSONError(w, http.StatusBadRequest, "no employees to assign")
			return
		}
		targets = all
	case models.AssignSelected:
		if len(body.Employees) == 0 {
			writeJSONError(w, http.StatusBadRequest, "employees required for selected assignment")
			return
		}
		for _, name := range body.Employees {
			e, err := st.GetEmployeeByName(r.Context(), name)
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, "unknown employee "+name)
				return
			}
			targets = append(targets, *e)
		}
	default:
		e, err := st.GetEmployeeByName(r.Context(), body.AssignedTo)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "unknown employee "+body.AssignedTo)
			return
		}
		targets = append(targets, *e)
	}

	ids := make([]string, 0, len(targets))
	for _, target := range targets {
		task := body.Task
		task.AssignedTo = target.Name
		if task.Status == "" {
			task.Status = models.StatusPending
		}
		id, err := st.CreateTask(r.Context(), task)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		ids = append(ids, id)
		otel.RecordTaskOp(r.Context(), "create", task.Status)
		hub.PublishEvent(EventTaskUpdate, map[string]any{"task_id": id, "assigned_to": target.Name})
		_ = jrnl.Append(audit.Event{Type: "task_created", TaskID: id, TaskName: task.TaskName, User: target.Name})

		if single && target.Email != "" {
			task.ID = id
			failed := reg.NotifyAll(r.Context(), notify.Assignment{
				Task:          task,
				EmployeeName:  target.Name,
				EmployeeEmail: target.Email,
			})
			for _, name := range reg.Names() {
				err, bad := failed[name]
				otel.RecordNotification(r.Context(), name, !bad)
				if bad {
					slog.Warn("notification failed", "channel", name, "task", id, "error", err)
				}
			}
		}
	}
	if len(ids) == 1 {
		writeJSON(w, map[string]any{"id": ids[0]})
		return
	}
	writeJSON(w, map[string]any{"ids": ids})
}

func handleCompleteTask(w http.ResponseWriter, r *http.Request, st store.Store, hub *SSEHub, jrnl *audit.Journal, id string) {
	var body struct {
		UserName string `json:"userName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}

	task, err := st.GetTask(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	userName := body.UserName
	if userName == "" {
		userName = task.AssignedTo
	}

	now := time.Now().UTC()
	if err := st.UpdateTaskStatus(r.Context(), id, models.StatusCompleted, &now); err != nil {
		writeStoreError(w, err)
		return
	}
	otel.RecordTaskOp(r.Context(), "complete", models.StatusCompleted)
	_ = jrnl.Append(audit.Event{Type: "task_completed", TaskID: id, TaskName: task.TaskName, User: userName})

	points := models.PointsFor(task.Difficulty)
	if points > 0 {
		_, err := st.CreatePointEntry(r.Context(), models.PointEntry{
			UserName:  userName,
			Points:    points,
			TaskID:    id,
			TaskName:  task.TaskName,
			Timestamp: now,
		})
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		otel.RecordPointAward(r.Context(), userName, points)
		hub.PublishEvent(EventPointAward, map[string]any{"user": userName, "points": points, "task_id": id})
		_ = jrnl.Append(audit.Event{Type: "points_awarded", TaskID: id, TaskName: task.TaskName, User: userName, Points: points})
	}
	hub.PublishEvent(EventTaskUpdate, map[string]any{"task_id": id, "status": models.StatusCompleted})
	writeJSON(w, map[string]any{"ok": true, "points": points})
}

func validStatus(s string) bool {
	switch s {
	case models.StatusPending, models.StatusInProgress, models.StatusCompleted:
		return true
	}
	return false
}

// responseRecorder captures status code for logging and forwards Flusher if supported.
type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func apiKeyMiddleware(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == "/health" || path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}
		key := r.Header.Get("X-API-Key")
		if key == "" {
			key = r.URL.Query().Get("api_key")
		}
		if key != apiKey {
			writeJSONError(w, http.StatusUnauthorized, "invalid or missing API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)
		slog.Info("request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSONError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// writeJSONError sends a JSON body {"error": "message"} with the given status code.
func writeJSONError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": message})
}
