package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/pkg/models"
)

func openTestStore(t *testing.T) Store {
	t.Helper()
	home := filepath.Join(t.TempDir(), "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatal(err)
	}
	st, err := Open(home)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestMigrationsAndEmployeeCRUD(t *testing.T) {
	t.Parallel()

	st := openTestStore(t)
	ctx := context.Background()

	id, err := st.CreateEmployee(ctx, models.Employee{Name: "Alice", Department: models.DepartmentDesign, Email: "alice@example.com", JoinDate: "2026-01-15"})
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty employee id")
	}

	// Login lookup is case-insensitive.
	got, err := st.GetEmployeeByName(ctx, "alice")
	if err != nil {
		t.Fatalf("GetEmployeeByName: %v", err)
	}
	if got.ID != id || got.Name != "Alice" || got.Department != models.DepartmentDesign {
		t.Fatalf("got %+v", got)
	}

	if _, err := st.GetEmployeeByName(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	emps, err := st.ListEmployees(ctx)
	if err != nil {
		t.Fatalf("ListEmployees: %v", err)
	}
	if len(emps) != 1 {
		t.Fatalf("got %d employees, want 1", len(emps))
	}

	if err := st.DeleteEmployee(ctx, id); err != nil {
		t.Fatalf("DeleteEmployee: %v", err)
	}
	if err := st.DeleteEmployee(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestTaskLifecycle(t *testing.T) {
	t.Parallel()

	st := openTestStore(t)
	ctx := context.Background()

	id, err := st.CreateTask(ctx, models.Task{
		TaskName:   "Audit logs",
		AssignedTo: "alice",
		AssignedBy: "boss",
		TaskType:   models.TaskTypeAdHoc,
		Difficulty: models.DifficultyMedium,
		Priority:   models.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	task, err := st.GetTask(ctx, id)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if task.Status != models.StatusPending {
		t.Fatalf("new task status = %q, want pending", task.Status)
	}
	if task.CompletedAt != nil {
		t.Fatal("new task should have no CompletedAt")
	}

	// Completion sets CompletedAt; the status update merges, not replaces.
	done := time.Now().UTC().Truncate(time.Second)
	if err := st.UpdateTaskStatus(ctx, id, models.StatusCompleted, &done); err != nil {
		t.Fatalf("UpdateTaskStatus: %v", err)
	}
	task, err = st.GetTask(ctx, id)
	if err != nil {
		t.Fatalf("GetTask after update: %v", err)
	}
	if task.Status != models.StatusCompleted || task.CompletedAt == nil || !task.CompletedAt.Equal(done) {
		t.Fatalf("after completion: %+v", task)
	}
	if task.TaskName != "Audit logs" || task.Difficulty != models.DifficultyMedium {
		t.Fatalf("update clobbered other fields: %+v", task)
	}

	if err := st.UpdateTaskStatus(ctx, "missing", models.StatusCompleted, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing task, got %v", err)
	}

	if err := st.DeleteTask(ctx, id); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if _, err := st.GetTask(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestPointsLedgerAppendOnly(t *testing.T) {
	t.Parallel()

	st := openTestStore(t)
	ctx := context.Background()

	for _, e := range []models.PointEntry{
		{UserName: "alice", Points: 50, TaskID: "t0", TaskName: "Audit"},
		{UserName: "bob", Points: 100, TaskID: "t1", TaskName: "Fix"},
		{UserName: "alice", Points: 100, TaskID: "t2", TaskName: "Ship"},
	} {
		if _, err := st.CreatePointEntry(ctx, e); err != nil {
			t.Fatalf("CreatePointEntry: %v", err)
		}
	}

	entries, err := st.ListPoints(ctx)
	if err != nil {
		t.Fatalf("ListPoints: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	total := 0
	for _, e := range entries {
		if e.UserName == "alice" {
			total += e.Points
		}
	}
	if total != 150 {
		t.Fatalf("alice derived total = %d, want 150", total)
	}

	if _, err := st.CreatePointEntry(ctx, models.PointEntry{Points: 10}); err == nil {
		t.Fatal("expected error for entry without user name")
	}
}

func TestDuplicateEmployeeNameRejected(t *testing.T) {
	t.Parallel()

	st := openTestStore(t)
	ctx := context.Background()

	if _, err := st.CreateEmployee(ctx, models.Employee{Name: "Carol"}); err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	// Name uniqueness is case-insensitive, matching the login lookup.
	if _, err := st.CreateEmployee(ctx, models.Employee{Name: "carol"}); err == nil {
		t.Fatal("expected unique-name violation")
	}
}
