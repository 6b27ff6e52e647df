package store

import (
	"context"
	"time"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/pkg/models"
)

// Store is the persistence interface for employees, tasks, and the points
// ledger. Implementations: the SQLite store in this package, *postgres.Store,
// and *rtdb.Store (hosted document database over HTTP).
//
// Collections are always fetched in full; views recompute their aggregates
// from the snapshot on every load. The points ledger is append-only, so the
// interface deliberately has no update or delete for point entries.
type Store interface {
	// Employees
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	// GetEmployeeByName matches case-insensitively (login lookup).
	GetEmployeeByName(ctx context.Context, name string) (*models.Employee, error)
	CreateEmployee(ctx context.Context, e models.Employee) (string, error)
	DeleteEmployee(ctx context.Context, id string) error

	// Tasks
	ListTasks(ctx context.Context) ([]models.Task, error)
	GetTask(ctx context.Context, id string) (*models.Task, error)
	CreateTask(ctx context.Context, t models.Task) (string, error)
	// UpdateTaskStatus merges the new status (and CompletedAt, when non-nil)
	// into the task; other fields are untouched.
	UpdateTaskStatus(ctx context.Context, id, status string, completedAt *time.Time) error
	DeleteTask(ctx context.Context, id string) error

	// Points ledger
	ListPoints(ctx context.Context) ([]models.PointEntry, error)
	CreatePointEntry(ctx context.Context, e models.PointEntry) (string, error)

	// Lifecycle
	Close() error
}
