package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/pkg/models"
)

// ErrNotFound is returned when a record lookup matches nothing.
var ErrNotFound = errors.New("not found")

func (s *sqliteStore) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT employee_id, name, department, email, join_date, created_at FROM employees ORDER BY created_at ASC, employee_id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *sqliteStore) GetEmployeeByName(ctx context.Context, name string) (*models.Employee, error) {
	row := s.stmtGetEmployeeByName.QueryRowContext(ctx, name)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("employee %q: %w", name, ErrNotFound)
		}
		return nil, err
	}
	return &e, nil
}

func (s *sqliteStore) CreateEmployee(ctx context.Context, e models.Employee) (string, error) {
	if e.Name == "" {
		return "", errors.New("employee name required")
	}
	id := uuid.NewString()
	department := e.Department
	if department == "" {
		department = models.DepartmentDevelopment
	}
	_, err := s.DB.ExecContext(ctx, `INSERT INTO employees(employee_id, name, department, email, join_date, created_at) VALUES(?, ?, ?, ?, ?, ?)`,
		id, e.Name, department, e.Email, e.JoinDate, time.Now().UTC().Unix())
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *sqliteStore) DeleteEmployee(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM employees WHERE employee_id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("employee %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *sqliteStore) ListTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT task_id, task_name, description, assigned_to, assigned_by, task_type, difficulty, priority, estimated_time, reference, supporting_links, status, created_at, completed_at FROM tasks ORDER BY created_at DESC, task_id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *sqliteStore) GetTask(ctx context.Context, id string) (*models.Task, error) {
	row := s.stmtGetTask.QueryRowContext(ctx, id)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &t, nil
}

func (s *sqliteStore) CreateTask(ctx context.Context, t models.Task) (string, error) {
	if t.TaskName == "" {
		return "", errors.New("task name required")
	}
	if t.AssignedTo == "" {
		return "", errors.New("task assignee required")
	}
	id := uuid.NewString()
	status := t.Status
	if status == "" {
		status = models.StatusPending
	}
	created := t.Timestamp
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := s.stmtCreateTask.ExecContext(ctx,
		id, t.TaskName, t.Description, t.AssignedTo, t.AssignedBy, t.TaskType,
		t.Difficulty, t.Priority, t.EstimatedTime, t.Reference, t.SupportingLinks,
		status, created.Unix())
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *sqliteStore) UpdateTaskStatus(ctx context.Context, id, status string, completedAt *time.Time) error {
	var completed any
	if completedAt != nil {
		completed = completedAt.Unix()
	}
	res, err := s.stmtUpdateTaskStatus.ExecContext(ctx, status, completed, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *sqliteStore) DeleteTask(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM tasks WHERE task_id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *sqliteStore) ListPoints(ctx context.Context) ([]models.PointEntry, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT point_id, user_name, points, task_id, task_name, created_at FROM points ORDER BY created_at ASC, point_id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.PointEntry
	for rows.Next() {
		var (
			e         models.PointEntry
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &e.UserName, &e.Points, &e.TaskID, &e.TaskName, &createdAt); err != nil {
			return nil, err
		}
		e.Timestamp = time.Unix(createdAt, 0).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *sqliteStore) CreatePointEntry(ctx context.Context, e models.PointEntry) (string, error) {
	if e.UserName == "" {
		return "", errors.New("point entry user name required")
	}
	id := uuid.NewString()
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err := s.stmtCreatePointEntry.ExecContext(ctx, id, e.UserName, e.Points, e.TaskID, e.TaskName, ts.Unix())
	if err != nil {
		return "", err
	}
	return id, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (models.Employee, error) {
	var (
		e         models.Employee
		createdAt int64
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Department, &e.Email, &e.JoinDate, &createdAt); err != nil {
		return models.Employee{}, err
	}
	e.CreatedAt = time.Unix(createdAt, 0).UTC()
	return e, nil
}

func scanTask(row rowScanner) (models.Task, error) {
	var (
		t         models.Task
		createdAt int64
		completed sql.NullInt64
	)
	if err := row.Scan(&t.ID, &t.TaskName, &t.Description, &t.AssignedTo, &t.AssignedBy,
		&t.TaskType, &t.Difficulty, &t.Priority, &t.EstimatedTime, &t.Reference,
		&t.SupportingLinks, &t.Status, &createdAt, &completed); err != nil {
		return models.Task{}, err
	}
	t.Timestamp = time.Unix(createdAt, 0).UTC()
	if completed.Valid {
		ts := time.Unix(completed.Int64, 0).UTC()
		t.CompletedAt = &ts
	}
	return t, nil
}
