package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/store"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/pkg/models"
)

const employeeCols = `employee_id, name, department, email, join_date, created_at`
const taskCols = `task_id, task_name, description, assigned_to, assigned_by, task_type, difficulty, priority, estimated_time, reference, supporting_links, status, created_at, completed_at`

func (s *Store) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+employeeCols+` FROM employees ORDER BY created_at ASC, employee_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Employee
	for rows.Next() {
		var (
			e         models.Employee
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Department, &e.Email, &e.JoinDate, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) GetEmployeeByName(ctx context.Context, name string) (*models.Employee, error) {
	var (
		e         models.Employee
		createdAt int64
	)
	err := s.Pool.QueryRow(ctx, `SELECT `+employeeCols+` FROM employees WHERE LOWER(name) = LOWER($1)`, name).
		Scan(&e.ID, &e.Name, &e.Department, &e.Email, &e.JoinDate, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("employee %q: %w", name, store.ErrNotFound)
		}
		return nil, err
	}
	e.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &e, nil
}

func (s *Store) CreateEmployee(ctx context.Context, e models.Employee) (string, error) {
	if e.Name == "" {
		return "", errors.New("employee name required")
	}
	id := uuid.NewString()
	department := e.Department
	if department == "" {
		department = models.DepartmentDevelopment
	}
	_, err := s.Pool.Exec(ctx, `INSERT INTO employees(employee_id, name, department, email, join_date, created_at) VALUES($1, $2, $3, $4, $5, $6)`,
		id, e.Name, department, e.Email, e.JoinDate, time.Now().UTC().Unix())
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM employees WHERE employee_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employee %s: %w", id, store.ErrNotFound)
	}
	return nil
}

func (s *Store) ListTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+taskCols+` FROM tasks ORDER BY created_at DESC, task_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

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

func (s *Store) GetTask(ctx context.Context, id string) (*models.Task, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+taskCols+` FROM tasks WHERE task_id = $1`, id)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", id, store.ErrNotFound)
		}
		return nil, err
	}
	return &t, nil
}

func (s *Store) CreateTask(ctx context.Context, t models.Task) (string, error) {
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
	_, err := s.Pool.Exec(ctx, `INSERT INTO tasks(`+taskCols+`) VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NULL)`,
		id, t.TaskName, t.Description, t.AssignedTo, t.AssignedBy, t.TaskType,
		t.Difficulty, t.Priority, t.EstimatedTime, t.Reference, t.SupportingLinks,
		status, created.Unix())
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateTaskStatus(ctx context.Context, id, status string, completedAt *time.Time) error {
	var completed any
	if completedAt != nil {
		completed = completedAt.Unix()
	}
	tag, err := s.Pool.Exec(ctx, `UPDATE tasks SET status = $1, completed_at = COALESCE($2, completed_at) WHERE task_id = $3`, status, completed, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", id, store.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM tasks WHERE task_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", id, store.ErrNotFound)
	}
	return nil
}

func (s *Store) ListPoints(ctx context.Context) ([]models.PointEntry, error) {
	rows, err := s.Pool.Query(ctx, `SELECT point_id, user_name, points, task_id, task_name, created_at FROM points ORDER BY created_at ASC, point_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

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

func (s *Store) CreatePointEntry(ctx context.Context, e models.PointEntry) (string, error) {
	if e.UserName == "" {
		return "", errors.New("point entry user name required")
	}
	id := uuid.NewString()
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err := s.Pool.Exec(ctx, `INSERT INTO points(point_id, user_name, points, task_id, task_name, created_at) VALUES($1, $2, $3, $4, $5, $6)`,
		id, e.UserName, e.Points, e.TaskID, e.TaskName, ts.Unix())
	if err != nil {
		return "", err
	}
	return id, nil
}

func scanTask(row pgx.Row) (models.Task, error) {
	var (
		t         models.Task
		createdAt int64
		completed *int64
	)
	if err := row.Scan(&t.ID, &t.TaskName, &t.Description, &t.AssignedTo, &t.AssignedBy,
		&t.TaskType, &t.Difficulty, &t.Priority, &t.EstimatedTime, &t.Reference,
		&t.SupportingLinks, &t.Status, &createdAt, &completed); err != nil {
		return models.Task{}, err
	}
	t.Timestamp = time.Unix(createdAt, 0).UTC()
	if completed != nil {
		ts := time.Unix(*completed, 0).UTC()
		t.CompletedAt = &ts
	}
	return t, nil
}
