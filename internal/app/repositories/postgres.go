package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kalpovskii/taskmanager/internal/app/models"
	_ "github.com/lib/pq"
)

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	List(ctx context.Context, status *models.TaskStatus) ([]models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error
}

type PostgresTaskRepo struct {
	db *sql.DB
}

func NewPostgresTaskRepo(dsn string) (*PostgresTaskRepo, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS tasks (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			status TEXT NOT NULL DEFAULT 'todo',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return nil, err
	}

	return &PostgresTaskRepo{db: db}, nil
}

func (r *PostgresTaskRepo) Create(ctx context.Context, task *models.Task) error {
	return r.db.QueryRowContext(ctx,
		"INSERT INTO tasks (title, description, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		task.Title, task.Description, task.Status, task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID)
}

// List returns tasks ordered by id ascending, optionally restricted to one
// status.
func (r *PostgresTaskRepo) List(ctx context.Context, status *models.TaskStatus) ([]models.Task, error) {
	query := "SELECT id, title, description, status, created_at, updated_at FROM tasks ORDER BY id"
	args := []any{}
	if status != nil {
		query = "SELECT id, title, description, status, created_at, updated_at FROM tasks WHERE status = $1 ORDER BY id"
		args = append(args, *status)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *PostgresTaskRepo) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	var t models.Task
	err := r.db.QueryRowContext(ctx,
		"SELECT id, title, description, status, created_at, updated_at FROM tasks WHERE id = $1", id,
	).Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresTaskRepo) Update(ctx context.Context, task *models.Task) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET title = $1, description = $2, status = $3, updated_at = $4 WHERE id = $5",
		task.Title, task.Description, task.Status, task.UpdatedAt, task.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrTaskNotFound
	}
	return nil
}

func (r *PostgresTaskRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrTaskNotFound
	}
	return nil
}
