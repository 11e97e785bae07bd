package tasks

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coderslab/hr-console/internal/shared"
)

// Repository defines persistence for tasks.
type Repository interface {
	List(ctx context.Context) ([]Task, error)
	Create(ctx context.Context, in TaskInput) (Task, error)
	Update(ctx context.Context, taskID int64, in TaskInput) (Task, error)
	Delete(ctx context.Context, taskID int64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// List returns all tasks, most recently touched first.
func (r *PGRepository) List(ctx context.Context) ([]Task, error) {
	const query = `
		SELECT t.task_id, t.todo, t.status, t.created_at, t.empno, e.ename AS assignee_name
		FROM tasks t
		LEFT JOIN emp e ON t.empno = e.empno
		ORDER BY t.updated_at DESC NULLS LAST`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.TaskID, &t.Todo, &t.Status, &t.CreatedAt, &t.EmpNo, &t.AssigneeName); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGRepository) Create(ctx context.Context, in TaskInput) (Task, error) {
	status := in.Status
	if status == "" {
		status = StatusPending
	}
	const query = `
		INSERT INTO tasks (todo, status, empno)
		VALUES ($1, $2, $3)
		RETURNING task_id, todo, status, empno, created_at, updated_at`
	var t Task
	err := r.pool.QueryRow(ctx, query, in.Todo, status, in.EmpNo).Scan(
		&t.TaskID, &t.Todo, &t.Status, &t.EmpNo, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *PGRepository) Update(ctx context.Context, taskID int64, in TaskInput) (Task, error) {
	const query = `
		UPDATE tasks
		SET todo = $1, status = $2, empno = $3, updated_at = CURRENT_TIMESTAMP
		WHERE task_id = $4
		RETURNING task_id, todo, status, empno, created_at, updated_at`
	var t Task
	err := r.pool.QueryRow(ctx, query, in.Todo, in.Status, in.EmpNo, taskID).Scan(
		&t.TaskID, &t.Todo, &t.Status, &t.EmpNo, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Task{}, shared.ErrNotFound
	}
	return t, err
}

func (r *PGRepository) Delete(ctx context.Context, taskID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE task_id = $1`, taskID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
