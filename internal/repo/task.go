package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/primetrade/task-api/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

type TaskRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo { // Конструктор
	return &TaskRepo{
		pool: pool,
	}
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	if t.Status == "" {
		t.Status = model.StatusPending
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (id, title, description, status, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, description, status, user_id, created_at, updated_at
	`, uuid.NewString(), t.Title, t.Description, t.Status, t.UserID).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, mapError(err)
}

func (r *TaskRepo) Get(ctx context.Context, id string) (model.Task, error) {
	var t model.Task
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, description, status, user_id, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return t, ErrorNotFound
	}
	return t, err
}

func (r *TaskRepo) GetWithOwner(ctx context.Context, id string) (model.TaskWithOwner, error) {
	var tw model.TaskWithOwner
	var owner model.AccountPublic

	err := r.pool.QueryRow(ctx, `
		SELECT t.id, t.title, t.description, t.status, t.user_id, t.created_at, t.updated_at,
		       u.id, u.name, u.email, u.role
		FROM tasks t
		JOIN users u ON u.id = t.user_id
		WHERE t.id = $1
	`, id).Scan(
		&tw.ID, &tw.Title, &tw.Description, &tw.Status, &tw.UserID, &tw.CreatedAt, &tw.UpdatedAt,
		&owner.ID, &owner.Name, &owner.Email, &owner.Role,
	)

	if err == pgx.ErrNoRows {
		return tw, ErrorNotFound
	}
	if err != nil {
		return tw, err
	}

	tw.Owner = &owner
	return tw, nil
}

func (r *TaskRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, status, user_id, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) ListAll(ctx context.Context) ([]model.TaskWithOwner, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.title, t.description, t.status, t.user_id, t.created_at, t.updated_at,
		       u.id, u.name, u.email, u.role
		FROM tasks t
		JOIN users u ON u.id = t.user_id
		ORDER BY t.created_at DESC, t.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.TaskWithOwner, 0)
	for rows.Next() {
		var tw model.TaskWithOwner
		var owner model.AccountPublic
		if err := rows.Scan(
			&tw.ID, &tw.Title, &tw.Description, &tw.Status, &tw.UserID, &tw.CreatedAt, &tw.UpdatedAt,
			&owner.ID, &owner.Name, &owner.Email, &owner.Role,
		); err != nil {
			return nil, err
		}
		tw.Owner = &owner
		tasks = append(tasks, tw)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) Update(ctx context.Context, t model.Task) (model.Task, error) {
	// Владелец и таймстемпы снаружи не меняются
	err := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, updated_at = now()
		WHERE id = $1
		RETURNING id, title, description, status, user_id, created_at, updated_at
	`, t.ID, t.Title, t.Description, t.Status).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return t, ErrorNotFound
	}
	return t, err
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return ErrorConflict
		}
	}
	return err
}
