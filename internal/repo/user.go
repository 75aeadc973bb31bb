package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/primetrade/task-api/internal/model"
)

type UserRepo struct { // Репозиторий учетных записей
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{
		pool: pool,
	}
}

func (r *UserRepo) Create(ctx context.Context, a model.Account) (model.Account, error) {
	if a.Role == "" {
		a.Role = model.RoleUser
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, password_hash, role, created_at, updated_at
	`, uuid.NewString(), a.Name, a.Email, a.PasswordHash, a.Role).Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, mapError(err)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	var a model.Account
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email).Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return a, ErrorNotFound
	}
	return a, err
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (model.Account, error) {
	var a model.Account
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return a, ErrorNotFound
	}
	return a, err
}
