// internal/repo/task_test.go
package repo

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/primetrade/task-api/internal/model"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatal(err)
	}

	// Очистка
	pool.Exec(context.Background(), "TRUNCATE tasks, users CASCADE")

	return pool
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	repo := NewUserRepo(pool)
	acc := model.Account{Name: "Alice", Email: "alice@x.com", PasswordHash: "hash"}

	created, err := repo.Create(context.Background(), acc)
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Error("expected non-empty ID")
	}
	if created.Role != model.RoleUser {
		t.Errorf("expected role=user, got %s", created.Role)
	}

	_, err = repo.Create(context.Background(), acc)
	if err != ErrorConflict {
		t.Errorf("expected conflict on duplicate email, got %v", err)
	}
}

func TestTaskRepo_Create(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	owner, err := NewUserRepo(pool).Create(context.Background(), model.Account{
		Name: "Alice", Email: "alice@x.com", PasswordHash: "hash",
	})
	if err != nil {
		t.Fatal(err)
	}

	repo := NewTaskRepo(pool)
	task := model.Task{Title: "Test", UserID: owner.ID}

	created, err := repo.Create(context.Background(), task)
	if err != nil {
		t.Fatal(err)
	}

	if created.ID == "" {
		t.Error("expected non-empty ID")
	}
	if created.Status != model.StatusPending {
		t.Errorf("expected status=pending, got %s", created.Status)
	}
	if created.UserID != owner.ID {
		t.Errorf("expected owner %s, got %s", owner.ID, created.UserID)
	}
}
