package repo

import (
	"context"

	"github.com/primetrade/task-api/internal/model"
)

// UserRepository определяет интерфейс для работы с учетными записями
type UserRepository interface {
	Create(ctx context.Context, a model.Account) (model.Account, error)
	GetByEmail(ctx context.Context, email string) (model.Account, error)
	GetByID(ctx context.Context, id string) (model.Account, error)
}

// TaskRepository определяет интерфейс для работы с задачами
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Get(ctx context.Context, id string) (model.Task, error)
	GetWithOwner(ctx context.Context, id string) (model.TaskWithOwner, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Task, error)
	ListAll(ctx context.Context) ([]model.TaskWithOwner, error)
	Update(ctx context.Context, t model.Task) (model.Task, error)
	Delete(ctx context.Context, id string) error
}
