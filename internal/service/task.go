package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/primetrade/task-api/internal/model"
	"github.com/primetrade/task-api/internal/repo"
)

// TaskService - центр принятия решений о доступе к задачам. Каждая
// адресная операция идет в одном и том же порядке: загрузить задачу,
// проверить существование, проверить scope, выполнить. Порядок значим:
// несуществующий id - это 404 для любой роли, а не 403.
type TaskService struct {
	repo repo.TaskRepository
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(ctx context.Context, caller model.Account, req model.CreateTaskRequest) (model.Task, error) {
	title := strings.TrimSpace(req.Title)
	if utf8.RuneCountInString(title) < 2 {
		return model.Task{}, validationError("Task title must be at least 2 characters long")
	}

	status := req.Status
	if status == "" {
		status = model.StatusPending
	} else if !model.ValidStatus(status) {
		return model.Task{}, validationError("Invalid task status")
	}

	return s.repo.Create(ctx, model.Task{
		Title:       title,
		Description: req.Description,
		Status:      status,
		UserID:      caller.ID, // владелец фиксируется при создании
	})
}

// List возвращает задачи в пределах scope вызывающего: админ видит все
// задачи с публичными полями владельцев, остальные - только свои.
// Без пагинации, весь набор целиком.
func (s *TaskService) List(ctx context.Context, caller model.Account) ([]model.TaskWithOwner, error) {
	if ScopeFor(caller.Role) == ScopeAll {
		return s.repo.ListAll(ctx)
	}

	tasks, err := s.repo.ListByOwner(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	out := make([]model.TaskWithOwner, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, model.TaskWithOwner{Task: t})
	}
	return out, nil
}

func (s *TaskService) Get(ctx context.Context, caller model.Account, id string) (model.TaskWithOwner, error) {
	tw, err := s.repo.GetWithOwner(ctx, id)
	if errors.Is(err, repo.ErrorNotFound) {
		return tw, notFoundError("Task not found")
	}
	if err != nil {
		return tw, err
	}

	if !ScopeFor(caller.Role).Allows(tw.UserID, caller.ID) {
		return model.TaskWithOwner{}, forbiddenError("Not allowed to access this task")
	}
	return tw, nil
}

func (s *TaskService) Update(ctx context.Context, caller model.Account, id string, req model.UpdateTaskRequest) (model.Task, error) {
	t, err := s.repo.Get(ctx, id)
	if errors.Is(err, repo.ErrorNotFound) {
		return t, notFoundError("Task not found")
	}
	if err != nil {
		return t, err
	}

	if !ScopeFor(caller.Role).Allows(t.UserID, caller.ID) {
		return model.Task{}, forbiddenError("Not allowed to update this task")
	}

	// nil - поле не пришло в запросе, оставляем сохраненное значение
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if utf8.RuneCountInString(title) < 2 {
			return model.Task{}, validationError("Task title must be at least 2 characters long")
		}
		t.Title = title
	}
	if req.Description != nil {
		t.Description = *req.Description // пустая строка очищает описание
	}
	if req.Status != nil {
		if !model.ValidStatus(*req.Status) {
			return model.Task{}, validationError("Invalid task status")
		}
		t.Status = *req.Status
	}

	return s.repo.Update(ctx, t)
}

func (s *TaskService) Delete(ctx context.Context, caller model.Account, id string) error {
	t, err := s.repo.Get(ctx, id)
	if errors.Is(err, repo.ErrorNotFound) {
		return notFoundError("Task not found")
	}
	if err != nil {
		return err
	}

	if !ScopeFor(caller.Role).Allows(t.UserID, caller.ID) {
		return forbiddenError("Not allowed to delete this task")
	}

	return s.repo.Delete(ctx, id)
}
