package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/primetrade/task-api/internal/model"
	"github.com/primetrade/task-api/internal/service"
	"github.com/primetrade/task-api/pkg/respond"
)

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := AccountFrom(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	var req model.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}

	task, err := h.service.Create(r.Context(), caller, req)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/tasks/%s", task.ID))
	respond.JSON(w, r, http.StatusCreated, map[string]interface{}{
		"message": "Task created successfully",
		"task":    task,
	})
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := AccountFrom(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	tasks, err := h.service.List(r.Context(), caller)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := AccountFrom(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	task, err := h.service.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, map[string]interface{}{"task": task})
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := AccountFrom(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	var req model.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	task, err := h.service.Update(r.Context(), caller, chi.URLParam(r, "id"), req)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "Task updated successfully",
		"task":    task,
	})
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := AccountFrom(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	if err := h.service.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}
