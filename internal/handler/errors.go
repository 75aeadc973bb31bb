package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/primetrade/task-api/internal/service"
	"github.com/primetrade/task-api/pkg/respond"
)

// handleErrors переводит ошибки сервисов в HTTP-статусы. Единственное
// место маппинга: 400 за валидацию и конфликт, 401/403 за доступ,
// 404 за отсутствие, все остальное - 500 без деталей.
func handleErrors(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
		respond.Error(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAuthentication):
		respond.Error(w, r, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		respond.Error(w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respond.Error(w, r, http.StatusNotFound, err.Error())
	default:
		logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
