package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/primetrade/task-api/internal/model"
	"github.com/primetrade/task-api/internal/service"
	"github.com/primetrade/task-api/pkg/respond"
)

type ctxKey int

const accountKey ctxKey = iota

type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAuth проверяет bearer-токен и кладет учетную запись в контекст
// запроса. Дальше хэндлеры достают ее через AccountFrom.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respond.Error(w, r, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		acc, err := m.auth.Authenticate(r.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respond.Error(w, r, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		ctx := context.WithValue(r.Context(), accountKey, acc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func AccountFrom(ctx context.Context) (model.Account, bool) {
	acc, ok := ctx.Value(accountKey).(model.Account)
	return acc, ok
}
