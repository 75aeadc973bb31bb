package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// NewRouter собирает весь HTTP-слой: базовые middleware, CORS под
// фронтенд, лимитер запросов и маршруты API.
func NewRouter(auth *AuthHandler, tasks *TaskHandler, mw *AuthMiddleware, frontendURL string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(httprate.LimitByIP(100, 15*time.Minute))

	if frontendURL != "" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{frontendURL},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Task API is running...")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", auth.Register)
			r.Post("/login", auth.Login)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(mw.RequireAuth)
			r.Post("/", tasks.Create)
			r.Get("/", tasks.List)
			r.Get("/{id}", tasks.Get)
			r.Put("/{id}", tasks.Update)
			r.Delete("/{id}", tasks.Delete)
		})
	})

	return r
}
