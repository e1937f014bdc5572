// Package server assembles the HTTP router and runs the server lifecycle.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/todoapp/todo-api/internal/handler"
	"github.com/todoapp/todo-api/internal/middleware"
	"github.com/todoapp/todo-api/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Auth      *service.AuthService
	Todos     *service.TodoService
	Comments  *service.CommentService
	Reactions *service.ReactionService

	Tokens middleware.TokenVerifier
	Users  middleware.UserLookup

	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int

	// TrustedProxies are the peers whose forwarding headers set the client IP.
	TrustedProxies []netip.Prefix
}

// NewRouter builds the API routes. ctx bounds background work such as the
// rate limiter's sweeper.
func NewRouter(ctx context.Context, d Deps) http.Handler {
	authHandler := handler.NewAuthHandler(d.Auth)
	todoHandler := handler.NewTodoHandler(d.Todos)
	commentHandler := handler.NewCommentHandler(d.Comments)
	reactionHandler := handler.NewReactionHandler(d.Reactions)

	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RealIP(d.TrustedProxies))
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Route not found"})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Backend API is running!"})
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "OK", "timestamp": time.Now().UTC()})
	})

	authenticate := middleware.Authenticate(d.Tokens, d.Users)

	r.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(ctx, d.RateLimitRPS, d.RateLimitBurst))
			r.Post("/register", authHandler.HandleRegister)
			r.Post("/login", authHandler.HandleLogin)
		})
		r.With(authenticate).Get("/me", authHandler.HandleMe)
	})

	r.Route("/api/todos", func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/", todoHandler.HandleList)
		r.Post("/", todoHandler.HandleCreate)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", todoHandler.HandleGet)
			r.Put("/", todoHandler.HandleUpdate)
			r.Delete("/", todoHandler.HandleDelete)

			r.Get("/comments", commentHandler.HandleList)
			r.Post("/comments", commentHandler.HandleCreate)
			r.Delete("/comments/{commentId}", commentHandler.HandleDelete)

			r.Get("/reactions", reactionHandler.HandleList)
			r.Post("/reactions", reactionHandler.HandleAdd)
			r.Delete("/reactions", reactionHandler.HandleRemove)
		})
	})

	return r
}

// New returns an http.Server with conservative timeouts.
func New(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func Run(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	slog.Info("server stopped")
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
