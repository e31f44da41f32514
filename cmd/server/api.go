package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Faheem2407/go-todo-app/internal/auth"
	"github.com/Faheem2407/go-todo-app/internal/env"
	"github.com/Faheem2407/go-todo-app/internal/todo"
	"github.com/Faheem2407/go-todo-app/internal/user"
)

type dbConfig struct {
	dsn string
}

type config struct {
	addr string
	db   dbConfig
}

type application struct {
	config       config
	db           *pgxpool.Pool
	userService  user.UserService
	todoService  todo.Service
	tokenService auth.TokenService
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{env.GetString("FRONTEND_URL", "http://localhost:3000")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("all good"))
	})

	authHandler := auth.NewHandler(app.userService, app.tokenService)
	todoHandler := todo.NewHandler(app.todoService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(app.tokenService))

			r.Get("/me", authHandler.Me)
			r.Post("/logout", authHandler.Logout)

			r.Route("/todos", func(r chi.Router) {
				r.Get("/", todoHandler.ListTodos)
				r.Post("/", todoHandler.CreateTodo)
				r.Get("/{id}", todoHandler.GetTodoByID)
				r.Put("/{id}", todoHandler.UpdateTodo)
				r.Delete("/{id}", todoHandler.DeleteTodo)
			})
		})
	})

	return r
}

func (app *application) run(ctx context.Context, h http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      h,
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  time.Minute,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", app.config.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down server...")
	case sig := <-quit:
		slog.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		return err
	}

	// Stop accepting new requests and let in-flight ones drain.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		return err
	}

	slog.Info("server exited gracefully")
	return nil
}
