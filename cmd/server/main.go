package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Faheem2407/go-todo-app/internal/auth"
	"github.com/Faheem2407/go-todo-app/internal/env"
	"github.com/Faheem2407/go-todo-app/internal/todo"
	"github.com/Faheem2407/go-todo-app/internal/user"
)

func main() {
	env.Init()

	ctx := context.Background()

	cfg := config{
		addr: env.GetString("API_PORT", ":8000"),
		db: dbConfig{
			dsn: env.GetString("GOOSE_DBSTRING", "host=localhost port=5432 user=postgres password=postgres dbname=todoapp sslmode=disable"),
		},
	}

	// Plain text locally, JSON in production for log collectors.
	var logHandler slog.Handler = slog.NewTextHandler(os.Stdout, nil)
	if env.IsProduction() {
		logHandler = slog.NewJSONHandler(os.Stdout, nil)
	}
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	pool, err := pgxpool.New(ctx, cfg.db.dsn)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("database pool connected")
	defer pool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr: env.GetString("REDIS_ADDR", "localhost:6379"),
	})
	defer rdb.Close()

	userRepo := user.NewRepository(pool)
	userSvc := user.NewService(userRepo)

	todoRepo := todo.NewRepository(pool)
	todoSvc := todo.NewService(todoRepo)

	// Session lifetime; tokens die at logout or when this TTL runs out.
	sessionTTL := time.Duration(env.GetInt("SESSION_TTL_HOURS", 168)) * time.Hour

	tokenSvc := auth.NewTokenService(
		env.GetString("JWT_SECRET", "dev-secret"),
		sessionTTL,
		auth.NewRedisSessionStore(rdb),
	)

	api := application{
		config:       cfg,
		db:           pool,
		userService:  userSvc,
		todoService:  todoSvc,
		tokenService: tokenSvc,
	}

	if err := api.run(ctx, api.mount()); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}
