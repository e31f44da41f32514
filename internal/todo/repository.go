package todo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound  = errors.New("todo not found")
	ErrForbidden = errors.New("todo belongs to another user")
)

func checkRowsAffectedOne(cmdTag pgconn.CommandTag) error {
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type TodoRepository interface {
	Create(ctx context.Context, t *Todo) error
	GetByID(ctx context.Context, id int64) (*Todo, error)
	ListByUser(ctx context.Context, userID int64) ([]Todo, error)
	Update(ctx context.Context, t *Todo) error
	Delete(ctx context.Context, id int64) error
}

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) TodoRepository {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, t *Todo) error {
	query := `
		INSERT INTO todos (title, description, completed, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(
		ctx,
		query,
		t.Title,
		t.Description,
		t.Completed,
		t.UserID,
	).Scan(
		&t.ID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
}

// GetByID fetches by id alone; the ownership check lives in the service
// so a cross-owner read can be told apart from a missing row.
func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (*Todo, error) {
	query := `
		SELECT id, title, description, completed, user_id, created_at, updated_at
		FROM todos
		WHERE id = $1
	`

	var t Todo
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Completed,
		&t.UserID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &t, nil
}

func (r *PostgresRepo) ListByUser(ctx context.Context, userID int64) ([]Todo, error) {
	query := `
		SELECT id, title, description, completed, user_id, created_at, updated_at
		FROM todos
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []Todo{}
	for rows.Next() {
		var t Todo
		if err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Description,
			&t.Completed,
			&t.UserID,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return todos, nil
}

func (r *PostgresRepo) Update(ctx context.Context, t *Todo) error {
	query := `
		UPDATE todos
		SET
			title = $1,
			description = $2,
			completed = $3,
			updated_at = now()
		WHERE id = $4
		RETURNING updated_at
	`
	err := r.db.QueryRow(
		ctx,
		query,
		t.Title,
		t.Description,
		t.Completed,
		t.ID,
	).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM todos
		WHERE id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	return checkRowsAffectedOne(cmdTag)
}
