package todo

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Faheem2407/go-todo-app/pkg/utils"
)

const maxTitleLen = 255

// Service is the business logic layer: validation plus the ownership
// check every per-row operation must pass.
type Service interface {
	CreateTodo(ctx context.Context, userID int64, in CreateTodoInput) (*Todo, error)
	GetTodo(ctx context.Context, id, userID int64) (*Todo, error)
	ListTodos(ctx context.Context, userID int64) ([]Todo, error)
	UpdateTodo(ctx context.Context, id, userID int64, in UpdateTodoInput) (*Todo, error)
	DeleteTodo(ctx context.Context, id, userID int64) error
}

type service struct {
	repo TodoRepository
}

func NewService(repo TodoRepository) Service {
	return &service{repo: repo}
}

func validateTitle(title string) utils.FieldErrors {
	fe := utils.FieldErrors{}
	if strings.TrimSpace(title) == "" {
		fe.Add("title", "title is required")
	}
	// Characters, not bytes; VARCHAR(255) counts characters too.
	if utf8.RuneCountInString(title) > maxTitleLen {
		fe.Add("title", "title may not be greater than 255 characters")
	}
	return fe
}

func (s *service) CreateTodo(ctx context.Context, userID int64, in CreateTodoInput) (*Todo, error) {
	if fe := validateTitle(in.Title); len(fe) > 0 {
		return nil, fe
	}

	todo := &Todo{
		Title:       in.Title,
		Description: in.Description,
		Completed:   false,
		UserID:      userID,
	}

	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, err
	}

	return todo, nil
}

// GetTodo returns ErrForbidden when the row exists but belongs to
// someone else, so 403 takes precedence over 404.
func (s *service) GetTodo(ctx context.Context, id, userID int64) (*Todo, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, ErrForbidden
	}
	return t, nil
}

func (s *service) ListTodos(ctx context.Context, userID int64) ([]Todo, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) UpdateTodo(ctx context.Context, id, userID int64, in UpdateTodoInput) (*Todo, error) {
	existing, err := s.GetTodo(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if fe := validateTitle(*in.Title); len(fe) > 0 {
			return nil, fe
		}
		existing.Title = *in.Title
	}

	if in.Description != nil {
		existing.Description = in.Description
	}

	if in.Completed != nil {
		existing.Completed = *in.Completed
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (s *service) DeleteTodo(ctx context.Context, id, userID int64) error {
	if _, err := s.GetTodo(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
