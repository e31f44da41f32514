package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Faheem2407/go-todo-app/pkg/utils"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type UserService interface {
	Register(ctx context.Context, name, email, password, passwordConfirmation string) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
	Get(ctx context.Context, id int64) (*User, error)
}

type service struct {
	repo UserRepository
}

func NewService(repo UserRepository) UserService {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, name, email, password, passwordConfirmation string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	fe := utils.FieldErrors{}
	if len(name) < 2 {
		fe.Add("name", "name must be at least 2 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		fe.Add("email", "email must be a valid email address")
	}
	if len(password) < 6 {
		fe.Add("password", "password must be at least 6 characters")
	}
	if password != passwordConfirmation {
		fe.Add("password", "password confirmation does not match")
	}

	// Uniqueness check only once the address itself is well-formed.
	if _, ok := fe["email"]; !ok {
		if _, err := s.repo.FindByEmail(ctx, email); err == nil {
			fe.Add("email", "email already in use")
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	if len(fe) > 0 {
		return nil, fe
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		Name:     name,
		Email:    email,
		Password: string(hash),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			fe.Add("email", "email already in use")
			return nil, fe
		}
		return nil, err
	}

	return u, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// Not distinguishing unknown email from bad password.
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.FindByID(ctx, id)
}
