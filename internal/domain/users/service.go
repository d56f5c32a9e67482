package users

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/id"
	"retailcore/pkg/logger"
)

// Service manages user accounts. Passwords are hashed with bcrypt
// before they reach the repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name     string
	Email    string
	Password string
	Role     Role
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*User, error) {
	if len(input.Password) < 8 {
		return nil, apperror.NewValidation("password must be at least 8 characters")
	}

	now := time.Now().UTC()
	u := &User{
		ID:        id.New(),
		Name:      input.Name,
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Role:      input.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(ctx, u.Email); err == nil && existing != nil {
		return nil, apperror.NewDuplicate("user", "email", u.Email)
	} else if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	u.PasswordHash = string(hash)

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	logger.Info(ctx, "user created", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

type UpdateInput struct {
	Name     *string
	Password *string
	Role     *Role
}

func (s *Service) Update(ctx context.Context, userID id.ID, input UpdateInput) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		u.Name = *input.Name
	}
	if input.Role != nil {
		u.Role = *input.Role
	}
	if input.Password != nil {
		if len(*input.Password) < 8 {
			return nil, apperror.NewValidation("password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperror.NewInternal(err)
		}
		u.PasswordHash = string(hash)
	}
	u.UpdatedAt = time.Now().UTC()

	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, userID id.ID) error {
	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID)
}

// CheckPassword compares a plaintext password against the stored hash.
func (s *Service) CheckPassword(u *User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
