package auth

import (
	"context"
	"time"

	"retailcore/internal/core/apperror"
	"retailcore/internal/domain/users"
	"retailcore/pkg/logger"
)

// Service handles login. Failed lookups and bad passwords produce the
// same error so responses do not reveal which emails exist.
type Service struct {
	users *users.Service
	jwt   *JWTService
}

func NewService(usersSvc *users.Service, jwtSvc *JWTService) *Service {
	return &Service{users: usersSvc, jwt: jwtSvc}
}

// LoginResult is a successful authentication.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *users.User
}

// Login authenticates by email and password and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("Invalid credentials")
		}
		return nil, err
	}

	if !s.users.CheckPassword(u, password) {
		logger.Warn(ctx, "failed login attempt", "email", email)
		return nil, apperror.NewUnauthorized("Invalid credentials")
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(u)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "user logged in", "user_id", u.ID, "role", u.Role)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: u}, nil
}
