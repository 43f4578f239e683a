package service

import (
	"context"
	"errors"
	"time"

	"github.com/inkpost/inkpost-go/internal/apperr"
	"github.com/inkpost/inkpost-go/internal/crypto"
	"github.com/inkpost/inkpost-go/internal/model"
	"github.com/inkpost/inkpost-go/internal/repository"
	"github.com/inkpost/inkpost-go/internal/validate"
)

// passwordMinLength is the minimum accepted password length at registration.
const passwordMinLength = 5

// AuthService handles registration and login.
type AuthService struct {
	users     UserStore
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new user account. Field violations are collected and
// reported together; a taken email is a conflict regardless of the other
// fields.
func (s *AuthService) Register(ctx context.Context, req model.SignupRequest) (model.UserResponse, error) {
	var violations []apperr.FieldError
	if !validate.IsEmail(req.Email) {
		violations = append(violations, apperr.FieldError{Message: "Email is invalid."})
	}
	if !validate.MinLength(req.Password, passwordMinLength) {
		violations = append(violations, apperr.FieldError{Message: "Password too short."})
	}
	if len(violations) > 0 {
		return model.UserResponse{}, apperr.Validation(violations)
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.UserResponse{}, apperr.Unexpected(err)
	}

	user := &model.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: hash,
		Status:   model.DefaultStatus,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.UserResponse{}, apperr.Conflict("user already exists")
		}
		return model.UserResponse{}, apperr.Unexpected(err)
	}

	return model.NewUserResponse(user), nil
}

// Login verifies the credentials and issues a signed, time-bounded token.
// An unknown email and a wrong password are reported as distinct conditions.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.LoginResponse{}, apperr.NotFound("user not found")
		}
		return model.LoginResponse{}, apperr.Unexpected(err)
	}

	if !crypto.VerifyPassword(req.Password, user.Password) {
		return model.LoginResponse{}, apperr.Unauthenticated("password is incorrect")
	}

	token, err := crypto.GenerateToken(user.ID.Hex(), user.Email, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.LoginResponse{}, apperr.Unexpected(err)
	}

	return model.LoginResponse{
		Token:  token,
		UserID: user.ID.Hex(),
	}, nil
}
