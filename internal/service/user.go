package service

import (
	"context"
	"errors"

	"github.com/inkpost/inkpost-go/internal/apperr"
	"github.com/inkpost/inkpost-go/internal/identity"
	"github.com/inkpost/inkpost-go/internal/model"
	"github.com/inkpost/inkpost-go/internal/repository"
	"github.com/inkpost/inkpost-go/internal/validate"
)

// UserService handles profile reads and status updates.
type UserService struct {
	users UserStore
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Profile returns the caller's own user record without the password hash.
func (s *UserService) Profile(ctx context.Context, caller identity.Context) (model.UserResponse, error) {
	if !caller.Authenticated {
		return model.UserResponse{}, apperr.Unauthenticated("not authenticated")
	}

	user, err := s.users.GetByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, apperr.NotFound("user not found")
		}
		return model.UserResponse{}, apperr.Unexpected(err)
	}

	return model.NewUserResponse(user), nil
}

// UpdateStatus replaces the caller's status line.
func (s *UserService) UpdateStatus(ctx context.Context, caller identity.Context, req model.StatusRequest) (model.UserResponse, error) {
	if !caller.Authenticated {
		return model.UserResponse{}, apperr.Unauthenticated("not authenticated")
	}

	if !validate.NonEmpty(req.Status) {
		return model.UserResponse{}, apperr.Validation([]apperr.FieldError{
			{Message: "Status must not be empty."},
		})
	}

	user, err := s.users.UpdateStatus(ctx, caller.UserID, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, apperr.NotFound("user not found")
		}
		return model.UserResponse{}, apperr.Unexpected(err)
	}

	return model.NewUserResponse(user), nil
}
