package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inkpost/inkpost-go/internal/model"
)

// UserStore is the user persistence surface the operations depend on.
// Implemented by repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.User, error)
	PushPost(ctx context.Context, userID string, postID primitive.ObjectID) error
	PullPost(ctx context.Context, userID string, postID primitive.ObjectID) error
}

// PostStore is the post persistence surface the operations depend on.
// Implemented by repository.PostRepository.
type PostStore interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	GetByIDWithCreator(ctx context.Context, id string) (*model.PostWithCreator, error)
	List(ctx context.Context, offset, limit int) ([]model.PostWithCreator, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id string) error
}

// ImageReleaser releases a stored image that is no longer referenced.
// Implemented by media.Coordinator.
type ImageReleaser interface {
	Release(ctx context.Context, path string)
}
