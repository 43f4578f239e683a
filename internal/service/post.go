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

const (
	// postsPerPage is the fixed feed page size, shared by the total count
	// and the slice computation.
	postsPerPage = 2

	// postFieldMinLength is the minimum title and content length.
	postFieldMinLength = 5
)

// PostService handles the post operations: create, read, update, delete,
// and the paginated feed.
type PostService struct {
	posts PostStore
	users UserStore
	media ImageReleaser
}

// NewPostService creates a new PostService.
func NewPostService(posts PostStore, users UserStore, media ImageReleaser) *PostService {
	return &PostService{posts: posts, users: users, media: media}
}

// validatePostInput collects every title/content violation.
func validatePostInput(req model.PostRequest) []apperr.FieldError {
	var violations []apperr.FieldError
	if !validate.MinLength(req.Title, postFieldMinLength) {
		violations = append(violations, apperr.FieldError{Message: "Title is invalid."})
	}
	if !validate.MinLength(req.Content, postFieldMinLength) {
		violations = append(violations, apperr.FieldError{Message: "Content is invalid."})
	}
	return violations
}

// Create stores a new post owned by the caller and appends it to the
// caller's posts list.
func (s *PostService) Create(ctx context.Context, caller identity.Context, req model.PostRequest) (model.PostResponse, error) {
	if !caller.Authenticated {
		return model.PostResponse{}, apperr.Unauthenticated("not authenticated")
	}

	if violations := validatePostInput(req); len(violations) > 0 {
		return model.PostResponse{}, apperr.Validation(violations)
	}

	creator, err := s.users.GetByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.PostResponse{}, apperr.NotFound("user not found")
		}
		return model.PostResponse{}, apperr.Unexpected(err)
	}

	post := &model.Post{
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		Creator:  creator.ID,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return model.PostResponse{}, apperr.Unexpected(err)
	}

	if err := s.users.PushPost(ctx, caller.UserID, post.ID); err != nil {
		return model.PostResponse{}, apperr.Unexpected(err)
	}

	return model.NewPostResponse(model.PostWithCreator{Post: *post, Creator: *creator}), nil
}

// List returns one feed page, newest first, plus the total post count.
// Page defaults to 1 when absent or out of range.
func (s *PostService) List(ctx context.Context, caller identity.Context, page int) (model.PostListResponse, error) {
	if !caller.Authenticated {
		return model.PostListResponse{}, apperr.Unauthenticated("not authenticated")
	}

	if page < 1 {
		page = 1
	}

	total, err := s.posts.Count(ctx)
	if err != nil {
		return model.PostListResponse{}, apperr.Unexpected(err)
	}

	rows, err := s.posts.List(ctx, (page-1)*postsPerPage, postsPerPage)
	if err != nil {
		return model.PostListResponse{}, apperr.Unexpected(err)
	}

	posts := make([]model.PostResponse, len(rows))
	for i, row := range rows {
		posts[i] = model.NewPostResponse(row)
	}

	return model.PostListResponse{Posts: posts, TotalPosts: total}, nil
}

// Get returns a single post with its author populated.
func (s *PostService) Get(ctx context.Context, caller identity.Context, id string) (model.PostResponse, error) {
	if !caller.Authenticated {
		return model.PostResponse{}, apperr.Unauthenticated("not authenticated")
	}

	row, err := s.posts.GetByIDWithCreator(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return model.PostResponse{}, apperr.NotFound("no post found")
		}
		return model.PostResponse{}, apperr.Unexpected(err)
	}

	return model.NewPostResponse(*row), nil
}

// Update rewrites a post's title and content. The image URL changes only
// when a new one is supplied; a replaced image is released best-effort.
// Existence is checked before ownership.
func (s *PostService) Update(ctx context.Context, caller identity.Context, id string, req model.PostRequest) (model.PostResponse, error) {
	if !caller.Authenticated {
		return model.PostResponse{}, apperr.Unauthenticated("not authenticated")
	}

	row, err := s.posts.GetByIDWithCreator(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return model.PostResponse{}, apperr.NotFound("no post found")
		}
		return model.PostResponse{}, apperr.Unexpected(err)
	}

	if row.Post.Creator.Hex() != caller.UserID {
		return model.PostResponse{}, apperr.Forbidden("not authorized")
	}

	if violations := validatePostInput(req); len(violations) > 0 {
		return model.PostResponse{}, apperr.Validation(violations)
	}

	post := row.Post
	post.Title = req.Title
	post.Content = req.Content

	oldImage := post.ImageURL
	replaced := req.ImageURL != "" && req.ImageURL != oldImage
	if replaced {
		post.ImageURL = req.ImageURL
	}

	if err := s.posts.Update(ctx, &post); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return model.PostResponse{}, apperr.NotFound("no post found")
		}
		return model.PostResponse{}, apperr.Unexpected(err)
	}

	if replaced {
		s.media.Release(ctx, oldImage)
	}

	return model.NewPostResponse(model.PostWithCreator{Post: post, Creator: row.Creator}), nil
}

// Delete removes a post, detaches it from its creator's posts list, and
// releases its stored image. The delete succeeds even when the image
// cannot be removed. Existence is checked before ownership.
func (s *PostService) Delete(ctx context.Context, caller identity.Context, id string) error {
	if !caller.Authenticated {
		return apperr.Unauthenticated("not authenticated")
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return apperr.NotFound("no post found")
		}
		return apperr.Unexpected(err)
	}

	// Same representation on both mutation paths: the stored creator
	// reference compared as its hex form against the caller id.
	if post.Creator.Hex() != caller.UserID {
		return apperr.Forbidden("not authorized")
	}

	s.media.Release(ctx, post.ImageURL)

	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return apperr.NotFound("no post found")
		}
		return apperr.Unexpected(err)
	}

	if err := s.users.PullPost(ctx, caller.UserID, post.ID); err != nil {
		return apperr.Unexpected(err)
	}

	return nil
}
