package service

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inkpost/inkpost-go/internal/model"
	"github.com/inkpost/inkpost-go/internal/repository"
)

// memUserStore is an in-memory UserStore for service tests.
type memUserStore struct {
	users map[string]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*model.User)}
}

func (s *memUserStore) Create(ctx context.Context, user *model.User) error {
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Posts == nil {
		user.Posts = []primitive.ObjectID{}
	}
	cp := *user
	s.users[user.ID.Hex()] = &cp
	return nil
}

func (s *memUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) UpdateStatus(ctx context.Context, id, status string) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u.Status = status
	cp := *u
	return &cp, nil
}

func (s *memUserStore) PushPost(ctx context.Context, userID string, postID primitive.ObjectID) error {
	u, ok := s.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Posts = append(u.Posts, postID)
	return nil
}

func (s *memUserStore) PullPost(ctx context.Context, userID string, postID primitive.ObjectID) error {
	u, ok := s.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	kept := u.Posts[:0]
	for _, id := range u.Posts {
		if id != postID {
			kept = append(kept, id)
		}
	}
	u.Posts = kept
	return nil
}

// memPostStore is an in-memory PostStore for service tests. Listing mirrors
// the repository contract: newest first, offset/limit applied after sorting.
type memPostStore struct {
	posts []model.Post
	users *memUserStore
}

func newMemPostStore(users *memUserStore) *memPostStore {
	return &memPostStore{users: users}
}

func (s *memPostStore) Create(ctx context.Context, post *model.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	s.posts = append(s.posts, *post)
	return nil
}

func (s *memPostStore) GetByID(ctx context.Context, id string) (*model.Post, error) {
	for _, p := range s.posts {
		if p.ID.Hex() == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, repository.ErrPostNotFound
}

func (s *memPostStore) GetByIDWithCreator(ctx context.Context, id string) (*model.PostWithCreator, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	row := &model.PostWithCreator{Post: *p}
	if u, ok := s.users.users[p.Creator.Hex()]; ok {
		row.Creator = *u
	}
	return row, nil
}

func (s *memPostStore) List(ctx context.Context, offset, limit int) ([]model.PostWithCreator, error) {
	sorted := make([]model.Post, len(s.posts))
	copy(sorted, s.posts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	if offset > len(sorted) {
		offset = len(sorted)
	}
	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}

	rows := make([]model.PostWithCreator, 0, end-offset)
	for _, p := range sorted[offset:end] {
		row := model.PostWithCreator{Post: p}
		if u, ok := s.users.users[p.Creator.Hex()]; ok {
			row.Creator = *u
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *memPostStore) Count(ctx context.Context) (int64, error) {
	return int64(len(s.posts)), nil
}

func (s *memPostStore) Update(ctx context.Context, post *model.Post) error {
	for i, p := range s.posts {
		if p.ID == post.ID {
			s.posts[i] = *post
			return nil
		}
	}
	return repository.ErrPostNotFound
}

func (s *memPostStore) Delete(ctx context.Context, id string) error {
	for i, p := range s.posts {
		if p.ID.Hex() == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return repository.ErrPostNotFound
}

// fakeReleaser records every release request.
type fakeReleaser struct {
	released []string
}

func (f *fakeReleaser) Release(ctx context.Context, path string) {
	if path == "" {
		return
	}
	f.released = append(f.released, path)
}
