package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkpost/inkpost-go/internal/model"
)

var ErrPostNotFound = errors.New("post not found")

// PostRepository handles post persistence operations, including the explicit
// creator join that replaces lazy reference expansion.
type PostRepository struct {
	posts *mongo.Collection
	users *mongo.Collection
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		posts: db.Collection("posts"),
		users: db.Collection("users"),
	}
}

// Create inserts a new post with server-assigned timestamps and sets the
// generated ID on the post struct.
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	res, err := r.posts.InsertOne(ctx, post)
	if err != nil {
		return err
	}

	post.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetByID retrieves a post without its creator joined.
func (r *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPostNotFound
	}

	post := &model.Post{}
	err = r.posts.FindOne(ctx, bson.M{"_id": oid}).Decode(post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// GetByIDWithCreator retrieves a post joined with its author.
func (r *PostRepository) GetByIDWithCreator(ctx context.Context, id string) (*model.PostWithCreator, error) {
	post, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	creator := model.User{}
	err = r.users.FindOne(ctx, bson.M{"_id": post.Creator}).Decode(&creator)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	return &model.PostWithCreator{Post: *post, Creator: creator}, nil
}

// List returns one page of posts, newest first, each joined with its author.
func (r *PostRepository) List(ctx context.Context, offset, limit int) ([]model.PostWithCreator, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cur, err := r.posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []model.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}

	return r.joinCreators(ctx, posts)
}

// Count returns the total number of posts.
func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	return r.posts.CountDocuments(ctx, bson.M{})
}

// Update persists new title, content, and image URL on an existing post.
func (r *PostRepository) Update(ctx context.Context, post *model.Post) error {
	post.UpdatedAt = time.Now().UTC()

	res, err := r.posts.UpdateByID(ctx, post.ID, bson.M{"$set": bson.M{
		"title":      post.Title,
		"content":    post.Content,
		"image_url":  post.ImageURL,
		"updated_at": post.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Delete removes a post document.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPostNotFound
	}

	res, err := r.posts.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// joinCreators fetches the authors for a page of posts in one query and
// composes the view rows.
func (r *PostRepository) joinCreators(ctx context.Context, posts []model.Post) ([]model.PostWithCreator, error) {
	if len(posts) == 0 {
		return []model.PostWithCreator{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(posts))
	seen := make(map[primitive.ObjectID]bool, len(posts))
	for _, p := range posts {
		if !seen[p.Creator] {
			seen[p.Creator] = true
			ids = append(ids, p.Creator)
		}
	}

	cur, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []model.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	joined := make([]model.PostWithCreator, len(posts))
	for i, p := range posts {
		joined[i] = model.PostWithCreator{Post: p, Creator: byID[p.Creator]}
	}
	return joined, nil
}
