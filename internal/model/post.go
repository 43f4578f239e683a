package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a post document. Creator references the owning user and is
// immutable after creation.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	ImageURL  string             `bson:"image_url,omitempty"`
	Creator   primitive.ObjectID `bson:"creator"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// Creator is the author data embedded in post views.
type Creator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PostWithCreator is the composed view the repository returns: a post joined
// with its author.
type PostWithCreator struct {
	Post    Post
	Creator User
}

// PostRequest is the JSON body for creating or updating a post.
type PostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

// PostResponse is a post with its populated author, safe for API responses.
type PostResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	Creator   Creator   `json:"creator"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostListResponse is one page of the feed plus the overall count.
type PostListResponse struct {
	Posts      []PostResponse `json:"posts"`
	TotalPosts int64          `json:"total_posts"`
}

// NewPostResponse flattens a composed post view into its response shape.
func NewPostResponse(pc PostWithCreator) PostResponse {
	return PostResponse{
		ID:       pc.Post.ID.Hex(),
		Title:    pc.Post.Title,
		Content:  pc.Post.Content,
		ImageURL: pc.Post.ImageURL,
		Creator: Creator{
			ID:   pc.Creator.ID.Hex(),
			Name: pc.Creator.Name,
		},
		CreatedAt: pc.Post.CreatedAt,
		UpdatedAt: pc.Post.UpdatedAt,
	}
}
