package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultStatus is assigned to every newly registered user.
const DefaultStatus = "I am new!"

// User is a user document. Password holds the bcrypt hash and is never
// serialized into responses.
type User struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Email     string               `bson:"email"`
	Name      string               `bson:"name"`
	Password  string               `bson:"password"`
	Status    string               `bson:"status"`
	Posts     []primitive.ObjectID `bson:"posts"`
	CreatedAt time.Time            `bson:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at"`
}

// SignupRequest is the JSON body for POST /api/v1/auth/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest is the JSON body for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the signed credential and its subject.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// StatusRequest is the JSON body for PATCH /api/v1/auth/status.
type StatusRequest struct {
	Status string `json:"status"`
}

// UserResponse is user data safe for API responses (no password hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Posts     []string  `json:"posts"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse strips a user document down to its public fields.
func NewUserResponse(u *User) UserResponse {
	posts := make([]string, len(u.Posts))
	for i, id := range u.Posts {
		posts[i] = id.Hex()
	}
	return UserResponse{
		ID:        u.ID.Hex(),
		Email:     u.Email,
		Name:      u.Name,
		Status:    u.Status,
		Posts:     posts,
		CreatedAt: u.CreatedAt,
	}
}
