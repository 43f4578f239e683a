package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inkpost/inkpost-go/internal/middleware"
	"github.com/inkpost/inkpost-go/internal/model"
	"github.com/inkpost/inkpost-go/internal/repository"
	"github.com/inkpost/inkpost-go/internal/service"
)

// stubUserStore is just enough persistence for handler round-trip tests.
type stubUserStore struct {
	byID map[string]*model.User
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{byID: make(map[string]*model.User)}
}

func (s *stubUserStore) Create(ctx context.Context, user *model.User) error {
	for _, u := range s.byID {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	user.Posts = []primitive.ObjectID{}
	s.byID[user.ID.Hex()] = user
	return nil
}

func (s *stubUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubUserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUserStore) UpdateStatus(ctx context.Context, id, status string) (*model.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u.Status = status
	return u, nil
}

func (s *stubUserStore) PushPost(ctx context.Context, userID string, postID primitive.ObjectID) error {
	return nil
}

func (s *stubUserStore) PullPost(ctx context.Context, userID string, postID primitive.ObjectID) error {
	return nil
}

func newAuthRouter() http.Handler {
	users := newStubUserStore()
	authSvc := service.NewAuthService(users, "secret", time.Hour)
	userSvc := service.NewUserService(users)
	h := NewAuthHandler(authSvc, userSvc)

	r := chi.NewRouter()
	r.Use(middleware.Identity("secret"))
	r.Post("/api/v1/auth/signup", h.HandleSignup)
	r.Post("/api/v1/auth/login", h.HandleLogin)
	r.Get("/api/v1/auth/me", h.HandleMe)
	r.Patch("/api/v1/auth/status", h.HandleStatus)
	return r
}

func postJSON(r http.Handler, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSignupAndLoginFlow(t *testing.T) {
	r := newAuthRouter()

	rec := postJSON(r, "/api/v1/auth/signup", `{"email":"test@test.com","name":"Test","password":"tester"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d: %s", rec.Code, rec.Body.String())
	}
	raw := rec.Body.String()
	if strings.Contains(raw, "password") {
		t.Error("signup response must not mention the password")
	}
	var user model.UserResponse
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		t.Fatalf("decoding signup body: %v", err)
	}

	rec = postJSON(r, "/api/v1/auth/login", `{"email":"test@test.com","password":"tester"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body.String())
	}
	var login model.LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&login); err != nil {
		t.Fatalf("decoding login body: %v", err)
	}
	if login.UserID != user.ID {
		t.Errorf("login UserID = %q, want %q", login.UserID, user.ID)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	me := httptest.NewRecorder()
	r.ServeHTTP(me, req)
	if me.Code != http.StatusOK {
		t.Fatalf("me status = %d: %s", me.Code, me.Body.String())
	}
	var profile model.UserResponse
	if err := json.NewDecoder(me.Body).Decode(&profile); err != nil {
		t.Fatalf("decoding profile: %v", err)
	}
	if profile.Email != "test@test.com" {
		t.Errorf("profile email = %q", profile.Email)
	}
}

func TestSignupValidationPayload(t *testing.T) {
	r := newAuthRouter()

	rec := postJSON(r, "/api/v1/auth/signup", `{"email":"bad","name":"Test","password":"abc"}`, "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body.String())
	}

	var body errorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Message != "invalid input" {
		t.Errorf("message = %q", body.Message)
	}
	if len(body.Data) != 2 {
		t.Errorf("data = %+v, want both field messages", body.Data)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	r := newAuthRouter()
	postJSON(r, "/api/v1/auth/signup", `{"email":"test@test.com","name":"Test","password":"tester"}`, "")

	rec := postJSON(r, "/api/v1/auth/signup", `{"email":"test@test.com","name":"Other","password":"tester"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
}

func TestMeWithoutTokenIsUnauthorized(t *testing.T) {
	r := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestLoginWrongPasswordStatus(t *testing.T) {
	r := newAuthRouter()
	postJSON(r, "/api/v1/auth/signup", `{"email":"test@test.com","name":"Test","password":"tester"}`, "")

	if rec := postJSON(r, "/api/v1/auth/login", `{"email":"test@test.com","password":"nope!"}`, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d, want 401", rec.Code)
	}
	if rec := postJSON(r, "/api/v1/auth/login", `{"email":"other@test.com","password":"tester"}`, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown email status = %d, want 404", rec.Code)
	}
}
