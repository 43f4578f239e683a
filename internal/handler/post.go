package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/inkpost/inkpost-go/internal/middleware"
	"github.com/inkpost/inkpost-go/internal/model"
	"github.com/inkpost/inkpost-go/internal/service"
)

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	service *service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{service: svc}
}

// HandleCreate handles POST /api/v1/posts requests.
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	var req model.PostRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Create(r.Context(), caller, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleList handles GET /api/v1/posts requests. The page query parameter
// defaults to 1 when absent or malformed.
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	resp, err := h.service.List(r.Context(), caller, page)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /api/v1/posts/{post_id} requests.
func (h *PostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	resp, err := h.service.Get(r.Context(), caller, chi.URLParam(r, "post_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdate handles PUT /api/v1/posts/{post_id} requests.
func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	var req model.PostRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Update(r.Context(), caller, chi.URLParam(r, "post_id"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /api/v1/posts/{post_id} requests.
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	if err := h.service.Delete(r.Context(), caller, chi.URLParam(r, "post_id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
