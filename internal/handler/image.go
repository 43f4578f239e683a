package handler

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/inkpost/inkpost-go/internal/apperr"
	"github.com/inkpost/inkpost-go/internal/middleware"
	"github.com/inkpost/inkpost-go/internal/service"
)

// maxImageSize bounds a single uploaded image.
const maxImageSize = 10 << 20 // 10MB

// imagePrefix is the key namespace for stored post images. Release requests
// outside it are refused so a crafted old_path cannot touch other objects.
const imagePrefix = "images/"

// imageExtensions maps the accepted mime types to stored file extensions.
var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
}

// ImageStore is the object storage surface the image endpoints depend on.
// Implemented by media.Store.
type ImageStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, string, error)
}

// ImageHandler handles image upload and serving. Uploads are stored under a
// generated unique filename; the returned relative path is meant to be fed
// into a subsequent post create or update.
type ImageHandler struct {
	store ImageStore
	media service.ImageReleaser
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(store ImageStore, media service.ImageReleaser) *ImageHandler {
	return &ImageHandler{store: store, media: media}
}

// HandleUpload handles PUT /api/v1/post-image requests. The multipart field
// "image" carries the file; the optional form value "old_path" names a
// previously stored image to release once the new one is in place.
func (h *ImageHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	if !caller.Authenticated {
		writeError(w, apperr.Unauthenticated("not authenticated"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "invalid multipart body"})
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		// The original treats a bodiless upload as a successful no-op.
		writeJSON(w, http.StatusOK, map[string]string{"message": "no file provided"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "could not read file"})
		return
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		writeError(w, apperr.Validation([]apperr.FieldError{
			{Message: "Only PNG and JPEG images are accepted."},
		}))
		return
	}

	key := imagePrefix + uuid.New().String() + ext
	if err := h.store.Upload(r.Context(), key, data, contentType); err != nil {
		writeError(w, apperr.Unexpected(err))
		return
	}

	if oldPath := r.FormValue("old_path"); strings.HasPrefix(oldPath, imagePrefix) {
		h.media.Release(r.Context(), oldPath)
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message":   "file stored",
		"file_path": key,
	})
}

// HandleServe handles GET /images/{name} requests, streaming a stored image.
func (h *ImageHandler) HandleServe(w http.ResponseWriter, r *http.Request) {
	name := path.Base(chi.URLParam(r, "name"))

	data, contentType, err := h.store.Download(r.Context(), imagePrefix+name)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody{Message: "image not found"})
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}
