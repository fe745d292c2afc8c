package handlers

import (
	"net/http"

	"github.com/openfleet/carrental/internal/domain/providers"
)

// 10 MB upload cap
const maxImageSize = 10 << 20

// ImageHandler handles car image uploads
type ImageHandler struct {
	store providers.ImageStore
}

// NewImageHandler creates a new image handler
func NewImageHandler(store providers.ImageStore) *ImageHandler {
	return &ImageHandler{
		store: store,
	}
}

// Upload handles POST /api/admin/images. The multipart field is "image";
// the response carries the durable public URL.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondWithError(w, http.StatusServiceUnavailable, "image storage is not configured")
		return
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		respondWithError(w, http.StatusBadRequest, "image must be JPEG, PNG or WebP")
		return
	}

	url, err := h.store.Put(r.Context(), header.Filename, contentType, file)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"url": url})
}
