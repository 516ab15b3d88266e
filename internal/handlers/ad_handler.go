package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vivahmilan/backend/internal/models"
	"github.com/vivahmilan/backend/internal/services"
)

type AdHandler struct {
	ads       *services.AdService
	images    services.ImageStore
	maxSizeMB int64
}

func NewAdHandler(ads *services.AdService, images services.ImageStore, maxSizeMB int64) *AdHandler {
	return &AdHandler{ads: ads, images: images, maxSizeMB: maxSizeMB}
}

// Create accepts a multipart form: title, description, positions, pages plus
// an optional image file.
func (h *AdHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSizeMB*1024*1024)
	if err := r.ParseMultipartForm(h.maxSizeMB * 1024 * 1024); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("File too large or invalid form data"))
		return
	}

	input := &models.AdInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Positions:   formList(r, "positions"),
		Pages:       formList(r, "pages"),
	}
	if errors := input.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	imageURL := ""
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		contentType := header.Header.Get("Content-Type")
		if !isValidImageType(contentType) {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse(errInvalidImageType.Error()))
			return
		}
		imageURL, err = h.images.Upload(ctx, "ads", header.Filename, contentType, file)
		if err != nil {
			log.WithError(err).Error("[CreateAd] image upload failed")
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to upload ad image"))
			return
		}
	}

	ad, err := h.ads.Create(ctx, input, imageURL)
	if err != nil {
		log.WithError(err).Error("[CreateAd] failed")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create ad"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(ad))
}

func (h *AdHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ads, err := h.ads.ListAll(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list ads"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(ads))
}

// ListForPage is public: active ads targeting the requested page.
func (h *AdHandler) ListForPage(w http.ResponseWriter, r *http.Request) {
	page := chi.URLParam(r, "page")
	valid := false
	for _, p := range models.AdPages {
		if p == page {
			valid = true
			break
		}
	}
	if !valid {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Unknown page"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ads, err := h.ads.ListForPage(ctx, page)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list ads"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(ads))
}

func (h *AdHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid ad id"))
		return
	}

	var input models.AdInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := input.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ad, err := h.ads.Update(ctx, id, &input, "")
	if err != nil {
		if err == services.ErrAdNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Ad not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update ad"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(ad))
}

func (h *AdHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid ad id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ad, err := h.ads.Toggle(ctx, id)
	if err != nil {
		if err == services.ErrAdNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Ad not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to toggle ad"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(ad))
}

func (h *AdHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid ad id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.ads.Delete(ctx, id); err != nil {
		if err == services.ErrAdNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Ad not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete ad"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Ad deleted"}))
}
