package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vivahmilan/backend/internal/authz"
	"github.com/vivahmilan/backend/internal/middleware"
	"github.com/vivahmilan/backend/internal/models"
	"github.com/vivahmilan/backend/internal/services"
)

type ProfileHandler struct {
	profiles  *services.ProfileService
	images    services.ImageStore
	maxSizeMB int64
	maxImages int
}

func NewProfileHandler(profiles *services.ProfileService, images services.ImageStore, maxSizeMB int64, maxImages int) *ProfileHandler {
	return &ProfileHandler{
		profiles:  profiles,
		images:    images,
		maxSizeMB: maxSizeMB,
		maxImages: maxImages,
	}
}

// Upsert handles the multipart create-or-update of the caller's own profile,
// with up to maxImages new photos per batch.
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxSizeMB*1024*1024)
	if err := r.ParseMultipartForm(h.maxSizeMB * 1024 * 1024); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("File too large or invalid form data"))
		return
	}

	input := profileInputFromForm(r)
	if err := input.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse(err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	imageURLs, err := h.uploadImages(ctx, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse(err.Error()))
		return
	}

	prof, err := h.profiles.Upsert(ctx, user.ID, input, imageURLs)
	if err != nil {
		log.WithError(err).WithField("user", user.ID.Hex()).Error("[UpsertProfile] failed")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to save profile"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof))
}

// Update is the JSON variant without image upload.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var input models.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if err := input.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse(err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	prof, err := h.profiles.Upsert(ctx, user.ID, &input, nil)
	if err != nil {
		log.WithError(err).WithField("user", user.ID.Hex()).Error("[UpdateProfile] failed")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to save profile"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof))
}

func (h *ProfileHandler) MyProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	prof, err := h.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load profile"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof))
}

func (h *ProfileHandler) Completion(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	prof, err := h.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]bool{"isComplete": false}))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load profile"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]bool{"isComplete": prof.IsCompleted}))
}

// List is role-conditional: admins get the enriched moderation view, members
// get the browsing pool without themselves or any admin-owned profile.
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	if authz.Can(user, authz.ModerateProfiles) {
		views, err := h.profiles.ListForAdmin(ctx)
		if err != nil {
			log.WithError(err).Error("[ListProfiles] admin listing failed")
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list profiles"))
			return
		}
		writeJSON(w, http.StatusOK, models.NewSuccessResponse(views))
		return
	}

	profiles, err := h.profiles.ListForMember(ctx, user.ID)
	if err != nil {
		log.WithError(err).Error("[ListProfiles] member listing failed")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list profiles"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(profiles))
}

func (h *ProfileHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	id, ok := objectIDParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid profile id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	prof, err := h.profiles.GetByID(ctx, id)
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load profile"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof))
}

func (h *ProfileHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid profile id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.profiles.VerifyOwner(ctx, id); err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to verify profile"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Profile verified"}))
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid profile id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.profiles.Delete(ctx, id); err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete profile"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Profile deleted"}))
}

// AdminCreate imports a batch of users with pre-filled profiles.
func (h *ProfileHandler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var reqs []models.AdminCreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if len(reqs) == 0 {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("At least one profile is required"))
		return
	}

	for i := range reqs {
		if errors := reqs[i].Validate(); len(errors) > 0 {
			writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	created := make([]models.User, 0, len(reqs))
	for i := range reqs {
		user, err := h.profiles.AdminCreate(ctx, &reqs[i])
		if err != nil {
			if err == services.ErrEmailExists {
				writeJSON(w, http.StatusConflict, models.NewErrorResponse("Email already registered: "+reqs[i].Email))
				return
			}
			log.WithError(err).WithField("email", reqs[i].Email).Error("[AdminCreate] failed")
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create profile"))
			return
		}
		created = append(created, *user)
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(created))
}

// AdminCreateProfile imports a single user with a pre-filled profile.
func (h *ProfileHandler) AdminCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.AdminCreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	user, err := h.profiles.AdminCreate(ctx, &req)
	if err != nil {
		if err == services.ErrEmailExists {
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Email already registered"))
			return
		}
		log.WithError(err).WithField("email", req.Email).Error("[AdminCreateProfile] failed")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create profile"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(user))
}

// uploadImages stores up to maxImages files from the "images" multipart field
// and returns their public URLs.
func (h *ProfileHandler) uploadImages(ctx context.Context, r *http.Request) ([]string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > h.maxImages {
		files = files[:h.maxImages]
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		contentType := fh.Header.Get("Content-Type")
		if !isValidImageType(contentType) {
			return nil, errInvalidImageType
		}

		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		url, err := h.images.Upload(ctx, "profiles", fh.Filename, contentType, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func profileInputFromForm(r *http.Request) *models.ProfileInput {
	return &models.ProfileInput{
		ProfileFor:       r.FormValue("profile_for"),
		Age:              r.FormValue("age"),
		MaritalStatus:    r.FormValue("marital_status"),
		Gotra:            r.FormValue("gotra"),
		HeightFeet:       r.FormValue("height_feet"),
		HeightInches:     r.FormValue("height_inches"),
		BodyType:         r.FormValue("body_type"),
		Complexion:       r.FormValue("complexion"),
		PhysicalStatus:   r.FormValue("physical_status"),
		Education:        r.FormValue("education"),
		Occupation:       r.FormValue("occupation"),
		OccupationType:   r.FormValue("occupation_type"),
		Income:           r.FormValue("income"),
		FoodPreference:   r.FormValue("food_preference"),
		Smoking:          r.FormValue("smoking"),
		Drinking:         r.FormValue("drinking"),
		Manglik:          r.FormValue("manglik"),
		Rashi:            r.FormValue("rashi"),
		Nakshatra:        r.FormValue("nakshatra"),
		FatherName:       r.FormValue("father_name"),
		MotherName:       r.FormValue("mother_name"),
		FatherOccupation: r.FormValue("father_occupation"),
		MotherOccupation: r.FormValue("mother_occupation"),
		Siblings:         r.FormValue("siblings"),
		FamilyType:       r.FormValue("family_type"),
		Region:           r.FormValue("region"),
		Address:          r.FormValue("address"),
		City:             r.FormValue("city"),
		State:            r.FormValue("state"),
		Hobbies:          formList(r, "hobbies"),
		Languages:        formList(r, "languages"),
		About:            r.FormValue("about"),
	}
}

// formList reads a repeated form field, also accepting a single
// comma-separated value.
func formList(r *http.Request, name string) []string {
	values := r.Form[name]
	if len(values) == 1 && strings.Contains(values[0], ",") {
		values = strings.Split(values[0], ",")
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
