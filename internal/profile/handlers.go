//internal/profile/handlers.go

package profile

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/heartlink-app/heartlink-backend/internal/auth"
	"github.com/heartlink-app/heartlink-backend/internal/common/utils"
)

const maxImageUploadSize = 5 << 20 // 5MB

// Handler holds dependencies for profile endpoints
type Handler struct {
	service Service
}

// NewHandler creates a new profile handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetMyProfile returns the authenticated user's profile with resolved image URLs
func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	p, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		if err == ErrProfileNotFound {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	utils.RespondWithData(w, http.StatusOK, p)
}

// UpdateProfile creates or updates the authenticated user's profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	utils.RespondWithData(w, http.StatusOK, p)
}

// UpdateLocation stores the user's current coordinates
func (h *Handler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.UpdateLocation(r.Context(), userID, &req); err != nil {
		if err == ErrProfileNotFound {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update location")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Location updated")
}

// UploadImage accepts a multipart image upload
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxImageUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "File too large or invalid form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	flag := r.FormValue("flag")
	if flag == "" {
		flag = ImageFlagProfile
	}

	orderID := 0
	if v := r.FormValue("order_id"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			orderID = n
		}
	}

	img, err := h.service.AddImage(r.Context(), userID, file, header, flag, orderID)
	if err != nil {
		if err == ErrInvalidImageFlag {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, img)
}

// DeleteImage removes one of the user's images
func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	imageID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid image ID")
		return
	}

	if err := h.service.RemoveImage(r.Context(), userID, imageID); err != nil {
		if err == ErrImageNotFound {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete image")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Image deleted")
}
