package discovery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/heartlink-app/heartlink-backend/internal/auth"
	"github.com/heartlink-app/heartlink-backend/internal/common/utils"
)

// Handler holds dependencies for discovery endpoints
type Handler struct {
	service Service
}

// NewHandler creates a new discovery handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetCandidates returns the candidate page for the authenticated user.
// Engine errors surface as a generic 500: distance and radius internals are
// never leaked to the client.
func (h *Handler) GetCandidates(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return
	}

	candidates, err := h.service.GetCandidates(r.Context(), userID)
	if err != nil {
		RecordRequest("error")
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RecordRequest("ok")
	utils.RespondWithJSON(w, http.StatusOK, candidates)
}

// Approve records an approve decision on a candidate
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.recordInteraction(w, r, StatusApproved)
}

// Reject records a reject decision on a candidate
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.recordInteraction(w, r, StatusRejected)
}

func (h *Handler) recordInteraction(w http.ResponseWriter, r *http.Request, status string) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return
	}

	vars := mux.Vars(r)
	candidateID, err := strconv.ParseInt(vars["candidateId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid candidate ID")
		return
	}

	if status == StatusApproved {
		err = h.service.ApproveCandidate(r.Context(), userID, candidateID)
	} else {
		err = h.service.RejectCandidate(r.Context(), userID, candidateID)
	}

	if err != nil {
		switch {
		case errors.Is(err, ErrSelfInteraction):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Candidate not found")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Interaction recorded")
}
