package discovery

import (
	"github.com/gorilla/mux"

	"github.com/heartlink-app/heartlink-backend/internal/auth"
)

// RegisterRoutes registers discovery routes behind the auth middleware
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/interaction").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/candidates", handler.GetCandidates).Methods("GET")
	api.HandleFunc("/{candidateId}/approve", handler.Approve).Methods("POST")
	api.HandleFunc("/{candidateId}/reject", handler.Reject).Methods("POST")
}
