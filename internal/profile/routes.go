// internal/profile/routes.go

package profile

import (
	"github.com/gorilla/mux"

	"github.com/heartlink-app/heartlink-backend/internal/auth"
)

// RegisterRoutes registers profile routes behind the auth middleware
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/profile").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.GetMyProfile).Methods("GET")
	api.HandleFunc("", handler.UpdateProfile).Methods("PUT")
	api.HandleFunc("/location", handler.UpdateLocation).Methods("PUT")
	api.HandleFunc("/images", handler.UploadImage).Methods("POST")
	api.HandleFunc("/images/{id}", handler.DeleteImage).Methods("DELETE")
}
