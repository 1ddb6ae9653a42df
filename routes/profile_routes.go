package routes

import (
	"resonate_server/controllers"
	"resonate_server/services"

	"github.com/gorilla/mux"
)

// RegisterProfileRoutes sets up routes for profiles and photos under /api/profile
func RegisterProfileRoutes(r *mux.Router, profileService *services.ProfileService, photoService *services.PhotoService, echoService *services.EchoService) {
	controller := controllers.NewProfileController(profileService, photoService, echoService)

	profileRouter := r.PathPrefix("/api/profile").Subrouter()
	profileRouter.HandleFunc("", controller.HandleUpsertProfile).Methods("POST")
	profileRouter.HandleFunc("/photo/upload-url", controller.HandlePhotoUploadURL).Methods("POST")
	profileRouter.HandleFunc("/photo/confirm", controller.HandlePhotoConfirm).Methods("POST")
	profileRouter.HandleFunc("/photo/read-url", controller.HandlePhotoReadURL).Methods("GET")
	profileRouter.HandleFunc("/{userId}/echo", controller.HandleEchoStatus).Methods("GET")
	profileRouter.HandleFunc("/{userId}", controller.HandleGetProfile).Methods("GET")
}
