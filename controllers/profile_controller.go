package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"resonate_server/models"
	"resonate_server/services"

	"github.com/gorilla/mux"
)

// ProfileController handles HTTP requests for user profiles and photos
type ProfileController struct {
	ProfileService *services.ProfileService
	PhotoService   *services.PhotoService
	EchoService    *services.EchoService
}

// NewProfileController creates a new ProfileController instance
func NewProfileController(profileService *services.ProfileService, photoService *services.PhotoService, echoService *services.EchoService) *ProfileController {
	return &ProfileController{ProfileService: profileService, PhotoService: photoService, EchoService: echoService}
}

// HandleUpsertProfile creates or updates a profile
func (pc *ProfileController) HandleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	stored, err := pc.ProfileService.UpsertProfile(context.Background(), profile)
	if err != nil {
		log.Println("Error storing profile:", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stored)
}

// HandleGetProfile returns a profile by id
func (pc *ProfileController) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	profile, err := pc.ProfileService.GetProfile(context.Background(), userID)
	if err != nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// HandleEchoStatus returns the profile's liveness classification
func (pc *ProfileController) HandleEchoStatus(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	profile, err := pc.ProfileService.GetProfile(context.Background(), userID)
	if err != nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	now := time.Now().UTC()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"userId":              userID,
		"echoStatus":          pc.EchoService.Status(profile.LastRefreshedAt, now),
		"daysUntilExpiration": pc.EchoService.DaysUntilExpiration(profile.LastRefreshedAt, now),
		"discoverable":        pc.EchoService.IsDiscoverable(profile.LastRefreshedAt, now),
	})
}

// HandlePhotoUploadURL issues a presigned upload URL for a profile photo
func (pc *ProfileController) HandlePhotoUploadURL(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID   string `json:"userId"`
		FileType string `json:"fileType"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	url, key, err := pc.PhotoService.GenerateUploadURL(context.Background(), request.UserID, request.FileType)
	if err != nil {
		log.Println("Error presigning upload:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"uploadUrl": url, "key": key})
}

// HandlePhotoConfirm records an uploaded photo and resets the echo clock
func (pc *ProfileController) HandlePhotoConfirm(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"userId"`
		Key    string `json:"key"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" || request.Key == "" {
		http.Error(w, "userId and key are required", http.StatusBadRequest)
		return
	}

	profile, err := pc.PhotoService.ConfirmUpload(context.Background(), request.UserID, request.Key)
	if err != nil {
		log.Println("Error confirming upload:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// HandlePhotoReadURL issues a presigned read URL for a stored photo
func (pc *ProfileController) HandlePhotoReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "key is required", http.StatusBadRequest)
		return
	}

	url, err := pc.PhotoService.GenerateReadURL(context.Background(), key)
	if err != nil {
		log.Println("Error presigning read:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"readUrl": url})
}
