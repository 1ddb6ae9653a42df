package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"resonate_server/models"
	"resonate_server/services"

	"github.com/gorilla/mux"
)

// ResonanceController handles HTTP requests for proximity check-ins
type ResonanceController struct {
	ResonanceService *services.ResonanceService
	LocationService  *services.LocationService
}

// NewResonanceController creates a new ResonanceController instance
func NewResonanceController(resonanceService *services.ResonanceService, locationService *services.LocationService) *ResonanceController {
	return &ResonanceController{ResonanceService: resonanceService, LocationService: locationService}
}

// HandleCheckIn runs one check-in attempt for a match
func (rc *ResonanceController) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
		UserID  string `json:"userId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if request.MatchID == "" || request.UserID == "" {
		http.Error(w, "matchId and userId are required", http.StatusBadRequest)
		return
	}

	result, err := rc.ResonanceService.PerformCheckIn(r.Context(), request.MatchID, request.UserID)
	if errors.Is(err, services.ErrCheckInSuperseded) {
		http.Error(w, "Check-in superseded by a newer attempt", http.StatusConflict)
		return
	}
	if err != nil {
		log.Println("Error performing check-in:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// HandleCheckInState returns the current check-in state for a match
func (rc *ResonanceController) HandleCheckInState(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"matchId": matchID,
		"state":   rc.ResonanceService.State(matchID),
	})
}

// HandleReportLocation stores a device position fix and permission state
func (rc *ResonanceController) HandleReportLocation(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID     string  `json:"userId"`
		Permission string  `json:"permission"`
		Latitude   float64 `json:"latitude"`
		Longitude  float64 `json:"longitude"`
		Accuracy   float64 `json:"accuracy"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	loc := models.LiveLocation{
		Latitude:  request.Latitude,
		Longitude: request.Longitude,
		Accuracy:  request.Accuracy,
	}
	if err := rc.LocationService.Report(context.Background(), request.UserID, request.Permission, loc); err != nil {
		log.Println("Error reporting location:", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Location recorded"})
}
