package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"resonate_server/models"
	"resonate_server/services"

	"github.com/gorilla/mux"
)

// SwipeController handles HTTP requests for swipe decisions
type SwipeController struct {
	SwipeService *services.SwipeService
	LimitService *services.LimitService
}

// NewSwipeController creates a new SwipeController instance
func NewSwipeController(swipeService *services.SwipeService, limitService *services.LimitService) *SwipeController {
	return &SwipeController{SwipeService: swipeService, LimitService: limitService}
}

// HandleSwipe processes one swipe action against the user's queue
func (sc *SwipeController) HandleSwipe(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"userId"`
		Action string `json:"action"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Println("Invalid request payload:", err)
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if request.UserID == "" || request.Action == "" {
		http.Error(w, "userId and action are required", http.StatusBadRequest)
		return
	}

	switch request.Action {
	case models.SwipeActionLike, models.SwipeActionNope, models.SwipeActionSuperLike:
	default:
		http.Error(w, "Invalid swipe action", http.StatusBadRequest)
		return
	}

	outcome, err := sc.SwipeService.Swipe(context.Background(), request.UserID, request.Action)
	if err != nil {
		log.Println("Error processing swipe:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(outcome)
}

// HandleRewind undoes the last swipe for a premium user
func (sc *SwipeController) HandleRewind(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"userId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	rewound, undone, err := sc.SwipeService.Rewind(context.Background(), request.UserID)
	if err != nil {
		log.Println("Error processing rewind:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"rewound": rewound,
		"undone":  undone,
	})
}

// HandleGetLimits returns the user's quota state with resets applied
func (sc *SwipeController) HandleGetLimits(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	limits, err := sc.LimitService.GetLimits(context.Background(), userID)
	if err != nil {
		log.Println("Error fetching limits:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(limits)
}
