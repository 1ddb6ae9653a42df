package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"resonate_server/services"
)

// DiscoveryController handles HTTP requests for the candidate feed
type DiscoveryController struct {
	DiscoveryService *services.DiscoveryService
	SwipeService     *services.SwipeService
}

// NewDiscoveryController creates a new DiscoveryController instance
func NewDiscoveryController(discoveryService *services.DiscoveryService, swipeService *services.SwipeService) *DiscoveryController {
	return &DiscoveryController{DiscoveryService: discoveryService, SwipeService: swipeService}
}

// HandleFeed returns filtered candidates without touching the swipe queue
func (dc *DiscoveryController) HandleFeed(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID  string                    `json:"userId"`
		Filters services.DiscoveryFilters `json:"filters"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	candidates, err := dc.DiscoveryService.Candidates(context.Background(), request.UserID, request.Filters)
	if err != nil {
		log.Println("Error building feed:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(candidates)
}

// HandleRefreshQueue rebuilds the user's swipe queue from the feed
func (dc *DiscoveryController) HandleRefreshQueue(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID  string                    `json:"userId"`
		Filters services.DiscoveryFilters `json:"filters"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	candidates, err := dc.DiscoveryService.Candidates(context.Background(), request.UserID, request.Filters)
	if err != nil {
		log.Println("Error building feed:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.UserID)
	}

	state, err := dc.SwipeService.SetQueue(context.Background(), request.UserID, ids)
	if err != nil {
		log.Println("Error setting queue:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"queueSize":    len(state.Queue),
		"currentIndex": state.CurrentIndex,
	})
}
