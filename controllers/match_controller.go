package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"resonate_server/services"

	"github.com/gorilla/mux"
)

// MatchController handles HTTP requests for match listings
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController creates a new MatchController instance
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

// HandleListMatches returns the user's matches partitioned into
// active/resonance/expired views
func (mc *MatchController) HandleListMatches(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	views, err := mc.MatchService.ListMatches(context.Background(), userID)
	if err != nil {
		log.Println("Error listing matches:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views)
}

// HandleGetMatch returns one match by id
func (mc *MatchController) HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]

	match, err := mc.MatchService.GetMatch(context.Background(), matchID)
	if err != nil {
		log.Println("Error fetching match:", err)
		http.Error(w, "Match not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(match)
}
