package routes

import (
	"resonate_server/controllers"
	"resonate_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for match listings under /api/matches
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewMatchController(matchService)

	matchRouter := r.PathPrefix("/api/matches").Subrouter()
	matchRouter.HandleFunc("/user/{userId}", controller.HandleListMatches).Methods("GET")
	matchRouter.HandleFunc("/{matchId}", controller.HandleGetMatch).Methods("GET")
}
