package routes

import (
	"resonate_server/controllers"
	"resonate_server/services"

	"github.com/gorilla/mux"
)

// RegisterDiscoveryRoutes sets up routes for the candidate feed under /api/discovery
func RegisterDiscoveryRoutes(r *mux.Router, discoveryService *services.DiscoveryService, swipeService *services.SwipeService) {
	controller := controllers.NewDiscoveryController(discoveryService, swipeService)

	discoveryRouter := r.PathPrefix("/api/discovery").Subrouter()
	discoveryRouter.HandleFunc("/feed", controller.HandleFeed).Methods("POST")
	discoveryRouter.HandleFunc("/queue", controller.HandleRefreshQueue).Methods("POST")
}
