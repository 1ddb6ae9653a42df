package routes

import (
	"resonate_server/controllers"
	"resonate_server/services"

	"github.com/gorilla/mux"
)

// RegisterSwipeRoutes sets up routes for swipe operations under /api/swipe
func RegisterSwipeRoutes(r *mux.Router, swipeService *services.SwipeService, limitService *services.LimitService) {
	controller := controllers.NewSwipeController(swipeService, limitService)

	swipeRouter := r.PathPrefix("/api/swipe").Subrouter()
	swipeRouter.HandleFunc("", controller.HandleSwipe).Methods("POST")
	swipeRouter.HandleFunc("/rewind", controller.HandleRewind).Methods("POST")
	swipeRouter.HandleFunc("/limits/{userId}", controller.HandleGetLimits).Methods("GET")
}
