package routes

import (
	"resonate_server/controllers"
	"resonate_server/services"

	"github.com/gorilla/mux"
)

// RegisterResonanceRoutes sets up routes for check-ins under /api/resonance
func RegisterResonanceRoutes(r *mux.Router, resonanceService *services.ResonanceService, locationService *services.LocationService) {
	controller := controllers.NewResonanceController(resonanceService, locationService)

	resonanceRouter := r.PathPrefix("/api/resonance").Subrouter()
	resonanceRouter.HandleFunc("/checkin", controller.HandleCheckIn).Methods("POST")
	resonanceRouter.HandleFunc("/state/{matchId}", controller.HandleCheckInState).Methods("GET")
	resonanceRouter.HandleFunc("/location", controller.HandleReportLocation).Methods("POST")
}
