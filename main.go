package main

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"

	"resonate_server/config"
	"resonate_server/routes"
	"resonate_server/services"
	"resonate_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient(cfg.AWSRegion)
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Initialize Services
	echoService := &services.EchoService{}
	profileService := &services.ProfileService{Dynamo: dynamoService}
	limitService := &services.LimitService{Dynamo: dynamoService}
	matchService := &services.MatchService{Dynamo: dynamoService}
	locationService := &services.LocationService{Dynamo: dynamoService}
	discoveryService := &services.DiscoveryService{Dynamo: dynamoService, Echo: echoService}
	photoService := services.NewPhotoService(services.InitializeS3Client(cfg.AWSRegion), cfg.S3Bucket, dynamoService)

	// The reciprocity policy is the production match rule; a demo seed
	// switches to the random roll.
	var policy services.MatchPolicy = &services.ReciprocityMatchPolicy{Dynamo: dynamoService}
	if cfg.DemoMatchSeed != 0 {
		log.Printf("Using random match policy with seed %d", cfg.DemoMatchSeed)
		policy = &services.RandomMatchPolicy{Rand: rand.New(rand.NewSource(cfg.DemoMatchSeed))}
	}

	swipeService := &services.SwipeService{Dynamo: dynamoService, Matches: matchService, Policy: policy}
	resonanceService := &services.ResonanceService{Matches: matchService, Locations: locationService}

	// Initialize the router
	r := mux.NewRouter()

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}).Methods("GET")

	// Register routes
	routes.RegisterProfileRoutes(r, profileService, photoService, echoService)
	routes.RegisterDiscoveryRoutes(r, discoveryService, swipeService)
	routes.RegisterSwipeRoutes(r, swipeService, limitService)
	routes.RegisterMatchRoutes(r, matchService)
	routes.RegisterResonanceRoutes(r, resonanceService, locationService)

	// Socket.IO server for the live match channel
	socketServer := socket.NewSocketServer(matchService)
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Fatalf("Socket server error: %v", err)
		}
	}()
	defer socketServer.Close()
	r.Handle("/socket.io/", socketServer)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}
