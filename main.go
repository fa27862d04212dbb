package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"aadhaar_insights/analysis"
	"aadhaar_insights/config"
	"aadhaar_insights/gemini"
	"aadhaar_insights/handlers"
	"aadhaar_insights/middleware"
	"aadhaar_insights/store"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Records struct {
		Enrolment   int `json:"enrolment"`
		Demographic int `json:"demographic"`
		Biometric   int `json:"biometric"`
	} `json:"records"`
	Error string `json:"error,omitempty"`
}

func healthCheck(s *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{Status: "ok"}
		response.Records.Enrolment = len(s.Enrolment)
		response.Records.Demographic = len(s.Demographic)
		response.Records.Biometric = len(s.Biometric)

		if len(s.Enrolment) == 0 && len(s.Demographic) == 0 && len(s.Biometric) == 0 {
			response.Status = "degraded"
			response.Error = "No records loaded"
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

func main() {
	startTime := time.Now()
	log.Printf("Starting server initialization at %s", startTime.Format(time.RFC3339))

	port := config.Port()

	// Load the three datasets into memory. Everything downstream reads this
	// store without locking; it is never mutated after this point.
	log.Printf("Loading datasets from %s...", config.DataDir())
	dataStore, err := store.Load(config.DataDir())
	if err != nil {
		log.Fatalf("Failed to load datasets: %v", err)
	}

	// Optional metadata overrides on top of the built-in tables.
	metadata := analysis.DefaultMetadata()
	pincodes := analysis.DefaultPincodeNames()
	languages := analysis.DefaultLanguages()
	if path := config.MetadataFile(); path != "" {
		if err := analysis.LoadMetadataFile(path, metadata, pincodes, languages); err != nil {
			log.Printf("Warning: metadata override not applied: %v", err)
		} else {
			log.Printf("Applied metadata overrides from %s", path)
		}
	}

	analyzer := analysis.New(dataStore,
		analysis.WithMetadata(metadata),
		analysis.WithPincodeNames(pincodes),
		analysis.WithLanguages(languages),
	)

	chatClient := gemini.New(gemini.Config{
		APIKey: config.GeminiAPIKey(),
		Model:  config.GeminiModel(),
	})
	if !chatClient.Enabled() {
		log.Println("GEMINI_API_KEY not set; chat endpoint disabled")
	}

	config.InitCache()
	handlers.Init(dataStore, analyzer, chatClient)

	r := mux.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Requested-With",
			"Origin",
		},
		ExposedHeaders: []string{
			"Content-Length",
			"Content-Type",
			"Content-Disposition",
		},
		MaxAge: 86400,
	})

	r.Use(corsHandler.Handler)
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)

	api := r.PathPrefix("/api/v1").Subrouter()
	registerRoutes(api)
	api.HandleFunc("/health/detailed", healthCheck(dataStore)).Methods("GET")
	log.Println("Routes registered successfully")

	srv := &http.Server{
		Handler:           r,
		Addr:              ":" + port,
		WriteTimeout:      15 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Printf("Starting server on port %s...", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			serverErrors <- err
		}
	}()

	log.Printf("Server is running at http://localhost:%s", port)
	log.Printf("Health check endpoint: http://localhost:%s/api/v1/health", port)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("Shutdown signal received")
	case err := <-serverErrors:
		log.Printf("Server error received: %v", err)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	} else {
		log.Println("Server shutdown completed successfully")
	}
}

func registerRoutes(api *mux.Router) {
	// Summary and analysis routes
	api.HandleFunc("/summary", handlers.GetSummary).Methods("GET", "OPTIONS")
	api.HandleFunc("/idea/{id}", handlers.GetIdea).Methods("GET", "OPTIONS")
	api.HandleFunc("/category/{category}", handlers.GetCategory).Methods("GET", "OPTIONS")
	api.HandleFunc("/region-context/{category}", handlers.GetRegionContext).Methods("GET", "OPTIONS")

	// Dropdown and map routes
	api.HandleFunc("/states", handlers.GetStates).Methods("GET")
	api.HandleFunc("/districts/{state}", handlers.GetDistricts).Methods("GET")
	api.HandleFunc("/centers", handlers.GetCenters).Methods("GET")

	// Export routes
	api.HandleFunc("/export/idea/{id}/csv", handlers.ExportIdeaCSV).Methods("GET")
	api.HandleFunc("/export/idea/{id}/pdf", handlers.ExportIdeaPDF).Methods("GET")
	api.HandleFunc("/export/category/{category}/csv", handlers.ExportCategoryCSV).Methods("GET")
	api.HandleFunc("/export/category/{category}/pdf", handlers.ExportCategoryPDF).Methods("GET")
	api.HandleFunc("/export/report", handlers.ExportFullReport).Methods("GET")

	// Chat route
	api.HandleFunc("/chat", handlers.Chat).Methods("POST", "OPTIONS")

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")
}
