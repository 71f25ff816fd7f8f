// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/tunegen/tunegen/internal/config"
	"github.com/tunegen/tunegen/internal/handlers"
	"github.com/tunegen/tunegen/internal/middleware"
	"github.com/tunegen/tunegen/internal/ratelimit"
	"github.com/tunegen/tunegen/internal/repository"
	"github.com/tunegen/tunegen/internal/services"
	"github.com/tunegen/tunegen/internal/services/lastfm"
	"github.com/tunegen/tunegen/internal/services/vision"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := config.Load()
	logger := services.NewLogger("tunegen")

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	store := repository.NewStore(db)
	if err := store.AutoMigrate(); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Services ---
	lastfmConfig := lastfm.DefaultConfig()
	lastfmConfig.APIKey = cfg.LastFMAPIKey
	lastfmConfig.BaseURL = cfg.LastFMBaseURL
	lastfmConfig.Timeout = cfg.LastFMTimeout

	songClient, err := lastfm.NewClient(lastfmConfig)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Last.fm client: %v", err)
	}

	classifier := vision.NewRandomClassifier()

	recommendationService, err := services.NewRecommendationService(store, songClient, classifier, cfg.SongLimit, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Recommendation Service: %v", err)
	}

	chatService, err := services.NewChatService(store, songClient, cfg.SongLimit, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Chat Service: %v", err)
	}

	// --- Handlers ---
	songHandler := handlers.NewSongHandler(recommendationService)
	chatHandler := handlers.NewChatHandler(chatService)
	pageHandler := handlers.NewPageHandler()

	// --- Router Setup ---
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.MetricsMiddleware)

	limiter := ratelimit.NewMemoryRateLimiter(ratelimit.DefaultConfig())
	defer limiter.Close()
	limited := middleware.RateLimitMiddleware(limiter, "songs")

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK); _, _ = w.Write([]byte("OK")) }).Methods("GET")
	r.HandleFunc("/", pageHandler.ShowIndexPage).Methods("GET")
	r.Handle("/get_mood_songs", limited(http.HandlerFunc(songHandler.GetMoodSongs))).Methods("POST")
	r.Handle("/get_location_songs", limited(http.HandlerFunc(songHandler.GetLocationSongs))).Methods("POST")
	r.Handle("/chat", limited(http.HandlerFunc(chatHandler.HandleChat))).Methods("POST")
	r.HandleFunc("/save_chat", chatHandler.SaveChat).Methods("POST")
	r.HandleFunc("/chat_history", chatHandler.GetHistory).Methods("GET")
	r.HandleFunc("/preferences", songHandler.GetPreferences).Methods("GET")

	// --- Server Configuration ---
	port := ":" + cfg.ServerPort
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("==================================================")
	log.Printf("🎵 TuneGen - Mood & Location Song Recommender")
	log.Printf("==================================================")
	log.Printf("🚀 Server starting on port %s", port)
	log.Printf("🌐 Local access: http://localhost%s", port)
	log.Printf("📊 Metrics: http://localhost%s/metrics", port)
	log.Printf("==================================================")

	// --- Start Server in Goroutine ---
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}
