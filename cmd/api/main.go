// cmd/api/main.go
// Main entry point for the application.
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	// Internal packages
	"github.com/heartlink-app/heartlink-backend/internal/auth"
	"github.com/heartlink-app/heartlink-backend/internal/common/database"
	"github.com/heartlink-app/heartlink-backend/internal/config"
	"github.com/heartlink-app/heartlink-backend/internal/discovery"
	"github.com/heartlink-app/heartlink-backend/internal/images"
	"github.com/heartlink-app/heartlink-backend/internal/profile"
)

var startTime = time.Now()

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting Heartlink Dating API")
	log.Println("========================================")

	// 1. Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found (%v), using environment variables", err)
	}

	// 2. Load and validate configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed: ", err)
	}
	log.Println("✅ Configuration loaded")

	// 3. Connect to PostgreSQL
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL: ", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL")

	// 4. Connect to Redis (optional)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable (%v), continuing without it", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis")
		}
	}

	// 5. Run database migrations
	if err := runMigrations(db); err != nil {
		log.Fatal("❌ Failed to run migrations: ", err)
	}
	log.Println("✅ Database migrations completed")

	// 6. Image storage and signed URL resolver
	var uploadService profile.UploadService
	var urlResolver images.Resolver

	if cfg.UseS3 {
		uploadService, err = profile.NewS3UploadService(cfg.S3Bucket, cfg.AWSRegion)
		if err != nil {
			log.Fatal("❌ Failed to init S3 uploads: ", err)
		}
		urlResolver, err = images.NewS3Resolver(cfg.S3Bucket, cfg.AWSRegion, cfg.SignedURLExpiry)
		if err != nil {
			log.Fatal("❌ Failed to init S3 URL resolver: ", err)
		}
		log.Println("✅ Using S3 for image storage (presigned URLs)")
	} else {
		uploadService = profile.NewLocalUploadService(cfg.LocalUploadDir)
		urlResolver = images.NewLocalResolver(cfg.BaseURL + "/uploads")
		log.Println("✅ Using local storage for images")
	}

	// 7. Auth system
	authRepo := auth.NewPostgresRepository(db)
	authService := auth.NewService(authRepo, redisClient, &auth.Config{
		JWTSecret:          cfg.JWTSecret,
		AccessTokenExpiry:  cfg.AccessTokenExpiry,
		RefreshTokenExpiry: cfg.RefreshTokenExpiry,
		BCryptCost:         cfg.BCryptCost,
	})
	authHandler := auth.NewHandler(authService)
	authMiddleware := auth.NewMiddleware(authService)
	log.Println("✅ Auth system initialized")

	// 8. Profile system
	profileRepo := profile.NewPostgresRepository(db)
	profileService := profile.NewService(profileRepo, uploadService, urlResolver)
	profileHandler := profile.NewHandler(profileService)
	log.Println("✅ Profile system initialized")

	// 9. Discovery engine
	discoveryRepo := discovery.NewPostgresRepository(db)
	discoveryService := discovery.NewService(discoveryRepo, urlResolver, cfg.ImageResolveConcurrency)
	discoveryHandler := discovery.NewHandler(discoveryService)
	log.Println("✅ Discovery engine initialized")

	// 10. Routes
	router := mux.NewRouter()

	if !cfg.UseS3 {
		router.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/",
				http.FileServer(http.Dir(cfg.LocalUploadDir))))
	}

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	authHandler.RegisterRoutes(router)
	profile.RegisterRoutes(router, profileHandler, authMiddleware)
	discovery.RegisterRoutes(router, discoveryHandler, authMiddleware)
	log.Println("✅ Routes registered")

	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	// 11. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on http://localhost%s (%s)", srv.Addr, cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server: ", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("⚠️  Shutdown signal received...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown: ", err)
	}

	log.Println("✅ Server exited gracefully")
}

// healthCheck returns server health status
func healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// loggingMiddleware logs all requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		log.Printf("← %s %s [%d] %v", r.Method, r.RequestURI, wrapped.statusCode, time.Since(start))
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// runMigrations executes database migrations
func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		// Users table
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            email VARCHAR(255) UNIQUE NOT NULL,
            username VARCHAR(100) UNIQUE NOT NULL,
            password_hash VARCHAR(255) NOT NULL,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`,

		// Profiles table
		`CREATE TABLE IF NOT EXISTS profiles (
            user_id INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
            description TEXT DEFAULT '',
            gender VARCHAR(10) NOT NULL CHECK (gender IN ('male', 'female')),
            gender_interest VARCHAR(10) NOT NULL CHECK (gender_interest IN ('male', 'female', 'everyone')),
            search_radius_km DOUBLE PRECISION NOT NULL CHECK (search_radius_km > 0),
            birthdate DATE NOT NULL,
            latitude DOUBLE PRECISION,
            longitude DOUBLE PRECISION,
            updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`,

		// Images table
		`CREATE TABLE IF NOT EXISTS images (
            id SERIAL PRIMARY KEY,
            user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            file_key TEXT NOT NULL,
            flag VARCHAR(10) NOT NULL CHECK (flag IN ('profile', 'id')),
            order_id INTEGER DEFAULT 0,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`,

		// Interactions table
		`CREATE TABLE IF NOT EXISTS interactions (
            requester_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            candidate_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            status VARCHAR(10) NOT NULL CHECK (status IN ('approved', 'rejected')),
            candidate_photos_updated BOOLEAN DEFAULT FALSE,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
            PRIMARY KEY (requester_id, candidate_id)
        )`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_profiles_lat_lng ON profiles(latitude, longitude)`,
		`CREATE INDEX IF NOT EXISTS idx_images_user_id ON images(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_images_user_flag ON images(user_id, flag)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_requester ON interactions(requester_id)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_candidate_status ON interactions(candidate_id, status)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d/%d failed: %w", i+1, len(migrations), err)
		}
	}

	return nil
}
