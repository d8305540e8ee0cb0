package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"magilearn/internal/config"
	"magilearn/internal/database"
	"magilearn/internal/handlers"
	"magilearn/internal/security"
	"magilearn/internal/service"
	"magilearn/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Open the persistence layer: in-memory for demo runs, SQL otherwise
	dataStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer dataStore.Close()

	// Seed the demo account so the dashboard works before the first signup
	if cfg.DemoMode {
		passwordHash, err := security.HashPassword("password")
		if err != nil {
			log.Fatalf("Failed to hash demo password: %v", err)
		}
		if err := store.SeedDemo(dataStore, passwordHash); err != nil {
			log.Printf("Warning: failed to seed demo account: %v", err)
		}
	}

	// Initialize services
	aiService := service.NewAIService(service.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel))
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.EmailDebug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	authService := service.NewAuthService(dataStore, aiService, emailService, cfg.SessionDuration)
	surveyService := service.NewSurveyService(dataStore)
	progressService := service.NewProgressService(dataStore)

	// Initialize handlers
	middleware := handlers.NewMiddleware(authService, dataStore, cfg.DemoMode)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(surveyService, progressService)
	gameHandler := handlers.NewGameHandler(progressService)
	aiHandler := handlers.NewAIHandler(aiService, progressService, dataStore)

	authLimiter := security.NewRateLimiter(10, time.Minute)

	// Setup routes
	mux := http.NewServeMux()

	// Auth routes
	mux.HandleFunc("POST /api/auth/signup", handlers.RateLimit(authLimiter, authHandler.Signup))
	mux.HandleFunc("POST /api/auth/login", handlers.RateLimit(authLimiter, authHandler.Login))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/me", middleware.ResolveUser(authHandler.Me))

	// User routes
	mux.HandleFunc("GET /api/user/current", middleware.ResolveUser(userHandler.Current))
	mux.HandleFunc("POST /api/user/survey", middleware.ResolveUser(userHandler.Survey))
	mux.HandleFunc("GET /api/user/progress", middleware.ResolveUser(userHandler.Progress))
	mux.HandleFunc("GET /api/user/spins", middleware.ResolveUser(userHandler.Spins))
	mux.HandleFunc("POST /api/user/spin", middleware.ResolveUser(userHandler.Spin))
	mux.HandleFunc("GET /api/user/games", middleware.ResolveUser(userHandler.Games))
	mux.HandleFunc("GET /api/user/achievements", middleware.ResolveUser(userHandler.Achievements))
	mux.HandleFunc("POST /api/user/continue-learning", middleware.ResolveUser(userHandler.ContinueLearning))
	mux.HandleFunc("GET /api/user/snapshot", middleware.ResolveUser(userHandler.Snapshot))

	// Game routes
	mux.HandleFunc("GET /api/games", gameHandler.Catalog)
	mux.HandleFunc("POST /api/games/{gameId}/play", middleware.ResolveUser(gameHandler.Play))

	// AI routes
	mux.HandleFunc("GET /api/ai/recommendations", middleware.ResolveUser(middleware.RequireUser(aiHandler.Recommendations)))
	mux.HandleFunc("POST /api/ai/analyze-progress", middleware.ResolveUser(middleware.RequireUser(aiHandler.AnalyzeProgress)))
	mux.HandleFunc("POST /api/ai/adapt-difficulty", middleware.ResolveUser(middleware.RequireUser(aiHandler.AdaptDifficulty)))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(authService)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

// openStore picks the persistence adapter from configuration
func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.DatabaseType == "memory" {
		log.Println("Using in-memory store")
		return store.NewMemoryStore(), nil
	}

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		db.Close()
		return nil, err
	}
	log.Println("Migrations completed successfully")

	return store.NewSQLStore(db), nil
}

// cleanupExpiredSessions periodically removes expired sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Session cleanup failed: %v", err)
		}
	}
}
