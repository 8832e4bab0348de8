package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vocabdrill/internal/audio"
	"vocabdrill/internal/catalog"
	"vocabdrill/internal/config"
	"vocabdrill/internal/database"
	"vocabdrill/internal/handlers"
	"vocabdrill/internal/quiz"
	"vocabdrill/internal/repository"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Load the vocabulary catalog
	var cat *catalog.Catalog
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			log.Fatalf("Failed to load catalog: %v", err)
		}
		log.Printf("Catalog loaded from %s (%d entries)", cfg.CatalogPath, cat.Len())
	} else {
		cat = catalog.Builtin()
		log.Printf("Built-in catalog loaded (%d entries)", cat.Len())
	}

	// Initialize repositories
	settingsRepo := repository.NewSettingsRepository(db)
	resultsRepo := repository.NewResultsRepository(db)

	// Initialize the speech sink and quiz engine
	speaker := audio.NewSpeaker(cfg.AudioPath, cfg.SpeechLang)
	engine := quiz.NewEngine(cat, settingsRepo, speaker, nil)

	// Initialize handlers
	quizHandler := handlers.NewQuizHandler(engine, cat, settingsRepo, resultsRepo)

	// Setup routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /quiz/card", quizHandler.GetCard)
	mux.HandleFunc("POST /quiz/answer/meaning", quizHandler.SubmitMeaning)
	mux.HandleFunc("POST /quiz/answer/gender", quizHandler.SubmitGender)
	mux.HandleFunc("POST /quiz/next", quizHandler.Next)
	mux.HandleFunc("POST /quiz/previous", quizHandler.Previous)
	mux.HandleFunc("POST /quiz/reset-score", quizHandler.ResetScore)
	mux.HandleFunc("POST /quiz/session/new", quizHandler.NewSession)
	mux.HandleFunc("POST /quiz/session/retry-missed", quizHandler.RetryMissed)
	mux.HandleFunc("GET /quiz/categories", quizHandler.Categories)
	mux.HandleFunc("POST /quiz/categories/toggle", quizHandler.ToggleCategory)
	mux.HandleFunc("POST /quiz/speak", quizHandler.Speak)
	mux.HandleFunc("GET /quiz/results", quizHandler.Results)

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
