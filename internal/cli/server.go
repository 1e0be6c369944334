package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/KonchadaBhuvan/my-pro/internal/auth"
	"github.com/KonchadaBhuvan/my-pro/internal/config"
	"github.com/KonchadaBhuvan/my-pro/internal/database"
	"github.com/KonchadaBhuvan/my-pro/internal/generator"
	"github.com/KonchadaBhuvan/my-pro/internal/middleware"
	"github.com/KonchadaBhuvan/my-pro/internal/quiz"
	"github.com/KonchadaBhuvan/my-pro/internal/session"
)

// NewServeCmd builds the subcommand that runs the HTTP server.
func NewServeCmd(portFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the quiz backend server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *portFlag)
		},
	}
}

func runServer(ctx context.Context, portFlag string) error {
	cfg := config.Load()
	if portFlag != "" {
		cfg.Port = portFlag
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}

	// Drafts live in memory unless Redis is configured, in which case
	// in-flight quizzes survive a restart.
	var draftStore session.DraftStore = session.NewMemoryStore()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		draftStore = session.NewRedisStore(rdb)
		log.Println("Draft store using Redis at", cfg.RedisAddr)
	}

	gen := generator.NewGenerator(cfg)
	attempts := quiz.NewPostgresStore(db)
	drafts := session.NewManager(draftStore, cfg.SecondsPerQuestion)
	service := quiz.NewService(gen, attempts, drafts, cfg.DefaultNumQuestions)

	authHandler := auth.NewHandler(db, cfg.JWTSecret)
	quizHandler := quiz.NewHandler(service)

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.JWTSecret))
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/quiz/topics", quizHandler.GetTopics).Methods("GET")
	protected.HandleFunc("/quiz/generate", quizHandler.GenerateQuiz).Methods("POST")
	protected.HandleFunc("/quiz/submit", quizHandler.SubmitQuiz).Methods("POST")
	protected.HandleFunc("/quiz/attempts", quizHandler.ListAttempts).Methods("GET")
	protected.HandleFunc("/quiz/attempts/{id:[0-9]+}", quizHandler.GetAttempt).Methods("GET")

	protected.HandleFunc("/quiz/draft", quizHandler.GetDraft).Methods("GET")
	protected.HandleFunc("/quiz/draft/topics", quizHandler.ToggleDraftTopic).Methods("POST")
	protected.HandleFunc("/quiz/draft/generate", quizHandler.GenerateDraftQuiz).Methods("POST")
	protected.HandleFunc("/quiz/draft/answer", quizHandler.SelectDraftAnswer).Methods("POST")
	protected.HandleFunc("/quiz/draft/next", quizHandler.NextDraftQuestion).Methods("POST")
	protected.HandleFunc("/quiz/draft/prev", quizHandler.PrevDraftQuestion).Methods("POST")
	protected.HandleFunc("/quiz/draft/submit", quizHandler.SubmitDraft).Methods("POST")
	protected.HandleFunc("/quiz/draft/exit", quizHandler.ExitDraft).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      c.Handler(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // generation calls can take a while
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
