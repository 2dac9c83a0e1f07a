package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitsocial/internal/api"
	"fitsocial/internal/config"
	"fitsocial/internal/dining"
	"fitsocial/internal/googleauth"
	"fitsocial/internal/repository/mongo"
	"fitsocial/internal/service"
	"fitsocial/internal/storage"

	"github.com/gin-gonic/gin"
)

// @title FitSocial API
// @version 1.0
// @description API for user accounts, workouts, weekly plans, posts and dining recommendations.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	log.Println("Starting FitSocial server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts"))
		mongo.EnsureWeeklyWorkoutIndexes(ctx, appDB.Collection("weekly_workouts"))
		mongo.EnsurePostIndexes(ctx, appDB.Collection("posts"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	weeklyRepo := mongo.NewMongoWeeklyWorkoutRepository(appDB)
	postRepo := mongo.NewMongoPostRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	verifier := googleVerifier(cfg)
	throttle := service.NewLoginThrottle(cfg.Auth.LoginCooldown, cfg.Auth.ThrottleRetention)
	authService := service.NewAuthService(userRepo, verifier, throttle, cfg.Auth.SessionTTL, cfg.Google.AllowTestBypass)
	userService := service.NewUserService(userRepo)
	exerciseService := service.NewExerciseService(exerciseRepo)
	workoutService := service.NewWorkoutService(workoutRepo, exerciseRepo)
	weeklyService := service.NewWeeklyWorkoutService(weeklyRepo, workoutRepo, userRepo)
	postService := service.NewPostService(postRepo)
	diningService := service.NewDiningService(
		dining.NewMenuClient(cfg.Dining.FeedURL),
		dining.NewRecommender(cfg.OpenAI.APIKey, cfg.OpenAI.Model),
	)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, authService, userService, exerciseService, workoutService, weeklyService, postService, diningService, fileStorage)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

// googleVerifier builds the production ID token verifier from config.
func googleVerifier(cfg config.Config) googleauth.Verifier {
	return googleauth.NewVerifier(cfg.Google.ClientID, "")
}
