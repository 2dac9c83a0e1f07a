package api

import (
	"net/http"

	"fitsocial/internal/service"
	"fitsocial/internal/storage"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	authService service.AuthService,
	userService service.UserService,
	exerciseService service.ExerciseService,
	workoutService service.WorkoutService,
	weeklyService service.WeeklyWorkoutService,
	postService service.PostService,
	diningService service.DiningService,
	fileStorage storage.FileStorage,
) {
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	workoutHandler := NewWorkoutHandler(workoutService)
	weeklyHandler := NewWeeklyWorkoutHandler(weeklyService)
	postHandler := NewPostHandler(postService)
	diningHandler := NewDiningHandler(diningService)
	gifHandler := NewGifHandler(fileStorage)

	authMiddleware := AuthMiddleware(authService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/google-login", authHandler.GoogleLogin)
			// Exchanges an update token for a fresh session.
			authGroup.POST("/session", authHandler.RenewSession)
		}

		// Public reads: the catalog, workouts, plans and the feed are
		// browsable without an account.
		apiV1.GET("/exercises", exerciseHandler.ListExercises)
		apiV1.GET("/exercises/:id", exerciseHandler.GetExercise)
		apiV1.GET("/workouts", workoutHandler.ListWorkouts)
		apiV1.GET("/workouts/:id", workoutHandler.GetWorkout)
		apiV1.GET("/weekly-workouts", weeklyHandler.ListWeeklyWorkouts)
		apiV1.GET("/weekly-workouts/:id", weeklyHandler.GetWeeklyWorkout)
		apiV1.GET("/posts", postHandler.ListPosts)
		apiV1.GET("/posts/:id", postHandler.GetPost)
		apiV1.GET("/gifs/:id", gifHandler.GetGif)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/me", authHandler.Me)

		userGroup := protected.Group("/users")
		{
			userGroup.GET("", userHandler.ListUsers)
			userGroup.GET("/:id", userHandler.GetUser)
			userGroup.PUT("/:id", userHandler.UpdateUser)
			userGroup.DELETE("/:id", userHandler.DeleteUser)
		}

		protected.POST("/exercises", exerciseHandler.CreateExercise)

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.PUT("/:id", workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:id", workoutHandler.DeleteWorkout)
			workoutGroup.POST("/:id/exercises", workoutHandler.AddExercise)
			workoutGroup.DELETE("/:id/exercises/:exerciseId", workoutHandler.RemoveExercise)
			workoutGroup.GET("/:id/detailed-exercises", workoutHandler.DetailedExercises)
		}

		weeklyGroup := protected.Group("/weekly-workouts")
		{
			weeklyGroup.POST("", weeklyHandler.CreateWeeklyWorkout)
			weeklyGroup.PUT("/:id", weeklyHandler.UpdateWeeklyWorkout)
			weeklyGroup.DELETE("/:id", weeklyHandler.DeleteWeeklyWorkout)
			weeklyGroup.GET("/:id/day/:day", weeklyHandler.WorkoutForDay)
		}

		postGroup := protected.Group("/posts")
		{
			postGroup.POST("", postHandler.CreatePost)
			postGroup.PUT("/:id", postHandler.UpdatePost)
			postGroup.DELETE("/:id", postHandler.DeletePost)
		}

		protected.POST("/dining/top-meals", diningHandler.TopMeals)
		protected.POST("/gifs/upload-url", gifHandler.CreateUploadURL)
		protected.DELETE("/gifs/:id", gifHandler.DeleteGif)
	}
}
