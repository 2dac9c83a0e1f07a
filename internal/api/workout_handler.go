package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitsocial/internal/domain"
	"fitsocial/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs ---

type CreateWorkoutRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Duration    int      `json:"duration" binding:"omitempty,min=1"` // Minutes
	ExerciseIDs []string `json:"exerciseIds"`
}

type UpdateWorkoutRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Duration    *int     `json:"duration" binding:"omitempty,min=1"`
	ExerciseIDs []string `json:"exerciseIds"`
}

type AddWorkoutExerciseRequest struct {
	ExerciseID   string              `json:"exerciseId" binding:"required"`
	Prescription domain.Prescription `json:"prescription"`
}

// parseObjectIDs converts hex strings to ObjectIDs, failing on the first bad one.
func parseObjectIDs(raw []string) ([]primitive.ObjectID, error) {
	if raw == nil {
		return nil, nil
	}
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, s := range raw {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, fmt.Errorf("invalid exercise ID %q", s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (h *WorkoutHandler) mapWorkoutError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, service.ErrWorkoutNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotWorkoutOwner):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to "+action)
	}
}

// --- Handler Methods ---

// CreateWorkout godoc
// @Summary Create a workout
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workout body CreateWorkoutRequest true "Workout details"
// @Success 201 {object} domain.Workout
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exerciseIDs, err := parseObjectIDs(req.ExerciseIDs)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	workout := &domain.Workout{
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		CreatedBy:   user.ID,
		ExerciseIDs: exerciseIDs,
	}

	created, err := h.workoutService.CreateWorkout(c.Request.Context(), workout)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, "Name, description and a positive duration are required")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create workout")
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListWorkouts godoc
// @Summary List all workouts
// @Tags Workouts
// @Produce json
// @Success 200 {array} domain.Workout
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	workouts, err := h.workoutService.ListWorkouts(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list workouts")
		return
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	c.JSON(http.StatusOK, workouts)
}

// GetWorkout godoc
// @Summary Get a workout by ID
// @Tags Workouts
// @Produce json
// @Param id path string true "Workout ID"
// @Success 200 {object} domain.Workout
// @Failure 400 {object} gin.H "Invalid ID format"
// @Failure 404 {object} gin.H "Workout not found"
// @Router /workouts/{id} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format")
		return
	}

	workout, err := h.workoutService.GetWorkoutByID(c.Request.Context(), workoutID)
	if err != nil {
		h.mapWorkoutError(c, err, "get workout")
		return
	}

	c.JSON(http.StatusOK, workout)
}

// UpdateWorkout godoc
// @Summary Update a workout (owner only)
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Param workout body UpdateWorkoutRequest true "Fields to update"
// @Success 200 {object} domain.Workout
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Not the owner"
// @Failure 404 {object} gin.H "Workout not found"
// @Router /workouts/{id} [put]
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format")
		return
	}

	var req UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exerciseIDs, err := parseObjectIDs(req.ExerciseIDs)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.workoutService.UpdateWorkout(c.Request.Context(), user.ID, workoutID, service.WorkoutUpdate{
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		ExerciseIDs: exerciseIDs,
	})
	if err != nil {
		h.mapWorkoutError(c, err, "update workout")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteWorkout godoc
// @Summary Delete a workout (owner only)
// @Tags Workouts
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Success 204 "Deleted"
// @Failure 403 {object} gin.H "Not the owner"
// @Failure 404 {object} gin.H "Workout not found"
// @Router /workouts/{id} [delete]
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format")
		return
	}

	if err := h.workoutService.DeleteWorkout(c.Request.Context(), user.ID, workoutID); err != nil {
		h.mapWorkoutError(c, err, "delete workout")
		return
	}

	c.Status(http.StatusNoContent)
}

// AddExercise godoc
// @Summary Add an exercise to a workout with its prescription (owner only)
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Param exercise body AddWorkoutExerciseRequest true "Exercise and prescription"
// @Success 200 {object} domain.Workout
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Not the owner"
// @Failure 404 {object} gin.H "Workout not found"
// @Router /workouts/{id}/exercises [post]
func (h *WorkoutHandler) AddExercise(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format")
		return
	}

	var req AddWorkoutExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}

	updated, err := h.workoutService.AddExercise(c.Request.Context(), user.ID, workoutID, exerciseID, req.Prescription)
	if err != nil {
		h.mapWorkoutError(c, err, "add exercise to workout")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// RemoveExercise godoc
// @Summary Remove an exercise from a workout (owner only)
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Param exerciseId path string true "Exercise ID"
// @Success 200 {object} domain.Workout
// @Failure 403 {object} gin.H "Not the owner"
// @Failure 404 {object} gin.H "Workout not found"
// @Router /workouts/{id}/exercises/{exerciseId} [delete]
func (h *WorkoutHandler) RemoveExercise(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format")
		return
	}

	exerciseID, err := primitive.ObjectIDFromHex(c.Param("exerciseId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}

	updated, err := h.workoutService.RemoveExercise(c.Request.Context(), user.ID, workoutID, exerciseID)
	if err != nil {
		h.mapWorkoutError(c, err, "remove exercise from workout")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DetailedExercises godoc
// @Summary List a workout's exercises with their prescriptions merged in
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Success 200 {array} service.DetailedExercise
// @Failure 404 {object} gin.H "Workout not found"
// @Router /workouts/{id}/detailed-exercises [get]
func (h *WorkoutHandler) DetailedExercises(c *gin.Context) {
	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format")
		return
	}

	detailed, err := h.workoutService.DetailedExercises(c.Request.Context(), workoutID)
	if err != nil {
		h.mapWorkoutError(c, err, "list workout exercises")
		return
	}
	if detailed == nil {
		detailed = []service.DetailedExercise{}
	}

	c.JSON(http.StatusOK, detailed)
}
