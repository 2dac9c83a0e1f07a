package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fitsocial/internal/domain"
	"fitsocial/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeeklyWorkoutHandler holds the weekly workout service dependency.
type WeeklyWorkoutHandler struct {
	weeklyService service.WeeklyWorkoutService
}

// NewWeeklyWorkoutHandler creates a new WeeklyWorkoutHandler.
func NewWeeklyWorkoutHandler(weeklyService service.WeeklyWorkoutService) *WeeklyWorkoutHandler {
	return &WeeklyWorkoutHandler{weeklyService: weeklyService}
}

// --- DTOs ---

// WeeklyWorkoutRequest carries the seven optional day slots as hex workout IDs.
// The same shape is used for create and update; on update, an omitted day
// clears the slot.
type WeeklyWorkoutRequest struct {
	WeekStartDate *time.Time `json:"weekStartDate"`
	MondayID      *string    `json:"mondayId"`
	TuesdayID     *string    `json:"tuesdayId"`
	WednesdayID   *string    `json:"wednesdayId"`
	ThursdayID    *string    `json:"thursdayId"`
	FridayID      *string    `json:"fridayId"`
	SaturdayID    *string    `json:"saturdayId"`
	SundayID      *string    `json:"sundayId"`
}

func (r *WeeklyWorkoutRequest) toDomain(userID primitive.ObjectID) (*domain.WeeklyWorkout, error) {
	plan := &domain.WeeklyWorkout{CreatedBy: userID}
	if r.WeekStartDate != nil {
		plan.WeekStartDate = *r.WeekStartDate
	}

	days := []struct {
		raw  *string
		slot **primitive.ObjectID
	}{
		{r.MondayID, &plan.MondayID},
		{r.TuesdayID, &plan.TuesdayID},
		{r.WednesdayID, &plan.WednesdayID},
		{r.ThursdayID, &plan.ThursdayID},
		{r.FridayID, &plan.FridayID},
		{r.SaturdayID, &plan.SaturdayID},
		{r.SundayID, &plan.SundayID},
	}
	for _, d := range days {
		if d.raw == nil {
			continue
		}
		id, err := primitive.ObjectIDFromHex(*d.raw)
		if err != nil {
			return nil, fmt.Errorf("invalid workout ID %q", *d.raw)
		}
		*d.slot = &id
	}
	return plan, nil
}

func (h *WeeklyWorkoutHandler) mapWeeklyError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, service.ErrWeeklyWorkoutNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotWeeklyWorkoutOwner):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to "+action)
	}
}

// --- Handler Methods ---

// CreateWeeklyWorkout godoc
// @Summary Create a weekly plan and attach it to the caller's profile
// @Tags WeeklyWorkouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body WeeklyWorkoutRequest true "Day slots"
// @Success 201 {object} domain.WeeklyWorkout
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /weekly-workouts [post]
func (h *WeeklyWorkoutHandler) CreateWeeklyWorkout(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	var req WeeklyWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := req.toDomain(user.ID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.weeklyService.CreateWeeklyWorkout(c.Request.Context(), plan)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create weekly workout")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListWeeklyWorkouts godoc
// @Summary List all weekly plans
// @Tags WeeklyWorkouts
// @Produce json
// @Success 200 {array} domain.WeeklyWorkout
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /weekly-workouts [get]
func (h *WeeklyWorkoutHandler) ListWeeklyWorkouts(c *gin.Context) {
	plans, err := h.weeklyService.ListWeeklyWorkouts(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list weekly workouts")
		return
	}
	if plans == nil {
		plans = []domain.WeeklyWorkout{}
	}
	c.JSON(http.StatusOK, plans)
}

// GetWeeklyWorkout godoc
// @Summary Get a weekly plan by ID
// @Tags WeeklyWorkouts
// @Produce json
// @Param id path string true "Weekly workout ID"
// @Success 200 {object} domain.WeeklyWorkout
// @Failure 404 {object} gin.H "Weekly workout not found"
// @Router /weekly-workouts/{id} [get]
func (h *WeeklyWorkoutHandler) GetWeeklyWorkout(c *gin.Context) {
	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid weekly workout ID format")
		return
	}

	plan, err := h.weeklyService.GetWeeklyWorkoutByID(c.Request.Context(), planID)
	if err != nil {
		h.mapWeeklyError(c, err, "get weekly workout")
		return
	}

	c.JSON(http.StatusOK, plan)
}

// UpdateWeeklyWorkout godoc
// @Summary Replace a weekly plan's day slots (owner only)
// @Tags WeeklyWorkouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Weekly workout ID"
// @Param plan body WeeklyWorkoutRequest true "Day slots"
// @Success 200 {object} domain.WeeklyWorkout
// @Failure 403 {object} gin.H "Not the owner"
// @Failure 404 {object} gin.H "Weekly workout not found"
// @Router /weekly-workouts/{id} [put]
func (h *WeeklyWorkoutHandler) UpdateWeeklyWorkout(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid weekly workout ID format")
		return
	}

	var req WeeklyWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := req.toDomain(user.ID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	plan.ID = planID

	updated, err := h.weeklyService.UpdateWeeklyWorkout(c.Request.Context(), user.ID, plan)
	if err != nil {
		h.mapWeeklyError(c, err, "update weekly workout")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteWeeklyWorkout godoc
// @Summary Delete a weekly plan (owner only)
// @Tags WeeklyWorkouts
// @Security BearerAuth
// @Param id path string true "Weekly workout ID"
// @Success 204 "Deleted"
// @Failure 403 {object} gin.H "Not the owner"
// @Failure 404 {object} gin.H "Weekly workout not found"
// @Router /weekly-workouts/{id} [delete]
func (h *WeeklyWorkoutHandler) DeleteWeeklyWorkout(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid weekly workout ID format")
		return
	}

	if err := h.weeklyService.DeleteWeeklyWorkout(c.Request.Context(), user.ID, planID); err != nil {
		h.mapWeeklyError(c, err, "delete weekly workout")
		return
	}

	c.Status(http.StatusNoContent)
}

// WorkoutForDay godoc
// @Summary Get the workout scheduled on a day of a weekly plan
// @Description Day index 0 is Monday, 6 is Sunday. An empty slot returns null.
// @Tags WeeklyWorkouts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Weekly workout ID"
// @Param day path int true "Day index (0-6)"
// @Success 200 {object} domain.Workout
// @Failure 400 {object} gin.H "Invalid day index"
// @Failure 404 {object} gin.H "Weekly workout not found"
// @Router /weekly-workouts/{id}/day/{day} [get]
func (h *WeeklyWorkoutHandler) WorkoutForDay(c *gin.Context) {
	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid weekly workout ID format")
		return
	}

	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 0 || day >= domain.DaysPerWeek {
		abortWithError(c, http.StatusBadRequest, "Day must be an integer between 0 and 6")
		return
	}

	workout, err := h.weeklyService.WorkoutForDay(c.Request.Context(), planID, day)
	if err != nil {
		h.mapWeeklyError(c, err, "resolve workout for day")
		return
	}

	// nil means the slot is empty; surface that as an explicit null.
	c.JSON(http.StatusOK, workout)
}
