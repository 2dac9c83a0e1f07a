package service

import (
	"context"
	"errors"

	"fitsocial/internal/domain"
	"fitsocial/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWeeklyWorkoutNotFound = errors.New("weekly workout not found")
	ErrNotWeeklyWorkoutOwner = errors.New("not the owner of this weekly workout")
)

// WeeklyWorkoutService manages seven-day workout schedules. Creating a plan
// also links it as the creating user's current plan.
type WeeklyWorkoutService interface {
	CreateWeeklyWorkout(ctx context.Context, plan *domain.WeeklyWorkout) (*domain.WeeklyWorkout, error)
	GetWeeklyWorkoutByID(ctx context.Context, planID primitive.ObjectID) (*domain.WeeklyWorkout, error)
	ListWeeklyWorkouts(ctx context.Context) ([]domain.WeeklyWorkout, error)
	UpdateWeeklyWorkout(ctx context.Context, userID primitive.ObjectID, plan *domain.WeeklyWorkout) (*domain.WeeklyWorkout, error)
	DeleteWeeklyWorkout(ctx context.Context, userID, planID primitive.ObjectID) error
	// WorkoutForDay resolves the workout scheduled for the given day index
	// (0 = Monday .. 6 = Sunday). An empty slot or out-of-range index
	// returns (nil, nil).
	WorkoutForDay(ctx context.Context, planID primitive.ObjectID, day int) (*domain.Workout, error)
}

// weeklyWorkoutService implements the WeeklyWorkoutService interface.
type weeklyWorkoutService struct {
	weeklyRepo  repository.WeeklyWorkoutRepository
	workoutRepo repository.WorkoutRepository
	userRepo    repository.UserRepository
}

// NewWeeklyWorkoutService creates a new instance of weeklyWorkoutService.
func NewWeeklyWorkoutService(weeklyRepo repository.WeeklyWorkoutRepository, workoutRepo repository.WorkoutRepository, userRepo repository.UserRepository) WeeklyWorkoutService {
	return &weeklyWorkoutService{
		weeklyRepo:  weeklyRepo,
		workoutRepo: workoutRepo,
		userRepo:    userRepo,
	}
}

func (s *weeklyWorkoutService) CreateWeeklyWorkout(ctx context.Context, plan *domain.WeeklyWorkout) (*domain.WeeklyWorkout, error) {
	if plan.CreatedBy == primitive.NilObjectID {
		return nil, errors.New("weekly workout owner is required")
	}

	planID, err := s.weeklyRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetWeeklyWorkout(ctx, plan.CreatedBy, planID); err != nil {
		return nil, err
	}
	return s.weeklyRepo.GetByID(ctx, planID)
}

func (s *weeklyWorkoutService) GetWeeklyWorkoutByID(ctx context.Context, planID primitive.ObjectID) (*domain.WeeklyWorkout, error) {
	return s.getPlan(ctx, planID)
}

func (s *weeklyWorkoutService) ListWeeklyWorkouts(ctx context.Context) ([]domain.WeeklyWorkout, error) {
	return s.weeklyRepo.List(ctx)
}

// UpdateWeeklyWorkout overwrites the day slots of an existing plan. The
// incoming plan's slots are taken as the full new state.
func (s *weeklyWorkoutService) UpdateWeeklyWorkout(ctx context.Context, userID primitive.ObjectID, plan *domain.WeeklyWorkout) (*domain.WeeklyWorkout, error) {
	existing, err := s.getOwnedPlan(ctx, userID, plan.ID)
	if err != nil {
		return nil, err
	}

	plan.CreatedBy = existing.CreatedBy
	if plan.WeekStartDate.IsZero() {
		plan.WeekStartDate = existing.WeekStartDate
	}

	if err := s.weeklyRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return s.weeklyRepo.GetByID(ctx, plan.ID)
}

func (s *weeklyWorkoutService) DeleteWeeklyWorkout(ctx context.Context, userID, planID primitive.ObjectID) error {
	if _, err := s.getOwnedPlan(ctx, userID, planID); err != nil {
		return err
	}
	return s.weeklyRepo.Delete(ctx, planID)
}

func (s *weeklyWorkoutService) WorkoutForDay(ctx context.Context, planID primitive.ObjectID, day int) (*domain.Workout, error) {
	plan, err := s.getPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	workoutID := plan.WorkoutIDForDay(day)
	if workoutID == nil {
		return nil, nil
	}

	workout, err := s.workoutRepo.GetByID(ctx, *workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Dangling reference; treat as an empty slot.
			return nil, nil
		}
		return nil, err
	}
	return workout, nil
}

func (s *weeklyWorkoutService) getPlan(ctx context.Context, planID primitive.ObjectID) (*domain.WeeklyWorkout, error) {
	plan, err := s.weeklyRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWeeklyWorkoutNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *weeklyWorkoutService) getOwnedPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.WeeklyWorkout, error) {
	plan, err := s.getPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.CreatedBy != userID {
		return nil, ErrNotWeeklyWorkoutOwner
	}
	return plan, nil
}
