package service

import (
	"context"
	"encoding/json"
	"errors"

	"fitsocial/internal/domain"
	"fitsocial/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrNotWorkoutOwner = errors.New("not the owner of this workout")
)

// DetailedExercise merges a catalog entry with its prescription for one
// workout. It marshals as a single flat JSON object: the exercise's fields
// overlaid with the prescription's reps, sets and extras.
type DetailedExercise struct {
	Exercise     domain.Exercise
	Prescription domain.Prescription
}

func (d DetailedExercise) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(d.Exercise)
	if err != nil {
		return nil, err
	}
	merged := map[string]interface{}{}
	if err := json.Unmarshal(raw, &merged); err != nil {
		return nil, err
	}
	for k, v := range d.Prescription {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// WorkoutUpdate carries the optional fields of a workout edit. Nil fields
// are left unchanged.
type WorkoutUpdate struct {
	Name        *string
	Description *string
	Duration    *int
	ExerciseIDs []primitive.ObjectID
	Plan        map[string]domain.Prescription
}

// WorkoutService manages workouts and their exercise composition. All
// mutations are owner-only; reads are public.
type WorkoutService interface {
	CreateWorkout(ctx context.Context, workout *domain.Workout) (*domain.Workout, error)
	GetWorkoutByID(ctx context.Context, workoutID primitive.ObjectID) (*domain.Workout, error)
	ListWorkouts(ctx context.Context) ([]domain.Workout, error)
	UpdateWorkout(ctx context.Context, userID, workoutID primitive.ObjectID, update WorkoutUpdate) (*domain.Workout, error)
	DeleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) error
	AddExercise(ctx context.Context, userID, workoutID, exerciseID primitive.ObjectID, p domain.Prescription) (*domain.Workout, error)
	RemoveExercise(ctx context.Context, userID, workoutID, exerciseID primitive.ObjectID) (*domain.Workout, error)
	DetailedExercises(ctx context.Context, workoutID primitive.ObjectID) ([]DetailedExercise, error)
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, exerciseRepo repository.ExerciseRepository) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
	}
}

func (s *workoutService) CreateWorkout(ctx context.Context, workout *domain.Workout) (*domain.Workout, error) {
	if workout.Name == "" || workout.Description == "" || workout.Duration <= 0 {
		return nil, ErrValidationFailed
	}
	if workout.CreatedBy == primitive.NilObjectID {
		return nil, errors.New("workout owner is required")
	}

	workoutID, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	return s.workoutRepo.GetByID(ctx, workoutID)
}

func (s *workoutService) GetWorkoutByID(ctx context.Context, workoutID primitive.ObjectID) (*domain.Workout, error) {
	return s.getWorkout(ctx, workoutID)
}

func (s *workoutService) ListWorkouts(ctx context.Context) ([]domain.Workout, error) {
	return s.workoutRepo.List(ctx)
}

func (s *workoutService) UpdateWorkout(ctx context.Context, userID, workoutID primitive.ObjectID, update WorkoutUpdate) (*domain.Workout, error) {
	workout, err := s.getOwnedWorkout(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		workout.Name = *update.Name
	}
	if update.Description != nil {
		workout.Description = *update.Description
	}
	if update.Duration != nil {
		workout.Duration = *update.Duration
	}
	if update.ExerciseIDs != nil {
		workout.ExerciseIDs = update.ExerciseIDs
	}
	if update.Plan != nil {
		workout.Plan = update.Plan
	}

	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) DeleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) error {
	if _, err := s.getOwnedWorkout(ctx, userID, workoutID); err != nil {
		return err
	}
	return s.workoutRepo.Delete(ctx, workoutID)
}

// AddExercise idempotently inserts the exercise into the workout's ordered
// list and upserts its prescription, then persists both together.
func (s *workoutService) AddExercise(ctx context.Context, userID, workoutID, exerciseID primitive.ObjectID, p domain.Prescription) (*domain.Workout, error) {
	workout, err := s.getOwnedWorkout(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}
	if _, err := s.exerciseRepo.GetByID(ctx, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	workout.AddExercise(exerciseID, p)
	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// RemoveExercise drops the exercise from the ordered list and its
// prescription entry in one persisted write. Removing an absent exercise is
// a no-op.
func (s *workoutService) RemoveExercise(ctx context.Context, userID, workoutID, exerciseID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.getOwnedWorkout(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}

	workout.RemoveExercise(exerciseID)
	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// DetailedExercises joins the workout's ordered exercise list against the
// catalog, in list order, merging prescriptions in. IDs with no catalog
// entry are skipped silently.
func (s *workoutService) DetailedExercises(ctx context.Context, workoutID primitive.ObjectID) ([]DetailedExercise, error) {
	workout, err := s.getWorkout(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	exercises, err := s.exerciseRepo.GetByIDs(ctx, workout.ExerciseIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]domain.Exercise, len(exercises))
	for _, ex := range exercises {
		byID[ex.ID] = ex
	}

	detailed := []DetailedExercise{}
	for _, id := range workout.ExerciseIDs {
		ex, ok := byID[id]
		if !ok {
			continue
		}
		detailed = append(detailed, DetailedExercise{
			Exercise:     ex,
			Prescription: workout.Plan[id.Hex()],
		})
	}
	return detailed, nil
}

func (s *workoutService) getWorkout(ctx context.Context, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) getOwnedWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.getWorkout(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	if workout.CreatedBy != userID {
		return nil, ErrNotWorkoutOwner
	}
	return workout, nil
}
