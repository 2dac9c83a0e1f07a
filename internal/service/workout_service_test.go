package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"fitsocial/internal/domain"
	"fitsocial/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockWorkoutRepository struct {
	CreateFunc  func(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByIDFunc func(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	ListFunc    func(ctx context.Context) ([]domain.Workout, error)
	UpdateFunc  func(ctx context.Context, workout *domain.Workout) error
	DeleteFunc  func(ctx context.Context, id primitive.ObjectID) error
}

func (m *mockWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if m.CreateFunc == nil {
		return primitive.NilObjectID, errors.New("unexpected call: Create")
	}
	return m.CreateFunc(ctx, workout)
}

func (m *mockWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	if m.GetByIDFunc == nil {
		return nil, errors.New("unexpected call: GetByID")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *mockWorkoutRepository) List(ctx context.Context) ([]domain.Workout, error) {
	if m.ListFunc == nil {
		return nil, errors.New("unexpected call: List")
	}
	return m.ListFunc(ctx)
}

func (m *mockWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	if m.UpdateFunc == nil {
		return errors.New("unexpected call: Update")
	}
	return m.UpdateFunc(ctx, workout)
}

func (m *mockWorkoutRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if m.DeleteFunc == nil {
		return errors.New("unexpected call: Delete")
	}
	return m.DeleteFunc(ctx, id)
}

type mockExerciseRepository struct {
	CreateFunc   func(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByIDFunc  func(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByIDsFunc func(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error)
	ListFunc     func(ctx context.Context) ([]domain.Exercise, error)
}

func (m *mockExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if m.CreateFunc == nil {
		return primitive.NilObjectID, errors.New("unexpected call: Create")
	}
	return m.CreateFunc(ctx, exercise)
}

func (m *mockExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	if m.GetByIDFunc == nil {
		return nil, errors.New("unexpected call: GetByID")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *mockExerciseRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) {
	if m.GetByIDsFunc == nil {
		return nil, errors.New("unexpected call: GetByIDs")
	}
	return m.GetByIDsFunc(ctx, ids)
}

func (m *mockExerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	if m.ListFunc == nil {
		return nil, errors.New("unexpected call: List")
	}
	return m.ListFunc(ctx)
}

func TestUpdateWorkoutOwnershipEnforced(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	workout := &domain.Workout{
		ID:        primitive.NewObjectID(),
		Name:      "Push Day",
		CreatedBy: owner,
	}
	workoutRepo := &mockWorkoutRepository{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
			return workout, nil
		},
	}
	svc := NewWorkoutService(workoutRepo, &mockExerciseRepository{})

	name := "Stolen"
	_, err := svc.UpdateWorkout(context.Background(), stranger, workout.ID, WorkoutUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotWorkoutOwner)
}

func TestDeleteWorkoutNotFound(t *testing.T) {
	workoutRepo := &mockWorkoutRepository{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewWorkoutService(workoutRepo, &mockExerciseRepository{})

	err := svc.DeleteWorkout(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestAddExerciseUnknownCatalogEntry(t *testing.T) {
	owner := primitive.NewObjectID()
	workout := &domain.Workout{ID: primitive.NewObjectID(), CreatedBy: owner}
	workoutRepo := &mockWorkoutRepository{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
			return workout, nil
		},
	}
	exerciseRepo := &mockExerciseRepository{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewWorkoutService(workoutRepo, exerciseRepo)

	_, err := svc.AddExercise(context.Background(), owner, workout.ID, primitive.NewObjectID(), domain.NewPrescription(10, 3, nil))
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestAddExercisePersistsListAndPlanTogether(t *testing.T) {
	owner := primitive.NewObjectID()
	exerciseID := primitive.NewObjectID()
	workout := &domain.Workout{ID: primitive.NewObjectID(), CreatedBy: owner}

	var persisted *domain.Workout
	workoutRepo := &mockWorkoutRepository{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
			return workout, nil
		},
		UpdateFunc: func(ctx context.Context, w *domain.Workout) error {
			persisted = w
			return nil
		},
	}
	exerciseRepo := &mockExerciseRepository{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
			return &domain.Exercise{ID: id, Name: "Bench Press"}, nil
		},
	}
	svc := NewWorkoutService(workoutRepo, exerciseRepo)

	updated, err := svc.AddExercise(context.Background(), owner, workout.ID, exerciseID, domain.NewPrescription(10, 3, nil))
	require.NoError(t, err)

	require.NotNil(t, persisted)
	assert.Equal(t, []primitive.ObjectID{exerciseID}, persisted.ExerciseIDs)
	assert.Contains(t, persisted.Plan, exerciseID.Hex())
	assert.Same(t, persisted, updated)
}

func TestDetailedExercisesOrderedAndMerged(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	missing := primitive.NewObjectID()

	workout := &domain.Workout{
		ID:          primitive.NewObjectID(),
		ExerciseIDs: []primitive.ObjectID{first, missing, second},
		Plan: map[string]domain.Prescription{
			first.Hex():  domain.NewPrescription(10, 3, nil),
			second.Hex(): domain.NewPrescription(8, 4, map[string]interface{}{"rest_seconds": 60}),
		},
	}
	workoutRepo := &mockWorkoutRepository{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
			return workout, nil
		},
	}
	exerciseRepo := &mockExerciseRepository{
		GetByIDsFunc: func(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) {
			// Returned out of order on purpose; the join restores list order.
			return []domain.Exercise{
				{ID: second, Name: "Squat"},
				{ID: first, Name: "Bench Press"},
			}, nil
		},
	}
	svc := NewWorkoutService(workoutRepo, exerciseRepo)

	detailed, err := svc.DetailedExercises(context.Background(), workout.ID)
	require.NoError(t, err)

	// The ID with no catalog entry is skipped, order follows ExerciseIDs.
	require.Len(t, detailed, 2)
	assert.Equal(t, "Bench Press", detailed[0].Exercise.Name)
	assert.Equal(t, "Squat", detailed[1].Exercise.Name)
	assert.Equal(t, 8, detailed[1].Prescription["reps"])
}

func TestDetailedExerciseMarshalsFlat(t *testing.T) {
	d := DetailedExercise{
		Exercise:     domain.Exercise{ID: primitive.NewObjectID(), Name: "Deadlift", BodyPart: "back"},
		Prescription: domain.NewPrescription(5, 5, map[string]interface{}{"rest_seconds": 180}),
	}

	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var flat map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &flat))

	assert.Equal(t, "Deadlift", flat["name"])
	assert.Equal(t, "back", flat["bodyPart"])
	assert.Equal(t, float64(5), flat["reps"])
	assert.Equal(t, float64(5), flat["sets"])
	assert.Equal(t, float64(180), flat["rest_seconds"])
}
