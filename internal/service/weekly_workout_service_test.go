package service

import (
	"context"
	"errors"
	"testing"

	"fitsocial/internal/domain"
	"fitsocial/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockWeeklyWorkoutRepository struct {
	CreateFunc  func(ctx context.Context, plan *domain.WeeklyWorkout) (primitive.ObjectID, error)
	GetByIDFunc func(ctx context.Context, id primitive.ObjectID) (*domain.WeeklyWorkout, error)
	ListFunc    func(ctx context.Context) ([]domain.WeeklyWorkout, error)
	UpdateFunc  func(ctx context.Context, plan *domain.WeeklyWorkout) error
	DeleteFunc  func(ctx context.Context, id primitive.ObjectID) error
}

func (m *mockWeeklyWorkoutRepository) Create(ctx context.Context, plan *domain.WeeklyWorkout) (primitive.ObjectID, error) {
	if m.CreateFunc == nil {
		return primitive.NilObjectID, errors.New("unexpected call: Create")
	}
	return m.CreateFunc(ctx, plan)
}

func (m *mockWeeklyWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WeeklyWorkout, error) {
	if m.GetByIDFunc == nil {
		return nil, errors.New("unexpected call: GetByID")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *mockWeeklyWorkoutRepository) List(ctx context.Context) ([]domain.WeeklyWorkout, error) {
	if m.ListFunc == nil {
		return nil, errors.New("unexpected call: List")
	}
	return m.ListFunc(ctx)
}

func (m *mockWeeklyWorkoutRepository) Update(ctx context.Context, plan *domain.WeeklyWorkout) error {
	if m.UpdateFunc == nil {
		return errors.New("unexpected call: Update")
	}
	return m.UpdateFunc(ctx, plan)
}

func (m *mockWeeklyWorkoutRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if m.DeleteFunc == nil {
		return errors.New("unexpected call: Delete")
	}
	return m.DeleteFunc(ctx, id)
}

func TestCreateWeeklyWorkoutAttachesToUser(t *testing.T) {
	owner := primitive.NewObjectID()
	planID := primitive.NewObjectID()
	plan := &domain.WeeklyWorkout{CreatedBy: owner}

	var attachedUser, attachedPlan primitive.ObjectID
	weeklyRepo := &mockWeeklyWorkoutRepository{
		CreateFunc: func(ctx context.Context, p *domain.WeeklyWorkout) (primitive.ObjectID, error) {
			return planID, nil
		},
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.WeeklyWorkout, error) {
			plan.ID = id
			return plan, nil
		},
	}
	userRepo := &mockUserRepository{
		SetWeeklyWorkoutFunc: func(ctx context.Context, userID, weeklyWorkoutID primitive.ObjectID) error {
			attachedUser = userID
			attachedPlan = weeklyWorkoutID
			return nil
		},
	}
	svc := NewWeeklyWorkoutService(weeklyRepo, &mockWorkoutRepository{}, userRepo)

	created, err := svc.CreateWeeklyWorkout(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, planID, created.ID)
	assert.Equal(t, owner, attachedUser)
	assert.Equal(t, planID, attachedPlan)
}

func TestWorkoutForDayResolvesSlot(t *testing.T) {
	workoutID := primitive.NewObjectID()
	plan := &domain.WeeklyWorkout{ID: primitive.NewObjectID(), WednesdayID: &workoutID}

	weeklyRepo := &mockWeeklyWorkoutRepository{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.WeeklyWorkout, error) {
			return plan, nil
		},
	}
	workoutRepo := &mockWorkoutRepository{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
			require.Equal(t, workoutID, id)
			return &domain.Workout{ID: id, Name: "Leg Day"}, nil
		},
	}
	svc := NewWeeklyWorkoutService(weeklyRepo, workoutRepo, &mockUserRepository{})

	workout, err := svc.WorkoutForDay(context.Background(), plan.ID, 2)
	require.NoError(t, err)
	require.NotNil(t, workout)
	assert.Equal(t, "Leg Day", workout.Name)
}

func TestWorkoutForDayEmptySlot(t *testing.T) {
	plan := &domain.WeeklyWorkout{ID: primitive.NewObjectID()}
	weeklyRepo := &mockWeeklyWorkoutRepository{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.WeeklyWorkout, error) {
			return plan, nil
		},
	}
	svc := NewWeeklyWorkoutService(weeklyRepo, &mockWorkoutRepository{}, &mockUserRepository{})

	workout, err := svc.WorkoutForDay(context.Background(), plan.ID, 4)
	require.NoError(t, err)
	assert.Nil(t, workout)
}

func TestWorkoutForDayDanglingReference(t *testing.T) {
	deleted := primitive.NewObjectID()
	plan := &domain.WeeklyWorkout{ID: primitive.NewObjectID(), MondayID: &deleted}

	weeklyRepo := &mockWeeklyWorkoutRepository{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.WeeklyWorkout, error) {
			return plan, nil
		},
	}
	workoutRepo := &mockWorkoutRepository{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewWeeklyWorkoutService(weeklyRepo, workoutRepo, &mockUserRepository{})

	workout, err := svc.WorkoutForDay(context.Background(), plan.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, workout)
}

func TestUpdateWeeklyWorkoutOwnershipEnforced(t *testing.T) {
	owner := primitive.NewObjectID()
	plan := &domain.WeeklyWorkout{ID: primitive.NewObjectID(), CreatedBy: owner}

	weeklyRepo := &mockWeeklyWorkoutRepository{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.WeeklyWorkout, error) {
			return plan, nil
		},
	}
	svc := NewWeeklyWorkoutService(weeklyRepo, &mockWorkoutRepository{}, &mockUserRepository{})

	_, err := svc.UpdateWeeklyWorkout(context.Background(), primitive.NewObjectID(), &domain.WeeklyWorkout{ID: plan.ID})
	assert.ErrorIs(t, err, ErrNotWeeklyWorkoutOwner)
}

func TestWorkoutForDayUnknownPlan(t *testing.T) {
	weeklyRepo := &mockWeeklyWorkoutRepository{
		GetByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.WeeklyWorkout, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewWeeklyWorkoutService(weeklyRepo, &mockWorkoutRepository{}, &mockUserRepository{})

	_, err := svc.WorkoutForDay(context.Background(), primitive.NewObjectID(), 0)
	assert.ErrorIs(t, err, ErrWeeklyWorkoutNotFound)
}
