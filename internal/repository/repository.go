package repository

import (
	"context"

	"fitsocial/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data,
// including the session fields stored on the user document.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetBySessionToken(ctx context.Context, token string) (*domain.User, error)
	GetByUpdateToken(ctx context.Context, token string) (*domain.User, error)
	// UpdateSession persists the user's session fields (session token,
	// expiration, update token, last login) in one write. Nil fields are
	// unset on the document so that token and expiration always move
	// together.
	UpdateSession(ctx context.Context, user *domain.User) error
	UpdateProfile(ctx context.Context, user *domain.User) error
	SetWeeklyWorkout(ctx context.Context, userID, weeklyWorkoutID primitive.ObjectID) error
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ExerciseRepository defines the interface for the exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	// GetByIDs returns the catalog entries matching the given IDs, in no
	// particular order. Unknown IDs are simply absent from the result.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
}

// WorkoutRepository defines the interface for workout data.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	List(ctx context.Context) ([]domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// WeeklyWorkoutRepository defines the interface for weekly plan data.
type WeeklyWorkoutRepository interface {
	Create(ctx context.Context, plan *domain.WeeklyWorkout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WeeklyWorkout, error)
	List(ctx context.Context) ([]domain.WeeklyWorkout, error)
	Update(ctx context.Context, plan *domain.WeeklyWorkout) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PostRepository defines the interface for social post data.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
