package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a social feed entry. Only the author may modify or delete it.
// A post may optionally share a workout and/or a weekly plan.
type Post struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title           string              `bson:"title" json:"title"`
	Content         string              `bson:"content,omitempty" json:"content,omitempty"`
	CreatedBy       primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	WorkoutID       *primitive.ObjectID `bson:"workoutId,omitempty" json:"workoutId,omitempty"`
	WeeklyWorkoutID *primitive.ObjectID `bson:"weeklyWorkoutId,omitempty" json:"weeklyWorkoutId,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}
