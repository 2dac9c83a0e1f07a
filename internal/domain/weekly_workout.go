// internal/domain/weekly_workout.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DaysPerWeek is the number of day slots in a weekly plan.
const DaysPerWeek = 7

// WeeklyWorkout is a week-long schedule: a start date plus seven optional
// workout references. Day indices are 0-based starting at Monday, in both
// construction and lookup.
type WeeklyWorkout struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedBy     primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	WeekStartDate time.Time          `bson:"weekStartDate" json:"weekStartDate"`

	MondayID    *primitive.ObjectID `bson:"mondayId,omitempty" json:"mondayId,omitempty"`
	TuesdayID   *primitive.ObjectID `bson:"tuesdayId,omitempty" json:"tuesdayId,omitempty"`
	WednesdayID *primitive.ObjectID `bson:"wednesdayId,omitempty" json:"wednesdayId,omitempty"`
	ThursdayID  *primitive.ObjectID `bson:"thursdayId,omitempty" json:"thursdayId,omitempty"`
	FridayID    *primitive.ObjectID `bson:"fridayId,omitempty" json:"fridayId,omitempty"`
	SaturdayID  *primitive.ObjectID `bson:"saturdayId,omitempty" json:"saturdayId,omitempty"`
	SundayID    *primitive.ObjectID `bson:"sundayId,omitempty" json:"sundayId,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// daySlots returns the seven slots in Monday-first order.
func (w *WeeklyWorkout) daySlots() [DaysPerWeek]**primitive.ObjectID {
	return [DaysPerWeek]**primitive.ObjectID{
		&w.MondayID,
		&w.TuesdayID,
		&w.WednesdayID,
		&w.ThursdayID,
		&w.FridayID,
		&w.SaturdayID,
		&w.SundayID,
	}
}

// WorkoutIDForDay returns the workout reference for the given day index
// (0 = Monday .. 6 = Sunday), or nil if the slot is empty. An out-of-range
// index returns nil rather than an error.
func (w *WeeklyWorkout) WorkoutIDForDay(day int) *primitive.ObjectID {
	if day < 0 || day >= DaysPerWeek {
		return nil
	}
	return *w.daySlots()[day]
}

// SetWorkoutForDay assigns (or clears, with nil) the slot for the given day
// index. Out-of-range indices are ignored.
func (w *WeeklyWorkout) SetWorkoutForDay(day int, workoutID *primitive.ObjectID) {
	if day < 0 || day >= DaysPerWeek {
		return
	}
	*w.daySlots()[day] = workoutID
}
