package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prescription holds the per-exercise parameters attached to one exercise
// within one workout: reps, sets, and any extra fields the client sends
// (rest seconds, tempo, weight and so on).
type Prescription map[string]interface{}

// NewPrescription builds a prescription from reps, sets and arbitrary extras.
// Extras may not shadow reps or sets.
func NewPrescription(reps, sets int, extra map[string]interface{}) Prescription {
	p := Prescription{}
	for k, v := range extra {
		p[k] = v
	}
	p["reps"] = reps
	p["sets"] = sets
	return p
}

// Workout aggregates an ordered list of exercise references with a parallel
// prescription map keyed by the exercise ID's hex form. Every ID in
// ExerciseIDs has an entry in Plan; the reverse is not enforced.
type Workout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Duration    int                `bson:"duration" json:"duration"` // Minutes
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"`

	ExerciseIDs []primitive.ObjectID    `bson:"exerciseIds" json:"exerciseIds"`
	Plan        map[string]Prescription `bson:"exercisePlan" json:"exercisePlan"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AddExercise inserts the exercise into the ordered list if absent (appending
// at the end, never reordering) and overwrites its prescription entry.
// Calling twice with different reps replaces the entry, it does not
// accumulate.
func (w *Workout) AddExercise(exerciseID primitive.ObjectID, p Prescription) {
	if !w.HasExercise(exerciseID) {
		w.ExerciseIDs = append(w.ExerciseIDs, exerciseID)
	}
	if w.Plan == nil {
		w.Plan = make(map[string]Prescription)
	}
	w.Plan[exerciseID.Hex()] = p
}

// RemoveExercise deletes the exercise from the ordered list and its entry
// from the prescription map. Removing an absent ID is a no-op.
func (w *Workout) RemoveExercise(exerciseID primitive.ObjectID) {
	for i, id := range w.ExerciseIDs {
		if id == exerciseID {
			w.ExerciseIDs = append(w.ExerciseIDs[:i], w.ExerciseIDs[i+1:]...)
			break
		}
	}
	delete(w.Plan, exerciseID.Hex())
}

// HasExercise reports whether the exercise is part of this workout.
func (w *Workout) HasExercise(exerciseID primitive.ObjectID) bool {
	for _, id := range w.ExerciseIDs {
		if id == exerciseID {
			return true
		}
	}
	return false
}
