// internal/domain/exercise.go
package domain

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a catalog entry describing a single movement. Entries are
// created once and then referenced by workouts; there is no update flow.
type Exercise struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	BodyPart  string             `bson:"bodyPart" json:"bodyPart"`   // e.g. "back", "upper legs"
	Target    string             `bson:"target" json:"target"`       // Primary muscle
	Equipment string             `bson:"equipment" json:"equipment"` // e.g. "barbell", "body weight"
	GifURL    string             `bson:"gifUrl" json:"gifUrl"`

	SecondaryMuscles []string `bson:"secondaryMuscles,omitempty" json:"secondaryMuscles"`
	Instructions     []string `bson:"instructions,omitempty" json:"instructions"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// DecodeLegacyList deserializes a JSON-array string from rows imported from
// the old schema, where secondary muscles and instructions were stored as
// serialized text. Malformed or empty input yields an empty list, never an
// error; this leniency applies only at the legacy read boundary.
func DecodeLegacyList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []string{}
	}
	return items
}
