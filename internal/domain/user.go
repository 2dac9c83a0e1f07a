package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in the system. Session state lives directly on
// the user document: SessionToken and SessionExpiration are set and cleared
// together, and a user with neither is logged out. UpdateToken is the
// long-lived renewal credential and is rotated on every renewal.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"` // Unique
	Email        string             `bson:"email" json:"email"`       // Unique
	PasswordHash string             `bson:"passwordHash" json:"-"`    // Never expose this via JSON
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	LastLogin    *time.Time         `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`

	SessionToken      *string    `bson:"sessionToken,omitempty" json:"-"`
	SessionExpiration *time.Time `bson:"sessionExpiration,omitempty" json:"-"`
	UpdateToken       *string    `bson:"updateToken,omitempty" json:"-"`

	// The user's current weekly workout plan, if one has been created.
	WeeklyWorkoutID *primitive.ObjectID `bson:"weeklyWorkoutId,omitempty" json:"weeklyWorkoutId,omitempty"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// HasActiveSession reports whether the user holds a session token that has
// not yet expired at the given instant.
func (u *User) HasActiveSession(now time.Time) bool {
	return u.SessionToken != nil && u.SessionExpiration != nil && u.SessionExpiration.After(now)
}
