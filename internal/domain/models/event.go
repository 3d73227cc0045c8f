// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a volunteer event with a fixed number of seats.
//
// RegisteredCount is derived from event_registrations and is maintained
// atomically by the registration store; it must never exceed MaxVolunteers.
type Event struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	TitleCI string             `bson:"title_ci" json:"title_ci"` // lowercase, diacritics-stripped

	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Date        time.Time `bson:"date" json:"date"`
	Hours       float64   `bson:"hours" json:"hours"` // hours awarded on completion
	Location    string    `bson:"location,omitempty" json:"location,omitempty"`

	MaxVolunteers   int `bson:"max_volunteers" json:"max_volunteers"`
	RegisteredCount int `bson:"registered_count" json:"registered_count"`

	SchoolID      *primitive.ObjectID `bson:"school_id,omitempty" json:"school_id,omitempty"`
	CoordinatorID primitive.ObjectID  `bson:"coordinator_id" json:"coordinator_id"`

	Status    string    `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// EventRegistration links one user to one event. Unique per (event, user).
type EventRegistration struct {
	ID       primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	EventID  primitive.ObjectID  `bson:"event_id" json:"event_id"`
	UserID   primitive.ObjectID  `bson:"user_id" json:"user_id"`
	SchoolID *primitive.ObjectID `bson:"school_id,omitempty" json:"school_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// EventAssignment links a student coordinator to an event they may review
// event-type claims for. Student coordinators can be assigned to multiple
// events via multiple assignment records.
type EventAssignment struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID  primitive.ObjectID `bson:"user_id" json:"user_id"`
	EventID primitive.ObjectID `bson:"event_id" json:"event_id"`

	// Audit fields
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	CreatedByID   primitive.ObjectID `bson:"created_by_id" json:"created_by_id"`
	CreatedByName string             `bson:"created_by_name" json:"created_by_name"`
}
