// internal/domain/models/badge.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Badge is a milestone unlocked when a user's approved-hour total reaches
// RequiredHours. Badges are static reference data, read in ascending
// RequiredHours order.
type Badge struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"name_ci"` // lowercase, diacritics-stripped
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	RequiredHours float64 `bson:"required_hours" json:"required_hours"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// UserBadge records that a user has earned a badge. Unique per
// (user, badge); created exactly once, never revoked.
type UserBadge struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID  primitive.ObjectID `bson:"user_id" json:"user_id"`
	BadgeID primitive.ObjectID `bson:"badge_id" json:"badge_id"`

	HoursAtAward float64   `bson:"hours_at_award" json:"hours_at_award"`
	AwardedAt    time.Time `bson:"awarded_at" json:"awarded_at"`
}
