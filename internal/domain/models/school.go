// internal/domain/models/school.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// School is a member school. Schools own zero or more users and claims.
type School struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"name_ci"` // lowercase, diacritics-stripped
	City   string             `bson:"city,omitempty" json:"city,omitempty"`
	CityCI string             `bson:"city_ci,omitempty" json:"city_ci,omitempty"`
	State  string             `bson:"state,omitempty" json:"state,omitempty"`

	ContactName  string `bson:"contact_name,omitempty" json:"contact_name,omitempty"`
	ContactEmail string `bson:"contact_email,omitempty" json:"contact_email,omitempty"`

	Status    string    `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
