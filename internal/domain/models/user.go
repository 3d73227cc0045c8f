// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles form a closed set. Review authorization branches on these values,
// so a new role must be added here and to reviewpolicy together.
const (
	RoleStudent            = "student"
	RoleVolunteer          = "volunteer"
	RoleCoordinator        = "coordinator"
	RoleStudentCoordinator = "student_coordinator"
	RoleAdmin              = "admin"
)

// ValidRoles lists every role the system accepts, for input validation.
var ValidRoles = []string{
	RoleStudent,
	RoleVolunteer,
	RoleCoordinator,
	RoleStudentCoordinator,
	RoleAdmin,
}

// User represents students, volunteers, coordinators, and admins.
//
// NOTE:
//   - Student-coordinator event scoping is not embedded on User.
//     Use the event_assignments collection to discover assigned events.
//   - Users are never deleted, only set to status "disabled".
type User struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FullName   string              `bson:"full_name" json:"full_name"`
	FullNameCI string              `bson:"full_name_ci" json:"full_name_ci"` // lowercase, diacritics-stripped
	Email      string              `bson:"email" json:"email"`
	Role       string              `bson:"role" json:"role"` // student | volunteer | coordinator | student_coordinator | admin
	Status     string              `bson:"status,omitempty" json:"status,omitempty"`
	SchoolID   *primitive.ObjectID `bson:"school_id,omitempty" json:"school_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
