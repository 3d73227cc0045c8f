// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), name, Mongo ObjectID, and a found flag.
// If no user is present in context or the user ID is malformed, it returns
// "visitor", "", NilObjectID, false. This ensures callers can trust that
// ok=true means a valid, authenticated user with a valid ObjectID.
// The role is normalized to lowercase for consistent comparison.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed for security.
		// This should not happen in normal operation; indicates session corruption.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "admin"
}

// IsCoordinator reports whether the current request's user is a coordinator.
func IsCoordinator(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "coordinator"
}

// IsStudentCoordinator reports whether the current request's user is a student coordinator.
func IsStudentCoordinator(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "student_coordinator"
}

// IsReviewer reports whether the current request's user holds any role that
// can ever review claims. Per-claim scope still goes through reviewpolicy.
func IsReviewer(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	return role == "admin" || role == "coordinator" || role == "student_coordinator"
}

// UserSchoolID returns the current user's school ID as an ObjectID.
// Returns NilObjectID if the user is not logged in or has no school.
func UserSchoolID(r *http.Request) primitive.ObjectID {
	user, ok := auth.CurrentUser(r)
	if !ok || user.SchoolID == "" {
		return primitive.NilObjectID
	}
	oid, err := primitive.ObjectIDFromHex(user.SchoolID)
	if err != nil {
		return primitive.NilObjectID
	}
	return oid
}
