// internal/app/features/events/types.go
package events

import "github.com/dalemusser/volunteerhub/internal/domain/models"

// createRequest is the body for POST /events.
type createRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Location      string  `json:"location"`
	Date          string  `json:"date"` // YYYY-MM-DD
	Hours         float64 `json:"hours"`
	MaxVolunteers int     `json:"max_volunteers"`
	SchoolID      string  `json:"school_id,omitempty"`
}

// assignRequest is the body for POST /events/{id}/assignments.
type assignRequest struct {
	UserID string `json:"user_id"`
}

// eventView is an event plus the derived seat count.
type eventView struct {
	models.Event
	RemainingSeats int `json:"remaining_seats"`
}

type listResponse struct {
	Events []eventView `json:"events"`
}

type registrationResponse struct {
	Registration models.EventRegistration `json:"registration"`
}

type registrationsListResponse struct {
	Registrations []models.EventRegistration `json:"registrations"`
}

type assignmentResponse struct {
	Assignment models.EventAssignment `json:"assignment"`
}

type assignmentsListResponse struct {
	Assignments []models.EventAssignment `json:"assignments"`
}
