// Package inputval validates closed-set input values from API requests.
//
// These checks run before anything touches the database: unknown claim
// types, decisions, or roles are rejected at the handler boundary.
package inputval

import (
	"strings"

	"github.com/dalemusser/volunteerhub/internal/domain/models"
)

// IsValidClaimType reports whether t is one of the accepted claim types.
// Comparison is case-insensitive; callers should store the lowercased form.
func IsValidClaimType(t string) bool {
	t = strings.ToLower(strings.TrimSpace(t))
	for _, v := range models.ValidClaimTypes {
		if t == v {
			return true
		}
	}
	return false
}

// IsValidDecision reports whether d is "approve" or "reject".
func IsValidDecision(d string) bool {
	d = strings.ToLower(strings.TrimSpace(d))
	return d == models.DecisionApprove || d == models.DecisionReject
}

// IsValidRole reports whether role is one of the accepted user roles.
func IsValidRole(role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	for _, v := range models.ValidRoles {
		if role == v {
			return true
		}
	}
	return false
}

// IsValidClaimStatus reports whether s is a known claim status.
// Used for the ?status= list filter; empty means "no filter" and is the
// caller's business.
func IsValidClaimStatus(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == models.ClaimStatusPending ||
		s == models.ClaimStatusApproved ||
		s == models.ClaimStatusRejected
}

// AllowedClaimTypesList returns the claim types as a comma-separated string
// for error messages.
func AllowedClaimTypesList() string {
	return strings.Join(models.ValidClaimTypes, ", ")
}
