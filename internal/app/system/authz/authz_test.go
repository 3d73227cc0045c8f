package authz_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/dalemusser/volunteerhub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func requestWithUser(user *auth.SessionUser) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if user == nil {
		return r
	}
	return auth.WithTestUser(r, user)
}

func TestUserCtx(t *testing.T) {
	id := primitive.NewObjectID()

	r := requestWithUser(&auth.SessionUser{ID: id.Hex(), Name: "Ada", Role: "Admin"})
	role, name, userID, ok := authz.UserCtx(r)
	if !ok {
		t.Fatal("expected ok for a valid session user")
	}
	if role != "admin" {
		t.Errorf("role should be lowercased: got %q", role)
	}
	if name != "Ada" || userID != id {
		t.Errorf("identity: got %q %s", name, userID.Hex())
	}
}

func TestUserCtx_FailsClosed(t *testing.T) {
	tests := []struct {
		name string
		user *auth.SessionUser
	}{
		{name: "no session user", user: nil},
		{name: "malformed user id", user: &auth.SessionUser{ID: "not-hex", Role: "admin"}},
		{name: "empty user id", user: &auth.SessionUser{Role: "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, _, userID, ok := authz.UserCtx(requestWithUser(tt.user))
			if ok {
				t.Error("expected ok=false")
			}
			if role != "visitor" {
				t.Errorf("role: got %q, want visitor", role)
			}
			if userID != primitive.NilObjectID {
				t.Errorf("user id should be nil, got %s", userID.Hex())
			}
		})
	}
}

func TestIsReviewer(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	tests := []struct {
		role string
		want bool
	}{
		{"admin", true},
		{"coordinator", true},
		{"student_coordinator", true},
		{"STUDENT_COORDINATOR", true},
		{"student", false},
		{"volunteer", false},
		{"", false},
	}

	for _, tt := range tests {
		r := requestWithUser(&auth.SessionUser{ID: id, Role: tt.role})
		if got := authz.IsReviewer(r); got != tt.want {
			t.Errorf("IsReviewer(%q): got %v, want %v", tt.role, got, tt.want)
		}
	}

	if authz.IsReviewer(requestWithUser(nil)) {
		t.Error("anonymous request should never be a reviewer")
	}
}

func TestUserSchoolID(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	schoolID := primitive.NewObjectID()

	r := requestWithUser(&auth.SessionUser{ID: id, Role: "student", SchoolID: schoolID.Hex()})
	if got := authz.UserSchoolID(r); got != schoolID {
		t.Errorf("school id: got %s, want %s", got.Hex(), schoolID.Hex())
	}

	for name, user := range map[string]*auth.SessionUser{
		"no school":        {ID: id, Role: "volunteer"},
		"malformed school": {ID: id, Role: "student", SchoolID: "junk"},
		"anonymous":        nil,
	} {
		if got := authz.UserSchoolID(requestWithUser(user)); got != primitive.NilObjectID {
			t.Errorf("%s: got %s, want nil", name, got.Hex())
		}
	}
}
