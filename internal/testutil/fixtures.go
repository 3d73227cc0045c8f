package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
// Calling it again on the same request adds to the existing parameters.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateSchool creates a test school with the given name.
func (f *Fixtures) CreateSchool(ctx context.Context, name string) models.School {
	f.t.Helper()

	now := time.Now().UTC()
	school := models.School{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		City:      "Test City",
		CityCI:    text.Fold("Test City"),
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("schools").InsertOne(ctx, school)
	if err != nil {
		f.t.Fatalf("failed to create test school: %v", err)
	}

	return school
}

// CreateUser creates a test user with the given parameters.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role string, schoolID *primitive.ObjectID) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		Role:       role,
		Status:     "active",
		SchoolID:   schoolID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleAdmin, nil)
}

// CreateCoordinator creates a test coordinator in the given school.
func (f *Fixtures) CreateCoordinator(ctx context.Context, fullName, email string, schoolID primitive.ObjectID) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleCoordinator, &schoolID)
}

// CreateStudent creates a test student in the given school.
func (f *Fixtures) CreateStudent(ctx context.Context, fullName, email string, schoolID primitive.ObjectID) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleStudent, &schoolID)
}

// CreateStudentCoordinator creates a test student coordinator in the given school.
func (f *Fixtures) CreateStudentCoordinator(ctx context.Context, fullName, email string, schoolID primitive.ObjectID) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleStudentCoordinator, &schoolID)
}

// CreateVolunteer creates a test volunteer with no school.
func (f *Fixtures) CreateVolunteer(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleVolunteer, nil)
}

// CreateEvent creates a test event owned by the given coordinator.
func (f *Fixtures) CreateEvent(ctx context.Context, title string, coordinatorID primitive.ObjectID, maxVolunteers int) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	event := models.Event{
		ID:            primitive.NewObjectID(),
		Title:         title,
		TitleCI:       text.Fold(title),
		Date:          now.AddDate(0, 0, 7),
		Hours:         4,
		MaxVolunteers: maxVolunteers,
		CoordinatorID: coordinatorID,
		Status:        "active",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := f.db.Collection("events").InsertOne(ctx, event)
	if err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}

	return event
}

// CreateClaim creates a pending claim for the given user.
func (f *Fixtures) CreateClaim(ctx context.Context, userID primitive.ObjectID, claimType string, hours float64, schoolID *primitive.ObjectID) models.Claim {
	f.t.Helper()

	now := time.Now().UTC()
	claim := models.Claim{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		SchoolID:    schoolID,
		ClaimType:   claimType,
		Hours:       hours,
		Description: "Test claim",
		Date:        now.AddDate(0, 0, -1),
		Status:      models.ClaimStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := f.db.Collection("claims").InsertOne(ctx, claim)
	if err != nil {
		f.t.Fatalf("failed to create test claim: %v", err)
	}

	return claim
}

// CreateApprovedClaim creates a claim already approved by the given reviewer.
func (f *Fixtures) CreateApprovedClaim(ctx context.Context, userID primitive.ObjectID, hours float64, reviewerID primitive.ObjectID) models.Claim {
	f.t.Helper()

	now := time.Now().UTC()
	claim := models.Claim{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		ClaimType:    models.ClaimTypeVolunteer,
		Hours:        hours,
		Description:  "Approved test claim",
		Date:         now.AddDate(0, 0, -2),
		Status:       models.ClaimStatusApproved,
		ReviewerID:   &reviewerID,
		ReviewerName: "Test Reviewer",
		ReviewedAt:   &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := f.db.Collection("claims").InsertOne(ctx, claim)
	if err != nil {
		f.t.Fatalf("failed to create approved test claim: %v", err)
	}

	return claim
}

// CreateBadge creates a badge with the given threshold.
func (f *Fixtures) CreateBadge(ctx context.Context, name string, requiredHours float64) models.Badge {
	f.t.Helper()

	badge := models.Badge{
		ID:            primitive.NewObjectID(),
		Name:          name,
		NameCI:        text.Fold(name),
		RequiredHours: requiredHours,
		CreatedAt:     time.Now().UTC(),
	}

	_, err := f.db.Collection("badges").InsertOne(ctx, badge)
	if err != nil {
		f.t.Fatalf("failed to create test badge: %v", err)
	}

	return badge
}

// CreateEventAssignment links a student coordinator to an event.
func (f *Fixtures) CreateEventAssignment(ctx context.Context, userID, eventID, createdByID primitive.ObjectID) models.EventAssignment {
	f.t.Helper()

	assignment := models.EventAssignment{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		EventID:       eventID,
		CreatedAt:     time.Now().UTC(),
		CreatedByID:   createdByID,
		CreatedByName: "Test Creator",
	}

	_, err := f.db.Collection("event_assignments").InsertOne(ctx, assignment)
	if err != nil {
		f.t.Fatalf("failed to create test event assignment: %v", err)
	}

	return assignment
}

// CreateRegistration inserts a registration row directly, without going
// through the capacity-managed store path.
func (f *Fixtures) CreateRegistration(ctx context.Context, eventID, userID primitive.ObjectID) models.EventRegistration {
	f.t.Helper()

	reg := models.EventRegistration{
		ID:        primitive.NewObjectID(),
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("event_registrations").InsertOne(ctx, reg)
	if err != nil {
		f.t.Fatalf("failed to create test registration: %v", err)
	}

	return reg
}
