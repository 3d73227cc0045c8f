package leaderboard_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/volunteerhub/internal/app/features/leaderboard"
	"github.com/dalemusser/volunteerhub/internal/testutil"
	"go.uber.org/zap"
)

type listResponse struct {
	Leaderboard []struct {
		Rank       int     `json:"rank"`
		UserID     string  `json:"user_id"`
		Name       string  `json:"name"`
		TotalHours float64 `json:"total_hours"`
	} `json:"leaderboard"`
}

func TestList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := leaderboard.NewHandler(db, 10, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	school := fixtures.CreateSchool(ctx, "North High")
	reviewer := fixtures.CreateAdmin(ctx, "Reviewer", "r@test.com")
	first := fixtures.CreateStudent(ctx, "First Place", "first@test.com", school.ID)
	second := fixtures.CreateStudent(ctx, "Second Place", "second@test.com", school.ID)
	fixtures.CreateApprovedClaim(ctx, first.ID, 30, reviewer.ID)
	fixtures.CreateApprovedClaim(ctx, second.ID, 15, reviewer.ID)
	// Pending hours never count.
	fixtures.CreateClaim(ctx, second.ID, "volunteer", 50, &school.ID)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/leaderboard", testutil.StudentUser(school.ID))
	rec := testutil.NewRecorder()

	h.List(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var resp listResponse
	rec.DecodeJSON(t, &resp)
	if len(resp.Leaderboard) != 2 {
		t.Fatalf("rows: got %d, want 2", len(resp.Leaderboard))
	}
	top := resp.Leaderboard[0]
	if top.Rank != 1 || top.Name != "First Place" || top.TotalHours != 30 {
		t.Errorf("top row: got %+v", top)
	}
	if resp.Leaderboard[1].TotalHours != 15 {
		t.Errorf("second row hours: got %v, want 15", resp.Leaderboard[1].TotalHours)
	}
}

func TestList_Limit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := leaderboard.NewHandler(db, 10, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	school := fixtures.CreateSchool(ctx, "North High")
	reviewer := fixtures.CreateAdmin(ctx, "Reviewer", "r@test.com")
	for i, hours := range []float64{30, 20, 10} {
		u := fixtures.CreateStudent(ctx, "Student", "s"+string(rune('a'+i))+"@test.com", school.ID)
		fixtures.CreateApprovedClaim(ctx, u.ID, hours, reviewer.ID)
	}

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/leaderboard?limit=2", testutil.StudentUser(school.ID))
	rec := testutil.NewRecorder()

	h.List(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var resp listResponse
	rec.DecodeJSON(t, &resp)
	if len(resp.Leaderboard) != 2 {
		t.Errorf("rows: got %d, want 2", len(resp.Leaderboard))
	}
}

func TestList_BadLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := leaderboard.NewHandler(db, 10, zap.NewNop())

	for _, q := range []string{"limit=0", "limit=-3", "limit=ten"} {
		req := testutil.NewAuthenticatedRequest(http.MethodGet, "/leaderboard?"+q, testutil.AdminUser())
		rec := testutil.NewRecorder()

		h.List(rec.ResponseRecorder, req)
		rec.AssertStatus(t, http.StatusBadRequest)
	}
}
