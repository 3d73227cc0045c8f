package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

The unique indexes here are load-bearing: registration and badge-award
idempotency depend on uniq_registrations_event_user and
uniq_userbadges_user_badge rejecting duplicate inserts.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureSchools(ctx, db); err != nil {
		problems = append(problems, "schools: "+err.Error())
	}
	if err := ensureEvents(ctx, db); err != nil {
		problems = append(problems, "events: "+err.Error())
	}
	if err := ensureRegistrations(ctx, db); err != nil {
		problems = append(problems, "event_registrations: "+err.Error())
	}
	if err := ensureClaims(ctx, db); err != nil {
		problems = append(problems, "claims: "+err.Error())
	}
	if err := ensureBadges(ctx, db); err != nil {
		problems = append(problems, "badges: "+err.Error())
	}
	if err := ensureUserBadges(ctx, db); err != nil {
		problems = append(problems, "user_badges: "+err.Error())
	}
	if err := ensureEventAssignments(ctx, db); err != nil {
		problems = append(problems, "event_assignments: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := false
	bv := false
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 { // E11000 duplicate key error index
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	return false
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	// Load existing indexes once per collection.
	existing := map[string]existingIndex{} // sig -> index
	cur, err := coll.Indexes().List(ctx)
	if err == nil {
		for cur.Next(ctx) {
			var idx existingIndex
			if err := cur.Decode(&idx); err != nil {
				zap.L().Warn("failed to decode existing index",
					zap.String("collection", coll.Name()),
					zap.Error(err))
				continue
			}
			existing[keySig(idx.Key)] = idx
		}
		cur.Close(ctx)
	}

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			desiredUnique = m.Options.Unique
		}
		desiredSig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[desiredSig]; ok {
			if sameBoolPtr(desiredUnique, ex.Unique) {
				continue // same keys, same options: reuse
			}
			// Options mismatch (e.g. upgrading to unique). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isDuplicateKeyErr(err) && desiredUnique != nil && *desiredUnique {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), desiredName))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			}
			continue
		}

		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                             */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Email must be unique across all users (global, cross-school)
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		// Role-scoped school lists (coordinator panes, admin screens)
		{
			Keys: bson.D{
				{Key: "role", Value: 1},
				{Key: "school_id", Value: 1},
				{Key: "full_name_ci", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_users_role_school_fullnameci_id"),
		},
		// Handy single-field lookup
		{
			Keys:    bson.D{{Key: "school_id", Value: 1}},
			Options: options.Index().SetName("idx_users_school"),
		},
	})
}

func ensureSchools(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("schools")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Enforce global uniqueness of school names (case/diacritics folded).
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_schools_nameci"),
		},
	})
}

func ensureEvents(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("events")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Event listings sorted by date
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_events_date_id"),
		},
		// Coordinator's own events
		{
			Keys:    bson.D{{Key: "coordinator_id", Value: 1}},
			Options: options.Index().SetName("idx_events_coordinator"),
		},
	})
}

func ensureRegistrations(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("event_registrations")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One registration per (event, user); backs AlreadyRegistered detection
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_registrations_event_user"),
		},
		// A user's registrations
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_registrations_user"),
		},
	})
}

func ensureClaims(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("claims")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Claimant's own list, with and without status filter
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "status", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_claims_user_status_createdat"),
		},
		// Coordinator pending queue (school-scoped, oldest first)
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "school_id", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().SetName("idx_claims_status_school_createdat"),
		},
		// Student-coordinator pending queue (event-scoped)
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "claim_type", Value: 1},
				{Key: "event_id", Value: 1},
			},
			Options: options.Index().SetName("idx_claims_status_type_event"),
		},
	})
}

func ensureBadges(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("badges")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_badges_nameci"),
		},
		// Threshold-ordered reads
		{
			Keys:    bson.D{{Key: "required_hours", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_badges_requiredhours_id"),
		},
	})
}

func ensureUserBadges(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("user_badges")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One award per (user, badge); backs idempotent badge evaluation
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "badge_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_userbadges_user_badge"),
		},
	})
}

func ensureEventAssignments(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("event_assignments")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One assignment per (student coordinator, event)
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "event_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_eventassign_user_event"),
		},
		// Assignments for one event
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}},
			Options: options.Index().SetName("idx_eventassign_event"),
		},
	})
}
