// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	// helper: ensure collection exists (with truthful logging) and then validator (if provided)
	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			// DocumentDB or other deployments may not support collMod/validators.
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	// Core collections this app uses
	ensure("users", usersSchema())
	ensure("schools", schoolsSchema())
	ensure("events", eventsSchema())
	ensure("claims", claimsSchema())

	// Registration, award, and assignment collections
	ensure("event_registrations", registrationsSchema())
	ensure("badges", badgesSchema())
	ensure("user_badges", userBadgesSchema())
	ensure("event_assignments", eventAssignmentsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"full_name", "email", "role", "status"},
			"properties": bson.M{
				"full_name":    bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"full_name_ci": bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"email":        bson.M{"bsonType": "string", "minLength": 1},
				"role":         bson.M{"enum": bson.A{"student", "volunteer", "coordinator", "student_coordinator", "admin"}},
				"status":       bson.M{"enum": bson.A{"active", "disabled"}},
				"school_id":    bson.M{"bsonType": bson.A{"objectId", "null"}},
			},
		},
	}
}

func schoolsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "name_ci", "status"},
			"properties": bson.M{
				"name":    bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"name_ci": bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"status":  bson.M{"enum": bson.A{"active", "disabled"}},
			},
		},
	}
}

func eventsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "date", "hours", "max_volunteers", "registered_count", "coordinator_id"},
			"properties": bson.M{
				"title":            bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"hours":            bson.M{"bsonType": bson.A{"double", "int", "long"}, "minimum": 0},
				"max_volunteers":   bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 1},
				"registered_count": bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
				"coordinator_id":   bson.M{"bsonType": "objectId"},
			},
		},
	}
}

func claimsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user_id", "claim_type", "hours", "status"},
			"properties": bson.M{
				"user_id":        bson.M{"bsonType": "objectId"},
				"school_id":      bson.M{"bsonType": bson.A{"objectId", "null"}},
				"claim_type":     bson.M{"enum": bson.A{"event", "donation", "volunteer", "other"}},
				"hours":          bson.M{"bsonType": bson.A{"double", "int", "long"}, "minimum": 0},
				"status":         bson.M{"enum": bson.A{"pending", "approved", "rejected"}},
				"event_id":       bson.M{"bsonType": bson.A{"objectId", "null"}},
				"donation_items": bson.M{"bsonType": bson.A{"int", "long", "null"}, "minimum": 1},
				"reviewer_id":    bson.M{"bsonType": bson.A{"objectId", "null"}},
			},
		},
	}
}

func registrationsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"event_id", "user_id"},
			"properties": bson.M{
				"event_id": bson.M{"bsonType": "objectId"},
				"user_id":  bson.M{"bsonType": "objectId"},
			},
		},
	}
}

func badgesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "name_ci", "required_hours"},
			"properties": bson.M{
				"name":           bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"name_ci":        bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"required_hours": bson.M{"bsonType": bson.A{"double", "int", "long"}, "minimum": 0},
			},
		},
	}
}

func userBadgesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user_id", "badge_id", "awarded_at"},
			"properties": bson.M{
				"user_id":  bson.M{"bsonType": "objectId"},
				"badge_id": bson.M{"bsonType": "objectId"},
			},
		},
	}
}

func eventAssignmentsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user_id", "event_id"},
			"properties": bson.M{
				"user_id":  bson.M{"bsonType": "objectId"},
				"event_id": bson.M{"bsonType": "objectId"},
			},
		},
	}
}
