// internal/app/store/eventassign/eventassignstore.go
package eventassign

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/volunteerhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store manages student-coordinator event assignments. Review authorization
// reads these at decision time, never from a cached snapshot, so revoking
// an assignment takes effect immediately.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("event_assignments")}
}

var ErrDuplicateAssignment = errors.New("student coordinator is already assigned to this event")

// Create inserts a new student-coordinator/event assignment.
// If CreatedAt is zero, it will be set to now (UTC).
func (s *Store) Create(ctx context.Context, a models.EventAssignment) (models.EventAssignment, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	res, err := s.c.InsertOne(ctx, a)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return a, ErrDuplicateAssignment
		}
		return a, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return a, nil
}

// Delete removes the assignment for (userID, eventID).
func (s *Store) Delete(ctx context.Context, userID, eventID primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"user_id": userID, "event_id": eventID})
	return err
}

// EventIDsByUser returns just the event IDs assigned to a student
// coordinator. This is the authorization lookup.
func (s *Store) EventIDsByUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var eventIDs []primitive.ObjectID
	for cur.Next(ctx) {
		var a models.EventAssignment
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		eventIDs = append(eventIDs, a.EventID)
	}
	return eventIDs, cur.Err()
}

// ListByEvent returns all assignments for an event.
func (s *Store) ListByEvent(ctx context.Context, eventID primitive.ObjectID) ([]models.EventAssignment, error) {
	cur, err := s.c.Find(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.EventAssignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Exists checks if an assignment already exists for (userID, eventID).
func (s *Store) Exists(ctx context.Context, userID, eventID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"user_id":  userID,
		"event_id": eventID,
	}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}

// DeleteByUser removes all event assignments for a student coordinator.
// Used when their role changes to something else.
// Returns the number of documents deleted.
func (s *Store) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
