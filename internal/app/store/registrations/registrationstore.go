// internal/app/store/registrations/registrationstore.go
package registrationstore

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

// Store manages event_registrations together with the derived
// registered_count on events. The two writes are ordered so that the
// capacity invariant (registered_count <= max_volunteers) holds from every
// concurrent caller's point of view.
type Store struct {
	c      *mongo.Collection
	events *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:      db.Collection("event_registrations"),
		events: db.Collection("events"),
	}
}

var (
	ErrEventFull         = errors.New("event has no remaining seats")
	ErrAlreadyRegistered = errors.New("user is already registered for this event")
	ErrNotRegistered     = errors.New("user is not registered for this event")
)

// Register creates a registration and claims a seat.
//
// The registration insert relies on the uniq_registrations_event_user index
// to reject duplicates. The seat itself is claimed with a conditional $inc
// filtered on registered_count < max_volunteers: when two callers race for
// the last seat, exactly one update matches. The loser's registration row
// is rolled back before ErrEventFull is returned.
func (s *Store) Register(ctx context.Context, eventID, userID primitive.ObjectID, schoolID *primitive.ObjectID) (models.EventRegistration, error) {
	reg := models.EventRegistration{
		ID:        primitive.NewObjectID(),
		EventID:   eventID,
		UserID:    userID,
		SchoolID:  schoolID,
		CreatedAt: time.Now().UTC(),
	}

	// Event must exist before we insert anything.
	if err := s.events.FindOne(ctx, bson.M{"_id": eventID}).Err(); err != nil {
		return reg, err
	}

	if _, err := s.c.InsertOne(ctx, reg); err != nil {
		if wafflemongo.IsDup(err) {
			return reg, ErrAlreadyRegistered
		}
		return reg, err
	}

	res, err := s.events.UpdateOne(ctx,
		bson.M{
			"_id": eventID,
			"$expr": bson.M{
				"$lt": bson.A{"$registered_count", "$max_volunteers"},
			},
		},
		bson.M{
			"$inc": bson.M{"registered_count": 1},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		// Seat state unknown; release the row so a retry starts clean.
		_, _ = s.c.DeleteOne(ctx, bson.M{"_id": reg.ID})
		return reg, err
	}
	if res.MatchedCount == 0 {
		// No seat left. Roll the registration back.
		_, _ = s.c.DeleteOne(ctx, bson.M{"_id": reg.ID})
		return reg, ErrEventFull
	}

	return reg, nil
}

// Unregister removes the (event, user) registration and releases the seat.
// The decrement is floored at zero so a stray double-delete can never drive
// the derived count negative.
func (s *Store) Unregister(ctx context.Context, eventID, userID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"event_id": eventID, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotRegistered
	}

	_, err = s.events.UpdateOne(ctx,
		bson.M{"_id": eventID, "registered_count": bson.M{"$gt": 0}},
		bson.M{
			"$inc": bson.M{"registered_count": -1},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		})
	return err
}

// IsRegistered reports whether a registration exists for (eventID, userID).
func (s *Store) IsRegistered(ctx context.Context, eventID, userID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"event_id": eventID, "user_id": userID}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}

// ListByEvent returns all registrations for an event.
func (s *Store) ListByEvent(ctx context.Context, eventID primitive.ObjectID) ([]models.EventRegistration, error) {
	cur, err := s.c.Find(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.EventRegistration
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByUser returns all registrations for a user.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.EventRegistration, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.EventRegistration
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByEvent returns the number of registration rows for an event.
// The authoritative seat count for capacity decisions is the event's
// registered_count field; this is for reconciliation and tests.
func (s *Store) CountByEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"event_id": eventID})
}
