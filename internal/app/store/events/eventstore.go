// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("events")}
}

var (
	ErrBadCapacity = errors.New("max_volunteers must be at least 1")
	ErrBadHours    = errors.New("hours must be greater than 0")
)

// Create inserts a new event with a zero registered count.
func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	if e.MaxVolunteers < 1 {
		return e, ErrBadCapacity
	}
	if e.Hours <= 0 {
		return e, ErrBadHours
	}

	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	e.TitleCI = text.Fold(e.Title)
	e.RegisteredCount = 0
	if e.Status == "" {
		e.Status = "active"
	}

	res, err := s.c.InsertOne(ctx, e)
	if err != nil {
		return e, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		e.ID = oid
	}
	return e, nil
}

// GetByID returns a single event by its _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Event, error) {
	var e models.Event
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	return e, err
}

// Exists reports whether an event with the given _id exists.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}

// List returns events sorted by date ascending, newest-created last for
// same-day events.
func (s *Store) List(ctx context.Context) ([]models.Event, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Event
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByCoordinator returns events owned by the given coordinator.
func (s *Store) ListByCoordinator(ctx context.Context, coordinatorID primitive.ObjectID) ([]models.Event, error) {
	cur, err := s.c.Find(ctx, bson.M{"coordinator_id": coordinatorID},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Event
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
