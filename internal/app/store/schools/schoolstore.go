// internal/app/store/schools/schoolstore.go
package schoolstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/volunteerhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
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
	return &Store{c: db.Collection("schools")}
}

var ErrDuplicateName = errors.New("a school with this name already exists")

// Create inserts a new school. Name uniqueness is case/diacritics folded
// and enforced by the uniq_schools_nameci index.
func (s *Store) Create(ctx context.Context, school models.School) (models.School, error) {
	now := time.Now().UTC()
	if school.CreatedAt.IsZero() {
		school.CreatedAt = now
	}
	school.UpdatedAt = now
	school.NameCI = text.Fold(school.Name)
	school.CityCI = text.Fold(school.City)
	if school.Status == "" {
		school.Status = "active"
	}

	res, err := s.c.InsertOne(ctx, school)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return school, ErrDuplicateName
		}
		return school, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		school.ID = oid
	}
	return school, nil
}

// GetByID returns a single school by its _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.School, error) {
	var school models.School
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&school)
	return school, err
}

// Exists reports whether a school with the given _id exists.
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

// List returns all schools sorted by folded name.
func (s *Store) List(ctx context.Context) ([]models.School, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.School
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
