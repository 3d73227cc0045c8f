// internal/app/store/badges/badgestore.go
package badgestore

import (
	"context"
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
	c      *mongo.Collection
	earned *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:      db.Collection("badges"),
		earned: db.Collection("user_badges"),
	}
}

// List returns all badges in ascending required_hours order.
func (s *Store) List(ctx context.Context) ([]models.Badge, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "required_hours", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Badge
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EarnedByUser returns the set of badge IDs the user has already earned.
func (s *Store) EarnedByUser(ctx context.Context, userID primitive.ObjectID) (map[primitive.ObjectID]models.UserBadge, error) {
	cur, err := s.earned.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	earned := make(map[primitive.ObjectID]models.UserBadge)
	for cur.Next(ctx) {
		var ub models.UserBadge
		if err := cur.Decode(&ub); err != nil {
			return nil, err
		}
		earned[ub.BadgeID] = ub
	}
	return earned, cur.Err()
}

// Evaluate awards every badge whose threshold the user's approved-hour
// total has reached and which the user does not hold yet, lowest tier
// first. Awarding is idempotent: the uniq_userbadges_user_badge index
// rejects re-awards, and duplicates are skipped rather than failing the
// pass. The return value carries only badges newly awarded by this call.
func (s *Store) Evaluate(ctx context.Context, userID primitive.ObjectID, totalHours float64) ([]models.Badge, error) {
	badges, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	earned, err := s.EarnedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var awarded []models.Badge
	now := time.Now().UTC()
	for _, b := range badges {
		if b.RequiredHours > totalHours {
			// List is sorted ascending; nothing further qualifies.
			break
		}
		if _, has := earned[b.ID]; has {
			continue
		}

		_, err := s.earned.InsertOne(ctx, models.UserBadge{
			ID:           primitive.NewObjectID(),
			UserID:       userID,
			BadgeID:      b.ID,
			HoursAtAward: totalHours,
			AwardedAt:    now,
		})
		if err != nil {
			if wafflemongo.IsDup(err) {
				// A concurrent evaluation got there first. Not ours to report.
				continue
			}
			return awarded, err
		}
		awarded = append(awarded, b)
	}
	return awarded, nil
}

// EnsureDefaults seeds the badge tiers when the collection is empty.
// Badges are static reference data; existing collections are left alone.
func (s *Store) EnsureDefaults(ctx context.Context, tiers []models.Badge) error {
	count, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(tiers))
	for _, b := range tiers {
		b.ID = primitive.NewObjectID()
		b.NameCI = text.Fold(b.Name)
		b.CreatedAt = now
		docs = append(docs, b)
	}
	if len(docs) == 0 {
		return nil
	}
	_, err = s.c.InsertMany(ctx, docs)
	return err
}
