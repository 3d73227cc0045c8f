// internal/app/store/queries/hourtotals/hourtotals.go
package hourtotals

import (
	"context"

	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Queries computes approved-hour totals from the claims ledger. Totals are
// always derived from approved claims, never from pending or rejected ones,
// so they can be recomputed from scratch at any time.
type Queries struct {
	claims *mongo.Collection
}

func New(db *mongo.Database) *Queries {
	return &Queries{claims: db.Collection("claims")}
}

// TotalApprovedHours returns the sum of hours over the user's approved
// claims. A user with no approved claims totals 0.
func (q *Queries) TotalApprovedHours(ctx context.Context, userID primitive.ObjectID) (float64, error) {
	cur, err := q.claims.Aggregate(ctx, []bson.M{
		{"$match": bson.M{"user_id": userID, "status": models.ClaimStatusApproved}},
		{"$group": bson.M{"_id": "$user_id", "total": bson.M{"$sum": "$hours"}}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		var row struct {
			Total float64 `bson:"total"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, err
		}
		return row.Total, nil
	}
	return 0, cur.Err()
}

// Entry is one leaderboard row.
type Entry struct {
	UserID primitive.ObjectID `bson:"_id" json:"user_id"`
	Total  float64            `bson:"total" json:"total_hours"`
}

// Leaderboard returns the top users by approved-hour total. Ties are broken
// by whoever reached their total first (earliest final approval), then by
// user id so the ordering is deterministic.
func (q *Queries) Leaderboard(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	cur, err := q.claims.Aggregate(ctx, []bson.M{
		{"$match": bson.M{"status": models.ClaimStatusApproved}},
		{"$group": bson.M{
			"_id":           "$user_id",
			"total":         bson.M{"$sum": "$hours"},
			"last_approved": bson.M{"$max": "$reviewed_at"},
		}},
		{"$sort": bson.D{
			{Key: "total", Value: -1},
			{Key: "last_approved", Value: 1},
			{Key: "_id", Value: 1},
		}},
		{"$limit": limit},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Entry
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
