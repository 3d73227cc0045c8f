// internal/app/features/claims/handler.go
package claims

import (
	badgestore "github.com/dalemusser/volunteerhub/internal/app/store/badges"
	claimstore "github.com/dalemusser/volunteerhub/internal/app/store/claims"
	"github.com/dalemusser/volunteerhub/internal/app/store/queries/hourtotals"
	schoolstore "github.com/dalemusser/volunteerhub/internal/app/store/schools"
	userstore "github.com/dalemusser/volunteerhub/internal/app/store/users"
	"github.com/dalemusser/volunteerhub/internal/app/system/notify"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the claim lifecycle: submit, list, and review.
type Handler struct {
	DB         *mongo.Database
	Claims     *claimstore.Store
	Schools    *schoolstore.Store
	Users      *userstore.Store
	Badges     *badgestore.Store
	Totals     *hourtotals.Queries
	Dispatcher notify.Dispatcher
	Log        *zap.Logger
}

// NewHandler constructs the claims handler and its stores.
func NewHandler(db *mongo.Database, dispatcher notify.Dispatcher, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Claims:     claimstore.New(db),
		Schools:    schoolstore.New(db),
		Users:      userstore.New(db),
		Badges:     badgestore.New(db),
		Totals:     hourtotals.New(db),
		Dispatcher: dispatcher,
		Log:        logger,
	}
}
