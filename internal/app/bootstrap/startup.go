// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	badgestore "github.com/dalemusser/volunteerhub/internal/app/store/badges"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// defaultBadgeTiers are the seed tiers for a fresh deployment. Operators
// can edit the badges collection afterward; seeding never touches an
// existing catalog.
var defaultBadgeTiers = []models.Badge{
	{Name: "Bronze", Description: "10 approved volunteer hours", RequiredHours: 10},
	{Name: "Silver", Description: "25 approved volunteer hours", RequiredHours: 25},
	{Name: "Gold", Description: "50 approved volunteer hours", RequiredHours: 50},
	{Name: "Platinum", Description: "100 approved volunteer hours", RequiredHours: 100},
}

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	badges := badgestore.New(deps.VolunteerHubMongoDatabase)
	if err := badges.EnsureDefaults(ctx, defaultBadgeTiers); err != nil {
		return err
	}
	logger.Info("badge catalog ready")
	return nil
}
