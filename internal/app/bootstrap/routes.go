// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	badgesfeature "github.com/dalemusser/volunteerhub/internal/app/features/badges"
	claimsfeature "github.com/dalemusser/volunteerhub/internal/app/features/claims"
	eventsfeature "github.com/dalemusser/volunteerhub/internal/app/features/events"
	healthfeature "github.com/dalemusser/volunteerhub/internal/app/features/health"
	leaderboardfeature "github.com/dalemusser/volunteerhub/internal/app/features/leaderboard"
	schoolsfeature "github.com/dalemusser/volunteerhub/internal/app/features/schools"
	userinfofeature "github.com/dalemusser/volunteerhub/internal/app/features/userinfo"
	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/dalemusser/volunteerhub/internal/app/system/notify"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. VolunteerHub initializes the session
// store, applies the session-loading middleware, builds the push
// dispatcher, and mounts the feature routers: claims, events, badges,
// leaderboard, schools, health, and user info.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Session cookies are signed with the key the auth front end uses;
	// this service only reads them. Secure cookies in production.
	secure := coreCfg.Env == "prod"
	sessionKey := appCfg.SessionKey
	if sessionKey == "" {
		// Dev convenience: a random key means sessions reset on restart.
		sessionKey = auth.GenerateSessionKey()
		logger.Warn("session_key not configured; generated an ephemeral key")
	}
	if err := auth.InitSessionStore(sessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	// Push delivery is optional; without a push_url every notification is
	// accepted and dropped.
	var dispatcher notify.Dispatcher = notify.NopDispatcher{}
	if appCfg.PushURL != "" {
		dispatcher = notify.NewHTTPDispatcher(appCfg.PushURL, appCfg.PushTimeout, logger)
		logger.Info("push dispatcher configured", zap.String("url", appCfg.PushURL))
	}

	db := deps.VolunteerHubMongoDatabase

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.VolunteerHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Session identity for front ends
	userinfofeature.MountRoutes(r, userinfofeature.NewHandler())

	// The claims ledger and its review workflow
	claimsHandler := claimsfeature.NewHandler(db, dispatcher, logger)
	r.Mount("/claims", claimsfeature.Routes(claimsHandler))

	// Events, registrations, and student-coordinator assignments
	eventsHandler := eventsfeature.NewHandler(db, dispatcher, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler))

	// Badge catalog and per-user progress
	badgesHandler := badgesfeature.NewHandler(db, logger)
	r.Mount("/badges", badgesfeature.Routes(badgesHandler))

	// Approved-hours leaderboard
	leaderboardHandler := leaderboardfeature.NewHandler(db, appCfg.LeaderboardLimit, logger)
	r.Mount("/leaderboard", leaderboardfeature.Routes(leaderboardHandler))

	// School directory
	schoolsHandler := schoolsfeature.NewHandler(db, logger)
	r.Mount("/schools", schoolsfeature.Routes(schoolsHandler))

	return r, nil
}
