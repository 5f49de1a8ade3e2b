// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	groupsfeature "github.com/inspecthub/inspecthub/internal/app/features/groups"
	healthfeature "github.com/inspecthub/inspecthub/internal/app/features/health"
	inspectionsfeature "github.com/inspecthub/inspecthub/internal/app/features/inspections"
	usersfeature "github.com/inspecthub/inspecthub/internal/app/features/users"
	"github.com/inspecthub/inspecthub/internal/app/system/auth"
	"github.com/inspecthub/inspecthub/internal/app/system/metrics"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. InspectHub creates the session manager
// and token issuer, applies the session-loading and metrics middleware, and
// mounts the feature routers: health, users, groups, and inspections.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenIssuer(appCfg.TokenSecret, appCfg.TokenTTL)
	if err != nil {
		logger.Error("token issuer init failed", zap.Error(err))
		return nil, err
	}

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, tokens, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Global middleware: request metrics, then session/bearer resolution so
	// every handler can read the actor via auth.CurrentUser(r).
	r.Use(metrics.Middleware)
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Prometheus scrape endpoint
	r.Handle("/metrics", metrics.Handler())

	// Accounts and user directory
	usersHandler := usersfeature.NewHandler(deps.MongoDatabase, sessionMgr, tokens, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, sessionMgr))

	// Group membership
	groupsHandler := groupsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler, sessionMgr))

	// Inspection lifecycle
	inspectionsHandler := inspectionsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/inspections", inspectionsfeature.Routes(inspectionsHandler, sessionMgr))

	return r, nil
}
