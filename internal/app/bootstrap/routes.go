// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	groupsfeature "github.com/cohortlab/cohorthub/internal/app/features/groups"
	healthfeature "github.com/cohortlab/cohorthub/internal/app/features/health"
	organizationsfeature "github.com/cohortlab/cohorthub/internal/app/features/organizations"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. CohortHub mounts the health
// endpoint plus the JSON feature routers for organizations and groups.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	orgHandler := organizationsfeature.NewHandler(deps.MongoDatabase, appCfg.DefaultCurrency, logger)
	r.Mount("/organizations", organizationsfeature.Routes(orgHandler))

	groupsHandler := groupsfeature.NewHandler(deps.MongoDatabase, appCfg.DefaultCurrency, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler))

	return r, nil
}
