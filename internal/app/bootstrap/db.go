// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/inspecthub/inspecthub/internal/app/system/indexes"
	"go.uber.org/zap"
)

// EnsureSchema creates the indexes the stores rely on: unique user emails,
// unique per-user inspection ratings, and the lookup indexes for group
// membership and scheduling queries.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("index creation failed", zap.Error(err))
		return err
	}
	logger.Info("database indexes ensured")
	return nil
}
