package climate

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"climate-server/internal/config"
	"climate-server/internal/modules/climate/controller"
	"climate-server/internal/modules/climate/repository"
	"climate-server/internal/modules/climate/service"
)

// RegisterFeature wires the climate routes onto mux. It fails when the store
// holds no observations, since the default date bounds cannot be derived.
func RegisterFeature(ctx context.Context, mux *http.ServeMux, db *sql.DB, cfg config.Config, logger *slog.Logger) error {
	climateRepository := repository.NewRepository(db)

	if cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.QueryTimeout)
		defer cancel()
	}
	climateService, err := service.NewService(ctx, climateRepository, logger)
	if err != nil {
		return err
	}

	climateController := controller.NewClimateController(climateService, cfg.QueryTimeout)
	climateController.RegisterRoutes(mux)
	return nil
}
