package controller

import (
	"context"
	"net/http"
	"time"

	"climate-server/internal/modules/climate/service"
)

type ClimateController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type climateControllerImpl struct {
	service      *service.Service
	queryTimeout time.Duration
}

// NewClimateController returns the HTTP front of svc. Every handler runs its
// store queries under queryTimeout; zero disables the deadline.
func NewClimateController(svc *service.Service, queryTimeout time.Duration) ClimateController {
	return &climateControllerImpl{service: svc, queryTimeout: queryTimeout}
}

func (c *climateControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", c.handleIndex)
	mux.HandleFunc("GET /api/precipitation", c.handlePrecipitation)
	mux.HandleFunc("GET /api/stations", c.handleStations)
	mux.HandleFunc("GET /api/temperature", c.handleTemperature)
	mux.HandleFunc("GET /api/{$}", c.handleSummaryDefault)
	mux.HandleFunc("GET /api/{start}", c.handleSummarySince)
	mux.HandleFunc("GET /api/{start}/{end}", c.handleSummaryBetween)
}

func (c *climateControllerImpl) queryContext(r *http.Request) (context.Context, context.CancelFunc) {
	if c.queryTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), c.queryTimeout)
}
