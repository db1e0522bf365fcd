package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"climate-server/internal/metrics"
	"climate-server/internal/modules/climate/repository"
	"climate-server/internal/modules/climate/types"
)

// Service is the application context shared by the HTTP handlers. The date
// bounds are computed once in NewService and never refreshed, so a store
// updated after startup is only picked up by a restart.
type Service struct {
	repository repository.ClimateRepository
	bounds     types.DateBounds
	logger     *slog.Logger
}

func NewService(ctx context.Context, repo repository.ClimateRepository, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	last, err := repo.LatestDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute date bounds: %w", err)
	}
	bounds := BoundsFrom(last)
	metrics.SetDataLastDate(bounds.Last)
	logger.Info("date bounds computed",
		"first_date", bounds.FirstString(),
		"last_date", bounds.LastString(),
	)
	return &Service{repository: repo, bounds: bounds, logger: logger}, nil
}

func (s *Service) Bounds() types.DateBounds {
	return s.bounds
}

func (s *Service) Precipitation(ctx context.Context) ([]types.PrecipitationReading, error) {
	return s.repository.GetPrecipitation(ctx)
}

func (s *Service) Stations(ctx context.Context) ([]types.Station, error) {
	return s.repository.GetStations(ctx)
}

// RecentTemperatures returns the trailing year of readings ending at the last date.
func (s *Service) RecentTemperatures(ctx context.Context) ([]types.TemperatureReading, error) {
	return s.repository.GetTemperaturesBetween(ctx, s.bounds.First, s.bounds.Last)
}

func (s *Service) SummarizeSince(ctx context.Context, start time.Time) (types.TemperatureSummary, error) {
	readings, err := s.repository.GetTemperaturesSince(ctx, start)
	if err != nil {
		return types.TemperatureSummary{}, err
	}
	return Summarize(readings)
}

func (s *Service) SummarizeBetween(ctx context.Context, start, end time.Time) (types.TemperatureSummary, error) {
	readings, err := s.repository.GetTemperaturesBetween(ctx, start, end)
	if err != nil {
		return types.TemperatureSummary{}, err
	}
	return Summarize(readings)
}
