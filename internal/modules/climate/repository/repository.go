package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"climate-server/internal/metrics"
	"climate-server/internal/modules/climate/types"
)

//go:embed sql/get-latest-date.sql
var getLatestDateSQL string

//go:embed sql/get-precipitation.sql
var getPrecipitationSQL string

//go:embed sql/get-stations.sql
var getStationsSQL string

//go:embed sql/get-temperatures-since.sql
var getTemperaturesSinceSQL string

//go:embed sql/get-temperatures-between.sql
var getTemperaturesBetweenSQL string

// ErrNoObservations is returned by LatestDate when the measurement table is empty.
var ErrNoObservations = errors.New("no observations in store")

type ClimateRepository interface {
	LatestDate(ctx context.Context) (time.Time, error)
	GetPrecipitation(ctx context.Context) ([]types.PrecipitationReading, error)
	GetStations(ctx context.Context) ([]types.Station, error)
	GetTemperaturesSince(ctx context.Context, from time.Time) ([]types.TemperatureReading, error)
	GetTemperaturesBetween(ctx context.Context, from time.Time, to time.Time) ([]types.TemperatureReading, error)
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) ClimateRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) LatestDate(ctx context.Context) (time.Time, error) {
	start := time.Now()
	var raw sql.NullString
	err := r.db.QueryRowContext(ctx, getLatestDateSQL).Scan(&raw)
	metrics.RecordQuery("latest_date", start, 1, err)
	if err != nil {
		return time.Time{}, fmt.Errorf("latest date: %w", err)
	}
	if !raw.Valid || raw.String == "" {
		return time.Time{}, ErrNoObservations
	}
	t, err := time.Parse(types.DateLayout, raw.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse latest date %q: %w", raw.String, err)
	}
	return t, nil
}

func (r *repositoryImpl) GetPrecipitation(ctx context.Context) (out []types.PrecipitationReading, err error) {
	start := time.Now()
	defer func() { metrics.RecordQuery("precipitation", start, len(out), err) }()

	rows, err := r.db.QueryContext(ctx, getPrecipitationSQL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close precipitation rows", "error", err)
		}
	}()
	out = []types.PrecipitationReading{}
	for rows.Next() {
		var rec types.PrecipitationReading
		var prcp sql.NullFloat64
		if err := rows.Scan(&rec.Date, &prcp); err != nil {
			return nil, err
		}
		if prcp.Valid {
			v := prcp.Float64
			rec.Precipitation = &v
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) GetStations(ctx context.Context) (out []types.Station, err error) {
	start := time.Now()
	defer func() { metrics.RecordQuery("stations", start, len(out), err) }()

	rows, err := r.db.QueryContext(ctx, getStationsSQL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close stations rows", "error", err)
		}
	}()
	out = []types.Station{}
	for rows.Next() {
		var s types.Station
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) GetTemperaturesSince(ctx context.Context, from time.Time) (out []types.TemperatureReading, err error) {
	start := time.Now()
	defer func() { metrics.RecordQuery("temperatures_since", start, len(out), err) }()

	rows, err := r.db.QueryContext(ctx, getTemperaturesSinceSQL, from.Format(types.DateLayout))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close temperature rows", "error", err)
		}
	}()
	return scanTemperatures(rows)
}

// GetTemperaturesBetween is inclusive on both ends. from after to yields an
// empty slice, not an error.
func (r *repositoryImpl) GetTemperaturesBetween(ctx context.Context, from time.Time, to time.Time) (out []types.TemperatureReading, err error) {
	start := time.Now()
	defer func() { metrics.RecordQuery("temperatures_between", start, len(out), err) }()

	rows, err := r.db.QueryContext(ctx, getTemperaturesBetweenSQL, from.Format(types.DateLayout), to.Format(types.DateLayout))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close temperature rows", "error", err)
		}
	}()
	return scanTemperatures(rows)
}

func scanTemperatures(rows *sql.Rows) ([]types.TemperatureReading, error) {
	out := []types.TemperatureReading{}
	for rows.Next() {
		var rec types.TemperatureReading
		if err := rows.Scan(&rec.Date, &rec.Temperature); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
