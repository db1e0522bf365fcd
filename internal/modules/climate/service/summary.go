package service

import (
	"errors"
	"math"

	"climate-server/internal/modules/climate/types"
)

// ErrNoData is returned when an aggregate is requested over zero readings.
var ErrNoData = errors.New("no temperature observations in range")

// Summarize computes the mean, max and min temperature of readings.
// The mean is rounded to one decimal place, half away from zero.
func Summarize(readings []types.TemperatureReading) (types.TemperatureSummary, error) {
	if len(readings) == 0 {
		return types.TemperatureSummary{}, ErrNoData
	}

	sum := 0.0
	tmax := math.Inf(-1)
	tmin := math.Inf(1)
	for _, r := range readings {
		sum += r.Temperature
		tmax = math.Max(tmax, r.Temperature)
		tmin = math.Min(tmin, r.Temperature)
	}

	return types.TemperatureSummary{
		TAvg: roundTo(sum/float64(len(readings)), 1),
		TMax: tmax,
		TMin: tmin,
	}, nil
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
