package types

import "time"

// DateLayout is the ISO-8601 calendar date format used by the store and the API.
const DateLayout = "2006-01-02"

type Station struct {
	ID   string `json:"station"`
	Name string `json:"name"`
}

type PrecipitationReading struct {
	Date string `json:"date"`
	// Precipitation is nil when the station reported nothing for the day.
	Precipitation *float64 `json:"prcp"`
}

type TemperatureReading struct {
	Date        string  `json:"date"`
	Temperature float64 `json:"tobs"`
}

type TemperatureSummary struct {
	TAvg float64 `json:"tavg"`
	TMax float64 `json:"tmax"`
	TMin float64 `json:"tmin"`
}

// DateBounds are the default query dates derived once at startup:
// Last is the newest observation date, First is one calendar year earlier.
type DateBounds struct {
	First time.Time
	Last  time.Time
}

func (b DateBounds) FirstString() string { return b.First.Format(DateLayout) }

func (b DateBounds) LastString() string { return b.Last.Format(DateLayout) }
