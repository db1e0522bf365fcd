// Package metrics holds the Prometheus instruments exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "climate_db_query_duration_seconds",
			Help:    "Duration of climate store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "climate_db_query_errors_total",
			Help: "Total number of failed climate store queries",
		},
		[]string{"operation"},
	)

	DBRowsReturned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "climate_db_rows_returned_total",
			Help: "Total number of rows materialized from the climate store",
		},
		[]string{"operation"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "climate_api_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "climate_api_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "climate_api_active_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	DataLastDate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "climate_data_last_date_timestamp_seconds",
			Help: "Unix time of the most recent observation date, computed at startup",
		},
	)
)

// RecordQuery records the outcome of one store query.
func RecordQuery(operation string, start time.Time, rows int, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
		return
	}
	DBRowsReturned.WithLabelValues(operation).Add(float64(rows))
}

// RecordAPIRequest records one served HTTP request. route must be the
// registered pattern, never the raw path, to keep label cardinality bounded.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

func SetDataLastDate(t time.Time) {
	DataLastDate.Set(float64(t.Unix()))
}
