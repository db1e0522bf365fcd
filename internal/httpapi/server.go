package httpapi

import (
	"log/slog"
	"net/http"

	"climate-server/internal/config"
)

// NewHandler wraps mux in the middleware chain, outermost first:
// metrics, request log, CORS, rate limit.
func NewHandler(cfg config.Config, mux *http.ServeMux, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	var h http.Handler = mux
	h = rateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow)(h)
	h = corsMiddleware(cfg.CORSAllowedOrigins)(h)
	h = requestLogger(logger, h)
	h = requestMetrics(h)
	return h
}

func NewServer(cfg config.Config, mux *http.ServeMux, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:           NewHandler(cfg, mux, logger),
		ReadHeaderTimeout: cfg.HTTPReadTimeout,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}
}
