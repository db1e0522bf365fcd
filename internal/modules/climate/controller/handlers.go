package controller

import (
	"log/slog"
	"net/http"
	"time"

	"climate-server/internal/modules/climate/types"
	"climate-server/internal/modules/climate/views"
	"climate-server/internal/utils"
)

func (c *climateControllerImpl) handleIndex(w http.ResponseWriter, r *http.Request) {
	bounds := c.service.Bounds()
	data := &views.IndexData{
		FirstDate: bounds.FirstString(),
		LastDate:  bounds.LastString(),
		Routes:    views.DefaultRoutes(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.RenderIndex(w, data); err != nil {
		slog.Error("index template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
}

func (c *climateControllerImpl) handlePrecipitation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.queryContext(r)
	defer cancel()

	readings, err := c.service.Precipitation(ctx)
	if err != nil {
		slog.Error("precipitation: query failed", "error", err)
		utils.WriteError(w, statusFor(err), "failed to load precipitation")
		return
	}

	out := make([]map[string]*float64, 0, len(readings))
	for _, p := range readings {
		out = append(out, map[string]*float64{p.Date: p.Precipitation})
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

func (c *climateControllerImpl) handleStations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.queryContext(r)
	defer cancel()

	stations, err := c.service.Stations(ctx)
	if err != nil {
		slog.Error("stations: query failed", "error", err)
		utils.WriteError(w, statusFor(err), "failed to load stations")
		return
	}

	out := make([]map[string]string, 0, len(stations))
	for _, s := range stations {
		out = append(out, map[string]string{s.ID: s.Name})
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

func (c *climateControllerImpl) handleTemperature(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.queryContext(r)
	defer cancel()

	readings, err := c.service.RecentTemperatures(ctx)
	if err != nil {
		slog.Error("temperature: query failed", "error", err)
		utils.WriteError(w, statusFor(err), "failed to load temperatures")
		return
	}

	out := make([]map[string]float64, 0, len(readings))
	for _, t := range readings {
		out = append(out, map[string]float64{t.Date: t.Temperature})
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

func (c *climateControllerImpl) handleSummaryDefault(w http.ResponseWriter, r *http.Request) {
	c.writeSummary(w, r, c.service.Bounds().First, time.Time{})
}

func (c *climateControllerImpl) handleSummarySince(w http.ResponseWriter, r *http.Request) {
	start, _, err := parseRangePath(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	c.writeSummary(w, r, start, time.Time{})
}

func (c *climateControllerImpl) handleSummaryBetween(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRangePath(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	c.writeSummary(w, r, start, end)
}

// writeSummary aggregates from start onwards, or up to end when end is set.
func (c *climateControllerImpl) writeSummary(w http.ResponseWriter, r *http.Request, start, end time.Time) {
	ctx, cancel := c.queryContext(r)
	defer cancel()

	var (
		summary types.TemperatureSummary
		err     error
	)
	if end.IsZero() {
		summary, err = c.service.SummarizeSince(ctx, start)
	} else {
		summary, err = c.service.SummarizeBetween(ctx, start, end)
	}
	if err != nil {
		status := statusFor(err)
		if status == http.StatusNotFound {
			utils.WriteError(w, status, err.Error())
			return
		}
		slog.Error("summary: query failed", "start", start.Format(types.DateLayout), "error", err)
		utils.WriteError(w, status, "failed to compute temperature summary")
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}
