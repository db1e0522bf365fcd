package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"climate-server/internal/modules/climate/service"
	"climate-server/internal/validation"
)

type summaryParams struct {
	Start string `param:"start" validate:"required,datetime=2006-01-02"`
	End   string `param:"end" validate:"omitempty,datetime=2006-01-02"`
}

var errStartAfterEnd = errors.New("'start' must be <= 'end'")

// parseRangePath reads {start} and the optional {end} path values. A zero end
// means the range is open.
func parseRangePath(r *http.Request) (start, end time.Time, err error) {
	p := summaryParams{Start: r.PathValue("start"), End: r.PathValue("end")}
	if err := validation.ValidateStruct(p); err != nil {
		return time.Time{}, time.Time{}, err
	}

	start, err = service.ParseDate(p.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if p.End == "" {
		return start, time.Time{}, nil
	}
	end, err = service.ParseDate(p.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, errStartAfterEnd
	}
	return start, end, nil
}

// statusFor maps a service error to the response status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
