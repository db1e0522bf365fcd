package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"climate-server/internal/modules/climate/service"
	"climate-server/internal/validation"
)

func rangeRequest(start, end string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/x", nil)
	req.SetPathValue("start", start)
	if end != "" {
		req.SetPathValue("end", end)
	}
	return req
}

func Test_parseRangePath(t *testing.T) {
	t.Run("start only", func(t *testing.T) {
		start, end, err := parseRangePath(rangeRequest("2017-08-20", ""))
		if err != nil {
			t.Fatalf("err = %v", err)
		}
		if !start.Equal(day("2017-08-20")) || !end.IsZero() {
			t.Errorf("got %v..%v", start, end)
		}
	})

	t.Run("start and end", func(t *testing.T) {
		start, end, err := parseRangePath(rangeRequest("2017-08-20", "2017-08-22"))
		if err != nil {
			t.Fatalf("err = %v", err)
		}
		if !start.Equal(day("2017-08-20")) || !end.Equal(day("2017-08-22")) {
			t.Errorf("got %v..%v", start, end)
		}
	})

	t.Run("missing start", func(t *testing.T) {
		_, _, err := parseRangePath(rangeRequest("", ""))
		var reqErr *validation.RequestError
		if !errors.As(err, &reqErr) {
			t.Fatalf("err = %v; want *validation.RequestError", err)
		}
		if reqErr.Fields[0].Field != "start" || reqErr.Fields[0].Tag != "required" {
			t.Errorf("field error = %+v", reqErr.Fields[0])
		}
	})

	t.Run("malformed start", func(t *testing.T) {
		_, _, err := parseRangePath(rangeRequest("08/20/2017", ""))
		if err == nil {
			t.Fatal("err = nil; want error")
		}
		want := `invalid 'start' "08/20/2017" (expected YYYY-MM-DD)`
		if err.Error() != want {
			t.Errorf("err = %q; want %q", err.Error(), want)
		}
	})

	t.Run("start after end", func(t *testing.T) {
		_, _, err := parseRangePath(rangeRequest("2017-08-23", "2017-08-20"))
		if !errors.Is(err, errStartAfterEnd) {
			t.Errorf("err = %v; want errStartAfterEnd", err)
		}
	})
}

func Test_statusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrNoData, http.StatusNotFound},
		{fmt.Errorf("query: %w", context.DeadlineExceeded), http.StatusServiceUnavailable},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d; want %d", tt.err, got, tt.want)
		}
	}
}
