package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/talkincode/toughshop/internal/webserver"
	"github.com/talkincode/toughshop/pkg/metrics"
)

const defaultMetricsWindow = time.Hour

type metricSeries struct {
	Name   string          `json:"name"`
	Latest *int64          `json:"latest"`
	Start  int64           `json:"start"`
	End    int64           `json:"end"`
	Points []metrics.Point `json:"points"`
}

func registerMetricsRoutes(s *webserver.WebServer) {
	s.ApiGET("/admin/metrics/:name", getMetricSeries)
}

// parseTimeParam accepts unix seconds or any layout cast understands
func parseTimeParam(val string, def time.Time) (time.Time, bool) {
	val = strings.TrimSpace(val)
	if val == "" {
		return def, true
	}
	if sec, err := cast.ToInt64E(val); err == nil {
		return time.Unix(sec, 0), true
	}
	t, err := cast.ToTimeE(val)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func getMetricSeries(c echo.Context) error {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Metric name is required", nil)
	}

	now := time.Now()
	end, valid := parseTimeParam(c.QueryParam("end"), now)
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid end time", nil)
	}
	start, valid := parseTimeParam(c.QueryParam("start"), end.Add(-defaultMetricsWindow))
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid start time", nil)
	}
	if start.After(end) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "start must not be after end", nil)
	}

	points, err := metrics.Query(name, start, end)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query metrics", err.Error())
	}
	if points == nil {
		points = []metrics.Point{}
	}
	series := metricSeries{Name: name, Start: start.Unix(), End: end.Unix(), Points: points}
	if v, found := metrics.Latest(name); found {
		series.Latest = &v
	}
	return ok(c, series)
}
