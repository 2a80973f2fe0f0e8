package adminapi

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/toughshop/pkg/metrics"
)

func TestGetMetricSeries(t *testing.T) {
	_, cl := newTestClient(t)
	require.NoError(t, metrics.InitMetrics(t.TempDir()))
	t.Cleanup(func() { _ = metrics.Close() })

	metrics.SetGauge("shop_active_carts", 3)

	status, env := cl.Do(http.MethodGet, "/api/admin/metrics/shop_active_carts", nil)
	require.Equal(t, http.StatusOK, status)
	var series metricSeries
	env.Decode(t, &series)
	assert.Equal(t, "shop_active_carts", series.Name)
	require.NotNil(t, series.Latest)
	assert.Equal(t, int64(3), *series.Latest)
	require.NotEmpty(t, series.Points)
	assert.Equal(t, int64(3), series.Points[len(series.Points)-1].Value)
	assert.Equal(t, int64(time.Hour/time.Second), series.End-series.Start)
}

func TestGetMetricSeries_Window(t *testing.T) {
	_, cl := newTestClient(t)

	end := time.Now().Add(-24 * time.Hour).Unix()
	start := end - 60
	path := "/api/admin/metrics/shop_checkout_total?start=" + strconv.FormatInt(start, 10) + "&end=" + strconv.FormatInt(end, 10)
	status, env := cl.Do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, status)
	var series metricSeries
	env.Decode(t, &series)
	assert.Equal(t, start, series.Start)
	assert.Equal(t, end, series.End)
	assert.Empty(t, series.Points)

	status, env = cl.Do(http.MethodGet, "/api/admin/metrics/shop_checkout_total?start=2024-05-01T00:00:00Z&end=2024-05-02T00:00:00Z", nil)
	require.Equal(t, http.StatusOK, status)
	env.Decode(t, &series)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).Unix(), series.Start)
}

func TestGetMetricSeries_BadWindow(t *testing.T) {
	_, cl := newTestClient(t)

	for _, query := range []string{"start=yesterday", "end=soon", "start=200&end=100"} {
		status, env := cl.Do(http.MethodGet, "/api/admin/metrics/shop_checkout_total?"+query, nil)
		assert.Equal(t, http.StatusBadRequest, status, query)
		assert.Equal(t, "INVALID_REQUEST", env.Code, query)
	}
}
