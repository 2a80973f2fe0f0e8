package metrics

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
	"github.com/pkg/errors"
)

// Point is one recorded metric value
type Point struct {
	Timestamp int64 `json:"timestamp"` // unix seconds
	Value     int64 `json:"value"`
}

var (
	mu      sync.Mutex
	storage tstorage.Storage
	latest  = make(map[string]int64)
)

// InitMetrics opens the time series store under <workdir>/data/metrics.
// Metrics stay usable in memory when it is never called.
func InitMetrics(workdir string) error {
	mu.Lock()
	defer mu.Unlock()
	if storage != nil {
		return nil
	}
	s, err := tstorage.NewStorage(
		tstorage.WithDataPath(filepath.Join(workdir, "data", "metrics")),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithRetention(7*24*time.Hour),
	)
	if err != nil {
		return errors.Wrap(err, "open metrics storage")
	}
	storage = s
	return nil
}

// SetGauge records the current value of a gauge
func SetGauge(name string, value int64) {
	mu.Lock()
	defer mu.Unlock()
	latest[name] = value
	write(name, value)
}

// Incr adds delta to a counter and returns the new value
func Incr(name string, delta int64) int64 {
	mu.Lock()
	defer mu.Unlock()
	latest[name] += delta
	v := latest[name]
	write(name, v)
	return v
}

// Latest returns the last value recorded in this process
func Latest(name string) (int64, bool) {
	mu.Lock()
	defer mu.Unlock()
	v, ok := latest[name]
	return v, ok
}

// Query returns the stored points of a metric in [start, end]
func Query(name string, start, end time.Time) ([]Point, error) {
	mu.Lock()
	s := storage
	mu.Unlock()
	if s == nil {
		return nil, nil
	}
	points, err := s.Select(name, nil, start.Unix(), end.Unix()+1)
	if errors.Is(err, tstorage.ErrNoDataPoints) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "select %s", name)
	}
	out := make([]Point, 0, len(points))
	for _, p := range points {
		out = append(out, Point{Timestamp: p.Timestamp, Value: int64(p.Value)})
	}
	return out, nil
}

// Close flushes and closes the store
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	latest = make(map[string]int64)
	if storage == nil {
		return nil
	}
	err := storage.Close()
	storage = nil
	return err
}

func write(name string, value int64) {
	if storage == nil {
		return
	}
	_ = storage.InsertRows([]tstorage.Row{{
		Metric:    name,
		DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: float64(value)},
	}})
}
