package kv

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"kinetic/internal/adapters/http/perf"
)

// DefaultSlowOpMs is the default threshold for slow store-op warnings.
const DefaultSlowOpMs = 50

var slowOpMs int64
var slowOpOnce sync.Once

// getSlowOpThreshold returns the slow-op threshold in milliseconds.
func getSlowOpThreshold() float64 {
	slowOpOnce.Do(func() {
		ms := DefaultSlowOpMs
		if v := os.Getenv("KINETIC_SLOW_OP_MS"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				ms = n
			}
		}
		atomic.StoreInt64(&slowOpMs, int64(ms))
	})
	return float64(atomic.LoadInt64(&slowOpMs))
}

// TimedStore wraps a Store to log slow operations and optionally record them
// to a perf collector. Satisfies Store, so it can back any higher-level store.
type TimedStore struct {
	inner     Store
	collector *perf.Collector
	threshold float64
}

// Compile-time check that *TimedStore satisfies Store.
var _ Store = (*TimedStore)(nil)

// NewTimedStore wraps a Store with timing instrumentation.
// PRE: inner is a valid Store
// POST: Returns a TimedStore that logs slow ops and records to collector
func NewTimedStore(inner Store, collector *perf.Collector) *TimedStore {
	return &TimedStore{
		inner:     inner,
		collector: collector,
		threshold: getSlowOpThreshold(),
	}
}

// Get delegates to the inner store with timing.
func (t *TimedStore) Get(ctx context.Context, key string) (string, bool, error) {
	defer t.logOp("kv.Get "+key, time.Now())
	return t.inner.Get(ctx, key)
}

// Set delegates to the inner store with timing.
func (t *TimedStore) Set(ctx context.Context, key, value string) error {
	defer t.logOp("kv.Set "+key, time.Now())
	return t.inner.Set(ctx, key, value)
}

// Delete delegates to the inner store with timing.
func (t *TimedStore) Delete(ctx context.Context, key string) error {
	defer t.logOp("kv.Delete "+key, time.Now())
	return t.inner.Delete(ctx, key)
}

// logOp logs and optionally records one operation timing.
func (t *TimedStore) logOp(op string, start time.Time) {
	durationMs := float64(time.Since(start).Microseconds()) / 1000.0
	if durationMs >= t.threshold {
		slog.Warn("slow_store_op", "op", op, "duration_ms", durationMs)
	}
	if t.collector != nil {
		t.collector.Record(perf.Entry{
			Kind:       perf.KindStore,
			Path:       op,
			DurationMs: durationMs,
			Timestamp:  start,
		})
	}
}
