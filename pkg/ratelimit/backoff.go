// Package ratelimit implements 429 backoff policy for the recordings API.
// It derives wait durations from the Retry-After header and tracks the
// consecutive rate-limit budget that bounds how long a run will keep retrying.
package ratelimit

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for rate-limit handling.
var (
	rateLimitWaitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recordings_rate_limit_waits_total",
		Help: "Total backoff waits triggered by 429 responses",
	})

	rateLimitWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "recordings_rate_limit_wait_seconds",
		Help:    "Backoff wait durations imposed by 429 responses",
		Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
	})

	rateLimitConsecutive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "recordings_rate_limit_consecutive",
		Help: "Current consecutive 429 count",
	})

	rateLimitExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recordings_rate_limit_exhausted_total",
		Help: "Runs aborted after exhausting the consecutive 429 budget",
	})
)

// Backoff policy constants.
const (
	// DefaultWait applies when a 429 carries no parseable Retry-After.
	DefaultWait = 60 * time.Second

	// MaxWait caps any server-directed wait.
	MaxWait = 300 * time.Second

	// MaxConsecutive429 is the consecutive rate-limit budget; exceeding it
	// aborts the run.
	MaxConsecutive429 = 10
)

// ParseRetryAfter converts a Retry-After header value (integer seconds) into
// a wait duration, applying the default for absent or unparseable values and
// clamping to MaxWait.
func ParseRetryAfter(header string) time.Duration {
	wait := DefaultWait
	if header != "" {
		if secs, err := strconv.Atoi(header); err == nil {
			wait = time.Duration(secs) * time.Second
		}
	}
	if wait > MaxWait {
		wait = MaxWait
	}
	return wait
}

// Backoff tracks consecutive 429 responses across a pagination run.
// Process-local: one run, one goroutine, no shared state.
type Backoff struct {
	consecutive int
}

// Record registers one 429 and its imposed wait.
func (b *Backoff) Record(wait time.Duration) {
	b.consecutive++
	rateLimitWaitsTotal.Inc()
	rateLimitWaitSeconds.Observe(wait.Seconds())
	rateLimitConsecutive.Set(float64(b.consecutive))
}

// Reset clears the consecutive counter after a successful fetch.
func (b *Backoff) Reset() {
	b.consecutive = 0
	rateLimitConsecutive.Set(0)
}

// Consecutive returns the current consecutive 429 count.
func (b *Backoff) Consecutive() int {
	return b.consecutive
}

// Exhausted reports whether the consecutive budget has been exceeded.
func (b *Backoff) Exhausted() bool {
	if b.consecutive > MaxConsecutive429 {
		rateLimitExhaustedTotal.Inc()
		return true
	}
	return false
}
