// Package metrics provides the centralized Prometheus registry reference for
// the recordings exporter. Metrics are defined in their owning packages
// (client, ratelimit) and registered automatically via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registerer used by the exporter.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - recordings_api_requests_total{status} (Counter): Requests by HTTP status
//   - recordings_api_request_duration_seconds (Histogram): Request duration
//   - recordings_api_errors_total{class} (Counter): Errors by class
//     (client, server, rate_limit, network, decode)
//
// Rate Limit Metrics (pkg/ratelimit):
//   - recordings_rate_limit_waits_total (Counter): Backoff waits triggered by 429s
//   - recordings_rate_limit_wait_seconds (Histogram): Imposed wait durations
//   - recordings_rate_limit_consecutive (Gauge): Current consecutive 429 count
//   - recordings_rate_limit_exhausted_total (Counter): Runs aborted after
//     exhausting the consecutive 429 budget
