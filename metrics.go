package meteolux

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "meteolux"

// collector holds the per-request metrics. A nil collector records nothing.
type collector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newCollector(reg prometheus.Registerer) *collector {
	factory := promauto.With(reg)
	return &collector{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_total",
			Help:      "API requests issued, by method, operation and status code.",
		}, []string{"method", "path", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "request_duration_seconds",
			Help:      "API request latency in seconds, by method and operation.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "path"}),
	}
}

// observe records one completed request. A status of 0 marks a transport
// failure with no HTTP response.
func (m *collector) observe(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}
