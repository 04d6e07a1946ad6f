package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wayfinder",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wayfinder",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wayfinder",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Upstream provider metrics
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wayfinder",
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Total calls to external providers by outcome",
	}, []string{"provider", "outcome"})

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wayfinder",
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Latency of calls to external providers",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"provider"})

	RateLimitWait = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wayfinder",
		Subsystem: "upstream",
		Name:      "rate_limit_wait_seconds",
		Help:      "Time spent waiting for a provider rate limit slot",
		Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2},
	}, []string{"provider"})

	// Pipeline metrics
	DirectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wayfinder",
		Subsystem: "directions",
		Name:      "requests_total",
		Help:      "Directions pipeline runs by mode and result",
	}, []string{"mode", "result"})

	RouteDistance = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wayfinder",
		Subsystem: "directions",
		Name:      "route_distance_meters",
		Help:      "Distance of computed routes",
		Buckets:   prometheus.ExponentialBuckets(100, 4, 8),
	}, []string{"profile"})

	MapsStored = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wayfinder",
		Subsystem: "maps",
		Name:      "stored_total",
		Help:      "Rendered map documents saved for download",
	})
)

// ObserveUpstream records one provider call.
func ObserveUpstream(provider, outcome string, started time.Time) {
	UpstreamRequests.WithLabelValues(provider, outcome).Inc()
	UpstreamDuration.WithLabelValues(provider).Observe(time.Since(started).Seconds())
}

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		// fiber resolves to the route pattern, which keeps /v1/maps/:id low-cardinality
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
