package web

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the server's Prometheus collectors. Each Metrics owns its
// registry so several servers can live in one process (tests).
type Metrics struct {
	Registry *prometheus.Registry

	requests      *prometheus.CounterVec
	gigsCreated   prometheus.Counter
	gigEdits      *prometheus.CounterVec
	rejections    *prometheus.CounterVec
	reclassified  prometheus.Counter
	sweepDuration prometheus.Histogram
	sweepFailures prometheus.Counter
}

// NewMetrics registers the gigbook collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gigbook_http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		gigsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "gigbook_gigs_created_total",
			Help: "Gigs booked",
		}),
		gigEdits: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gigbook_gig_edits_total",
				Help: "Gig edits by outcome",
			},
			[]string{"status"},
		),
		rejections: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gigbook_gig_rejections_total",
				Help: "Rejected create or edit requests by reason",
			},
			[]string{"reason"},
		),
		reclassified: f.NewCounter(prometheus.CounterOpts{
			Name: "gigbook_gigs_reclassified_total",
			Help: "Gigs moved from upcoming to past by the sweep",
		}),
		sweepDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gigbook_sweep_duration_seconds",
			Help:    "Duration of reclassify sweeps",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
		}),
		sweepFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "gigbook_sweep_failures_total",
			Help: "Reclassify sweeps that returned an error",
		}),
	}
}

// TrackRejection counts a rejected booking.
func (m *Metrics) TrackRejection(reason string) {
	m.rejections.WithLabelValues(reason).Inc()
}

// TrackSweep records one sweep run.
func (m *Metrics) TrackSweep(moved int, d time.Duration, err error) {
	m.sweepDuration.Observe(d.Seconds())
	if err != nil {
		m.sweepFailures.Inc()
	}
	m.reclassified.Add(float64(moved))
}

// middleware counts requests by route template.
func (m *Metrics) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request().Method, route, strconv.Itoa(c.Response().Status)).Inc()
		return nil
	}
}
