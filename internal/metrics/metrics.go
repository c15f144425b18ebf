package metrics

import (
	"errors"
	"strconv"
	"time"

	"promptly-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the API's Prometheus collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	aiRequests   *prometheus.CounterVec
	aiLatency    *prometheus.HistogramVec
	events       *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "promptly",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "promptly",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		aiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "promptly",
			Subsystem: "ai",
			Name:      "requests_total",
			Help:      "LLM calls by operation and outcome",
		}, []string{"operation", "provider", "status"}),
		aiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "promptly",
			Subsystem: "ai",
			Name:      "request_duration_seconds",
			Help:      "LLM call latency",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
		}, []string{"operation"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "promptly",
			Subsystem: "events",
			Name:      "total",
			Help:      "Domain events by type and direction",
		}, []string{"event_type", "direction", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.httpRequests, m.httpLatency, m.aiRequests, m.aiLatency, m.events)
	return m
}

// Middleware records count and latency per matched route.
func (m *Metrics) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if m == nil {
			return ctx.Next()
		}
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			var appErr *serverutils.AppError
			switch {
			case errors.As(err, &fe):
				status = fe.Code
			case errors.As(err, &appErr):
				status = appErr.Code
			default:
				status = fiber.StatusInternalServerError
			}
		}
		route := ctx.Route().Path
		m.httpRequests.WithLabelValues(ctx.Method(), route, strconv.Itoa(status)).Inc()
		m.httpLatency.WithLabelValues(ctx.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

func (m *Metrics) ObserveAI(operation, provider string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.aiRequests.WithLabelValues(operation, provider, status).Inc()
	m.aiLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveEvent(eventType, direction string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.events.WithLabelValues(eventType, direction, status).Inc()
}

// EventCounter returns the counter behind one event series.
func (m *Metrics) EventCounter(eventType, direction, status string) prometheus.Counter {
	return m.events.WithLabelValues(eventType, direction, status)
}
