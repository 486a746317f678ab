// Package metrics exposes Prometheus counters for the API.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sgformer-backend/src/apperror"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sgformer_http_requests_total",
		Help: "HTTP requests by route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sgformer_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sgformer_submissions_total",
		Help: "Submission attempts by outcome.",
	}, []string{"result"})

	checkIns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sgformer_checkins_total",
		Help: "Ticket scans by outcome.",
	}, []string{"result"})
)

// Result maps an operation error to a low-cardinality label.
func Result(err error) string {
	if err == nil {
		return "ok"
	}
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		return "invalid"
	case apperror.KindCapacity:
		return "full"
	case apperror.KindConflict:
		return "conflict"
	case apperror.KindNotFound:
		return "not_found"
	case apperror.KindAuthentication, apperror.KindAuthorization:
		return "denied"
	default:
		return "error"
	}
}

func ObserveSubmission(err error) { submissions.WithLabelValues(Result(err)).Inc() }

func ObserveCheckIn(err error) { checkIns.WithLabelValues(Result(err)).Inc() }

// Middleware records every request under its route pattern.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		route := c.Route().Path
		httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
