package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgformer-backend/src/apperror"
)

func TestResult(t *testing.T) {
	assert.Equal(t, "ok", Result(nil))
	assert.Equal(t, "full", Result(apperror.Capacity("Form is closed")))
	assert.Equal(t, "conflict", Result(apperror.Conflict("dup")))
	assert.Equal(t, "error", Result(errors.New("boom")))
}

func TestObserveSubmission(t *testing.T) {
	before := testutil.ToFloat64(submissions.WithLabelValues("full"))
	ObserveSubmission(apperror.Capacity("Maximum submissions reached"))
	assert.Equal(t, before+1, testutil.ToFloat64(submissions.WithLabelValues("full")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/ping/:id", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/metrics", Handler())

	_, err := app.Test(httptest.NewRequest("GET", "/ping/42", nil))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `sgformer_http_requests_total{method="GET",route="/ping/:id",status="200"}`)
}
