package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgformer-backend/src/apperror"
	"sgformer-backend/src/models"
)

func errorBody(t *testing.T, resp *http.Response) models.ErrorResponse {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestHandleError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", apperror.Validation("Validation errors", "Name is required"), http.StatusBadRequest, "Validation errors"},
		{"capacity", apperror.Capacity("Form is closed"), http.StatusBadRequest, "Form is closed"},
		{"conflict", apperror.Conflict("dup"), http.StatusConflict, "dup"},
		{"upstream", apperror.Upstream("failed to load form", errors.New("mongo down")), http.StatusInternalServerError, MsgInternal},
		{"plain", errors.New("boom"), http.StatusInternalServerError, MsgInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return HandleError(c, tc.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			body := errorBody(t, resp)
			assert.Equal(t, tc.msg, body.Message)
			assert.NotContains(t, body.Message, "mongo")
		})
	}
}

func TestParseBody(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		var req models.RoleRequest
		if err := ParseBody(c, &req); err != nil {
			return HandleError(c, err)
		}
		return c.JSON(req)
	})

	send := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	assert.Equal(t, http.StatusOK, send(`{"role":"admin"}`).StatusCode)

	resp := send(`{"role":"admin","extra":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, MsgInvalidBody, errorBody(t, resp).Message)

	resp = send(`{"role":"owner"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"Role must be one of [admin user]"}, errorBody(t, resp).Errors)

	assert.Equal(t, http.StatusBadRequest, send(``).StatusCode)
}

func TestGenerateRandomString(t *testing.T) {
	a, b := GenerateRandomString(32), GenerateRandomString(32)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
	assert.Len(t, GenerateRandomString(7), 7)
}
