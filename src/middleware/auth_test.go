package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sgformer-backend/src/apperror"
	"sgformer-backend/src/models"
)

type stubResolver map[string]*models.Identity

func (s stubResolver) Resolve(_ context.Context, credential string) (*models.Identity, error) {
	if id, ok := s[credential]; ok {
		return id, nil
	}
	return nil, apperror.Authentication("Invalid or expired token")
}

func newApp(gate Resolver) *fiber.App {
	app := fiber.New()
	who := func(c *fiber.Ctx) error {
		id := CurrentIdentity(c)
		if id == nil {
			return c.SendString("anonymous")
		}
		return c.SendString(id.Role + ":" + c.Locals("email").(string))
	}
	app.Get("/private", AuthJWT(gate), who)
	app.Get("/admin", AuthJWT(gate), RequireAdmin(), who)
	app.Get("/open", OptionalAuth(gate), who)
	return app
}

func call(t *testing.T, app *fiber.App, path, header string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	buf := make([]byte, 256)
	n, _ := resp.Body.Read(buf)
	return resp.StatusCode, string(buf[:n])
}

func TestAuthMiddleware(t *testing.T) {
	gate := stubResolver{
		"Bearer admin": {ID: primitive.NewObjectID(), Email: "a@example.com", Role: models.RoleAdmin},
		"Bearer user":  {ID: primitive.NewObjectID(), Email: "u@example.com", Role: models.RoleUser},
	}
	app := newApp(gate)

	status, body := call(t, app, "/private", "Bearer user")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "user:u@example.com", body)

	status, _ = call(t, app, "/private", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, app, "/private", "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, app, "/admin", "Bearer user")
	assert.Equal(t, http.StatusForbidden, status)

	status, body = call(t, app, "/admin", "Bearer admin")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "admin:a@example.com", body)

	_, body = call(t, app, "/open", "Bearer nope")
	assert.Equal(t, "anonymous", body)
	_, body = call(t, app, "/open", "Bearer admin")
	assert.Equal(t, "admin:a@example.com", body)
}
