package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"sgformer-backend/src/models"
	"sgformer-backend/src/services/auth"
	"sgformer-backend/src/utils"
)

const identityKey = "identity"

// Resolver turns an Authorization header into an identity.
type Resolver interface {
	Resolve(ctx context.Context, credential string) (*models.Identity, error)
}

func attach(c *fiber.Ctx, id *models.Identity) {
	c.Locals(identityKey, id)
	c.Locals("userId", id.ID.Hex())
	c.Locals("email", id.Email)
	c.Locals("role", id.Role)
}

// AuthJWT requires a valid session JWT or Google ID token.
func AuthJWT(gate Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return utils.Fail(c, fiber.StatusUnauthorized, auth.MsgMissingToken)
		}
		id, err := gate.Resolve(c.UserContext(), header)
		if err != nil {
			return utils.HandleError(c, err)
		}
		attach(c, id)
		return c.Next()
	}
}

// OptionalAuth attaches the identity when a credential is sent and valid,
// and lets the request through anonymously otherwise.
func OptionalAuth(gate Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Next()
		}
		if id, err := gate.Resolve(c.UserContext(), header); err == nil {
			attach(c, id)
		}
		return c.Next()
	}
}

// RequireAdmin must run after AuthJWT.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := auth.RequireAdmin(CurrentIdentity(c)); err != nil {
			return utils.HandleError(c, err)
		}
		return c.Next()
	}
}

// CurrentIdentity returns nil for anonymous requests.
func CurrentIdentity(c *fiber.Ctx) *models.Identity {
	id, _ := c.Locals(identityKey).(*models.Identity)
	return id
}
