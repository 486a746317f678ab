package routes

import (
	"github.com/gofiber/fiber/v2"

	"sgformer-backend/src/controllers"
	"sgformer-backend/src/middleware"
)

func authRoutes(router fiber.Router, ctrl *controllers.AuthController, gate middleware.Resolver) {
	auth := router.Group("/auth")

	auth.Post("/google", ctrl.GoogleSignIn)
	auth.Get("/google/url", ctrl.GoogleURL)
	auth.Get("/google/callback", ctrl.GoogleCallback)
	auth.Post("/login", ctrl.Login)

	auth.Post("/logout", middleware.AuthJWT(gate), ctrl.Logout)
	auth.Get("/me", middleware.AuthJWT(gate), ctrl.Me)
	auth.Get("/admin-check", middleware.AuthJWT(gate), middleware.RequireAdmin(), ctrl.AdminCheck)
}
