package routes

import (
	"github.com/gofiber/fiber/v2"

	"sgformer-backend/src/controllers"
	"sgformer-backend/src/middleware"
)

func userRoutes(router fiber.Router, ctrl *controllers.UserController, gate middleware.Resolver) {
	users := router.Group("/users", middleware.AuthJWT(gate), middleware.RequireAdmin())

	users.Get("/", ctrl.ListUsers)
	users.Get("/stats/overview", ctrl.GetOverview)
	users.Get("/:id", ctrl.GetUser)
	users.Put("/:id/role", ctrl.ChangeRole)
	users.Put("/:id/status", ctrl.SetStatus)
	users.Delete("/:id", ctrl.DeleteUser)
}
