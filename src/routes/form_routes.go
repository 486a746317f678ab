package routes

import (
	"github.com/gofiber/fiber/v2"

	"sgformer-backend/src/controllers"
	"sgformer-backend/src/middleware"
)

func formRoutes(router fiber.Router, ctrl *controllers.FormController, checkIn *controllers.CheckInController, gate middleware.Resolver) {
	forms := router.Group("/forms")
	admin := []fiber.Handler{middleware.AuthJWT(gate), middleware.RequireAdmin()}

	forms.Get("/public", ctrl.ListPublicForms)
	forms.Get("/", append(admin, ctrl.ListForms)...)
	forms.Post("/", append(admin, ctrl.CreateForm)...)
	forms.Get("/:id", middleware.OptionalAuth(gate), ctrl.GetForm)
	forms.Put("/:id", append(admin, ctrl.UpdateForm)...)
	forms.Delete("/:id", append(admin, ctrl.DeleteForm)...)
	forms.Get("/:id/stats", append(admin, ctrl.GetFormStats)...)
	forms.Post("/:id/checkin", append(admin, checkIn.ScanTicket)...)
}
