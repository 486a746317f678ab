// file: src/routes/submission_routes.go
package routes

import (
	"github.com/gofiber/fiber/v2"

	"sgformer-backend/src/controllers"
	"sgformer-backend/src/middleware"
)

func submissionRoutes(router fiber.Router, ctrl *controllers.SubmissionController, gate middleware.Resolver) {
	submissions := router.Group("/submissions")
	authed := middleware.AuthJWT(gate)

	// Create
	submissions.Post("/", middleware.OptionalAuth(gate), ctrl.CreateSubmission)

	// Read
	submissions.Get("/mine", authed, ctrl.GetMySubmissions)
	submissions.Get("/form/:formId", authed, ctrl.GetSubmissionsByForm)
	submissions.Get("/:formId/export", authed, ctrl.ExportSubmissions)
	submissions.Get("/:id/ticket", authed, ctrl.GetTicket)
	submissions.Get("/:id", authed, ctrl.GetSubmission)

	// Update
	submissions.Put("/:id", authed, ctrl.UpdateAttendance)
	submissions.Patch("/:id/attendance", authed, ctrl.UpdateAttendance)

	// Delete
	submissions.Delete("/:id", authed, ctrl.DeleteSubmission)
}
