package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"sgformer-backend/src/middleware"
	"sgformer-backend/src/models"
	"sgformer-backend/src/services/forms"
	"sgformer-backend/src/services/submission"
	"sgformer-backend/src/utils"
)

type SubmissionController struct {
	submissions *submission.Service
}

func NewSubmissionController(svc *submission.Service) *SubmissionController {
	return &SubmissionController{submissions: svc}
}

func metadataFrom(c *fiber.Ctx) *models.SubmissionMetadata {
	return &models.SubmissionMetadata{
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
		Referrer:  c.Get(fiber.HeaderReferer),
	}
}

// CreateSubmission godoc
// @Summary      Register for a form
// @Description  Anonymous submissions are accepted only when the form allows them
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        body body models.CreateSubmissionRequest true "Answers"
// @Success      201  {object}  models.Submission
// @Failure      400  {object}  models.ErrorResponse
// @Failure      401  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /submissions [post]
func (sc *SubmissionController) CreateSubmission(c *fiber.Ctx) error {
	var req models.CreateSubmissionRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.HandleError(c, err)
	}
	sub, err := sc.submissions.Create(c.UserContext(), middleware.CurrentIdentity(c), req, metadataFrom(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sub)
}

// GetMySubmissions godoc
// @Summary      Submissions of the current user
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.SubmissionWithForm
// @Failure      401  {object}  models.ErrorResponse
// @Router       /submissions/mine [get]
func (sc *SubmissionController) GetMySubmissions(c *fiber.Ctx) error {
	rows, err := sc.submissions.ListMine(c.UserContext(), middleware.CurrentIdentity(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(rows)
}

// GetSubmissionsByForm godoc
// @Summary      Submissions of a form
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        formId path string true "Form ID"
// @Success      200  {array}   models.Submission
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /submissions/form/{formId} [get]
func (sc *SubmissionController) GetSubmissionsByForm(c *fiber.Ctx) error {
	formID, err := utils.ParamID(c, "formId", forms.MsgFormNotFound)
	if err != nil {
		return utils.HandleError(c, err)
	}
	rows, err := sc.submissions.ListByForm(c.UserContext(), middleware.CurrentIdentity(c), formID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(rows)
}

// GetSubmission godoc
// @Summary      Get a submission
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Submission ID"
// @Success      200  {object}  models.Submission
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /submissions/{id} [get]
func (sc *SubmissionController) GetSubmission(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id", submission.MsgNotFound)
	if err != nil {
		return utils.HandleError(c, err)
	}
	sub, err := sc.submissions.Get(c.UserContext(), middleware.CurrentIdentity(c), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(sub)
}

// GetTicket godoc
// @Summary      Ticket with barcode payload and QR code
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Submission ID"
// @Success      200  {object}  models.Ticket
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /submissions/{id}/ticket [get]
func (sc *SubmissionController) GetTicket(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id", submission.MsgNotFound)
	if err != nil {
		return utils.HandleError(c, err)
	}
	ticket, err := sc.submissions.Ticket(c.UserContext(), middleware.CurrentIdentity(c), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(ticket)
}

// UpdateAttendance godoc
// @Summary      Set or clear the attended flag
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Submission ID"
// @Param        body body models.AttendanceRequest true "Attendance"
// @Success      200  {object}  models.Submission
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /submissions/{id}/attendance [patch]
// @Router       /submissions/{id} [put]
func (sc *SubmissionController) UpdateAttendance(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id", submission.MsgNotFound)
	if err != nil {
		return utils.HandleError(c, err)
	}
	var req models.AttendanceRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.HandleError(c, err)
	}
	sub, err := sc.submissions.SetAttendance(c.UserContext(), middleware.CurrentIdentity(c), id, *req.Attended)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(sub)
}

// DeleteSubmission godoc
// @Summary      Delete a submission
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Submission ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /submissions/{id} [delete]
func (sc *SubmissionController) DeleteSubmission(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id", submission.MsgNotFound)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if err := sc.submissions.Delete(c.UserContext(), middleware.CurrentIdentity(c), id); err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Submission deleted successfully"})
}

// ExportSubmissions godoc
// @Summary      Export a form's submissions
// @Tags         submissions
// @Produce      text/csv
// @Produce      json
// @Security     BearerAuth
// @Param        formId  path   string  true   "Form ID"
// @Param        format  query  string  false  "csv or json" default(csv)
// @Success      200
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /submissions/{formId}/export [get]
func (sc *SubmissionController) ExportSubmissions(c *fiber.Ctx) error {
	formID, err := utils.ParamID(c, "formId", forms.MsgFormNotFound)
	if err != nil {
		return utils.HandleError(c, err)
	}
	out, err := sc.submissions.Export(c.UserContext(), middleware.CurrentIdentity(c), formID, c.Query("format"))
	if err != nil {
		return utils.HandleError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", out.FileName))
	if out.Body == nil {
		return c.JSON(out.Rows)
	}
	c.Set(fiber.HeaderContentType, out.ContentType)
	return c.Send(out.Body)
}
