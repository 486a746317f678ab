package controllers

import (
	"github.com/gofiber/fiber/v2"

	"sgformer-backend/src/middleware"
	"sgformer-backend/src/models"
	"sgformer-backend/src/services/checkin"
	"sgformer-backend/src/services/forms"
	"sgformer-backend/src/utils"
)

type CheckInController struct {
	forms   *forms.Service
	matcher *checkin.Matcher
}

func NewCheckInController(formSvc *forms.Service, matcher *checkin.Matcher) *CheckInController {
	return &CheckInController{forms: formSvc, matcher: matcher}
}

// ScanTicket godoc
// @Summary      Check an attendee in from a scanned ticket
// @Tags         checkin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event form ID"
// @Param        body body models.ScanRequest true "Scanned barcode text"
// @Success      200  {object}  models.CheckInResult
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /forms/{id}/checkin [post]
func (cc *CheckInController) ScanTicket(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id", forms.MsgFormNotFound)
	if err != nil {
		return utils.HandleError(c, err)
	}
	var req models.ScanRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.HandleError(c, err)
	}
	form, err := cc.forms.LoadOwned(c.UserContext(), middleware.CurrentIdentity(c), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	res, err := cc.matcher.Scan(c.UserContext(), form.ID, req.Data)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(res)
}
