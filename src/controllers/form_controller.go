package controllers

import (
	"github.com/gofiber/fiber/v2"

	"sgformer-backend/src/middleware"
	"sgformer-backend/src/models"
	"sgformer-backend/src/services/forms"
	"sgformer-backend/src/utils"
)

type FormController struct {
	forms *forms.Service
}

func NewFormController(svc *forms.Service) *FormController {
	return &FormController{forms: svc}
}

func paginationFrom(c *fiber.Ctx) models.PaginationParams {
	return models.PaginationParams{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
		Search: c.Query("search"),
	}.Normalize()
}

// ListForms godoc
// @Summary      List forms created by the current admin
// @Tags         forms
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "Page number" default(1)
// @Param        limit  query  int  false  "Number of items per page" default(10)
// @Success      200  {object}  models.PaginatedResponse
// @Failure      403  {object}  models.ErrorResponse
// @Router       /forms [get]
func (fc *FormController) ListForms(c *fiber.Ctx) error {
	res, err := fc.forms.ListOwned(c.UserContext(), middleware.CurrentIdentity(c), paginationFrom(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(res)
}

// ListPublicForms godoc
// @Summary      List forms open for registration
// @Tags         forms
// @Produce      json
// @Param        page   query  int  false  "Page number" default(1)
// @Param        limit  query  int  false  "Number of items per page" default(10)
// @Success      200  {object}  models.PaginatedResponse
// @Router       /forms/public [get]
func (fc *FormController) ListPublicForms(c *fiber.Ctx) error {
	res, err := fc.forms.ListPublic(c.UserContext(), paginationFrom(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(res)
}

// CreateForm godoc
// @Summary      Create a form
// @Tags         forms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body models.CreateFormRequest true "Form"
// @Success      201  {object}  models.Form
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Router       /forms [post]
func (fc *FormController) CreateForm(c *fiber.Ctx) error {
	var req models.CreateFormRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.HandleError(c, err)
	}
	form, err := fc.forms.Create(c.UserContext(), middleware.CurrentIdentity(c), req)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(form)
}

// GetForm godoc
// @Summary      Get a form with its submission count and option availability
// @Tags         forms
// @Produce      json
// @Param        id path string true "Form ID"
// @Success      200  {object}  models.FormDetail
// @Failure      404  {object}  models.ErrorResponse
// @Router       /forms/{id} [get]
func (fc *FormController) GetForm(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id", forms.MsgFormNotFound)
	if err != nil {
		return utils.HandleError(c, err)
	}
	detail, err := fc.forms.Get(c.UserContext(), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(detail)
}

// UpdateForm godoc
// @Summary      Update a form
// @Tags         forms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Form ID"
// @Param        body body models.UpdateFormRequest true "Changes"
// @Success      200  {object}  models.Form
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /forms/{id} [put]
func (fc *FormController) UpdateForm(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id", forms.MsgFormNotFound)
	if err != nil {
		return utils.HandleError(c, err)
	}
	var req models.UpdateFormRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.HandleError(c, err)
	}
	form, err := fc.forms.Update(c.UserContext(), middleware.CurrentIdentity(c), id, req)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(form)
}

// DeleteForm godoc
// @Summary      Delete a form and its submissions
// @Tags         forms
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Form ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /forms/{id} [delete]
func (fc *FormController) DeleteForm(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id", forms.MsgFormNotFound)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if err := fc.forms.Delete(c.UserContext(), middleware.CurrentIdentity(c), id); err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Form deleted successfully"})
}

// GetFormStats godoc
// @Summary      Registration statistics of a form
// @Tags         forms
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Form ID"
// @Success      200  {object}  models.FormStats
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /forms/{id}/stats [get]
func (fc *FormController) GetFormStats(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id", forms.MsgFormNotFound)
	if err != nil {
		return utils.HandleError(c, err)
	}
	stats, err := fc.forms.Stats(c.UserContext(), middleware.CurrentIdentity(c), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(stats)
}
