package controllers

import (
	"github.com/gofiber/fiber/v2"

	"sgformer-backend/src/middleware"
	"sgformer-backend/src/models"
	"sgformer-backend/src/services/users"
	"sgformer-backend/src/utils"
)

type UserController struct {
	users *users.Service
}

func NewUserController(svc *users.Service) *UserController {
	return &UserController{users: svc}
}

// ListUsers godoc
// @Summary      List users with their form and submission counts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "Page number" default(1)
// @Param        limit   query  int     false  "Number of items per page" default(10)
// @Param        search  query  string  false  "Name or email"
// @Param        role    query  string  false  "admin, user or all"
// @Param        status  query  string  false  "active, inactive or all"
// @Success      200  {object}  models.PaginatedResponse
// @Failure      403  {object}  models.ErrorResponse
// @Router       /users [get]
func (uc *UserController) ListUsers(c *fiber.Ctx) error {
	params := models.UserFilterParams{
		PaginationParams: paginationFrom(c),
		Role:             c.Query("role"),
		Status:           c.Query("status"),
	}
	res, err := uc.users.List(c.UserContext(), middleware.CurrentIdentity(c), params)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(res)
}

// GetOverview godoc
// @Summary      System overview
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.SystemOverview
// @Failure      403  {object}  models.ErrorResponse
// @Router       /users/stats/overview [get]
func (uc *UserController) GetOverview(c *fiber.Ctx) error {
	res, err := uc.users.Overview(c.UserContext(), middleware.CurrentIdentity(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(res)
}

// GetUser godoc
// @Summary      User detail with recent activity
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200  {object}  models.UserDetail
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /users/{id} [get]
func (uc *UserController) GetUser(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id", users.MsgNotFound)
	if err != nil {
		return utils.HandleError(c, err)
	}
	res, err := uc.users.Get(c.UserContext(), middleware.CurrentIdentity(c), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(res)
}

// ChangeRole godoc
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        body body models.RoleRequest true "Role"
// @Success      200  {object}  models.User
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /users/{id}/role [put]
func (uc *UserController) ChangeRole(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id", users.MsgNotFound)
	if err != nil {
		return utils.HandleError(c, err)
	}
	var req models.RoleRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.HandleError(c, err)
	}
	u, err := uc.users.ChangeRole(c.UserContext(), middleware.CurrentIdentity(c), id, req.Role)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(u)
}

// SetStatus godoc
// @Summary      Activate or deactivate a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        body body models.StatusRequest true "Status"
// @Success      200  {object}  models.User
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /users/{id}/status [put]
func (uc *UserController) SetStatus(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id", users.MsgNotFound)
	if err != nil {
		return utils.HandleError(c, err)
	}
	var req models.StatusRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.HandleError(c, err)
	}
	u, err := uc.users.SetStatus(c.UserContext(), middleware.CurrentIdentity(c), id, *req.IsActive)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(u)
}

// DeleteUser godoc
// @Summary      Delete a user with their forms and submissions
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /users/{id} [delete]
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id", users.MsgNotFound)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if err := uc.users.Delete(c.UserContext(), middleware.CurrentIdentity(c), id); err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
