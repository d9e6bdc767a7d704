package controller

import (
	"edu_portfolio_backend/internal/middleware"
	"edu_portfolio_backend/internal/service"
	"edu_portfolio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users *service.UserService
}

func NewUserController(users *service.UserService) *UserController {
	return &UserController{users: users}
}

// List godoc
// @Summary List users (admin)
// @Tags users
// @Produce json
// @Param role query string false "Role filter"
// @Success 200 {object} util.Response
// @Router /api/users [get]
func (ctrl *UserController) List(c *gin.Context) {
	users, err := ctrl.users.ListUsers(c.Query("role"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, users)
}

func (ctrl *UserController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := ctrl.users.GetUser(id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, user)
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.ProfileUpdate true "Profile fields"
// @Success 200 {object} util.Response
// @Router /api/users/profile [put]
func (ctrl *UserController) UpdateProfile(c *gin.Context) {
	var req service.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, err := ctrl.users.UpdateProfile(middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, user)
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateRole godoc
// @Summary Change a user's role (admin)
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body updateRoleRequest true "New role"
// @Success 200 {object} util.Response
// @Router /api/users/{id}/role [put]
func (ctrl *UserController) UpdateRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, err := ctrl.users.UpdateRole(middleware.CurrentUser(c), id, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, user)
}

func (ctrl *UserController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.users.DeleteUser(middleware.CurrentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, gin.H{"message": "User deleted"})
}

// Stats godoc
// @Summary Admin dashboard summary
// @Tags users
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/users/stats [get]
func (ctrl *UserController) Stats(c *gin.Context) {
	stats, err := ctrl.users.Stats()
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, stats)
}
