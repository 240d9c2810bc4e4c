package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sneaker-shop/models"
	"sneaker-shop/services"
)

type UserController struct {
	userService *services.UserService
}

func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// @Summary Get all users
// @Description List all users without password fields (Manager)
// @Tags Manager - Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /users [get]
func (ctrl *UserController) GetAllUsers(c *gin.Context) {
	users, err := ctrl.userService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Server error",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Users retrieved",
		Data:    users,
	})
}

// @Summary Update user
// @Description Partially update a user's name, email or role (Manager)
// @Tags Manager - Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body models.UpdateUserRequest true "Fields to update"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [put]
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	user, err := ctrl.userService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Message: "User not found",
			})
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Message: "Email already exists",
			})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Success: false,
				Message: "Server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "User updated successfully",
		Data:    user,
	})
}

// @Summary Delete user
// @Description Delete a user; the last manager account cannot be removed (Manager)
// @Tags Manager - Users
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [delete]
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	if err := ctrl.userService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Message: "User not found",
			})
		case errors.Is(err, services.ErrLastManager):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Message: "Cannot delete the last manager",
			})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Success: false,
				Message: "Server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "User removed",
	})
}
