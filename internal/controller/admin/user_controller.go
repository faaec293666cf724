package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hqdat/examhub/internal/controller"
	"github.com/hqdat/examhub/internal/dto"
	"github.com/hqdat/examhub/internal/service"
	"github.com/rs/zerolog/log"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

// CreateUser godoc
// @Summary (Admin) Create a user
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Param user body dto.UserCreateRequest true "User data"
// @Success 201 {object} dto.UserResponse
// @Failure 422 {object} dto.ErrorResponse "Validation failed or identity already taken"
// @Router /admin/users [post]
// @Security BearerAuth
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.UserCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.userService.CreateUser(req)
	if err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("Admin CreateUser: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetAllUsers godoc
// @Summary (Admin) List all users
// @Tags Admin - Users
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Router /admin/users [get]
// @Security BearerAuth
func (c *UserController) GetAllUsers(ctx *gin.Context) {
	resp, err := c.userService.GetAllUsers()
	if err != nil {
		log.Error().Err(err).Msg("Admin GetAllUsers: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetUser godoc
// @Summary (Admin) Get a user
// @Tags Admin - Users
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{user_id} [get]
// @Security BearerAuth
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "user_id")
	if !ok {
		return
	}
	resp, err := c.userService.GetUser(id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateUser godoc
// @Summary (Admin) Update a user
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param user body dto.UserCreateRequest true "New user data"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /admin/users/{user_id} [put]
// @Security BearerAuth
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "user_id")
	if !ok {
		return
	}
	var req dto.UserCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.userService.UpdateUser(id, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteUser godoc
// @Summary (Admin) Delete a user and their results
// @Tags Admin - Users
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{user_id} [delete]
// @Security BearerAuth
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "user_id")
	if !ok {
		return
	}
	if err := c.userService.DeleteUser(id); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
