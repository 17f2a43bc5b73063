package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sportfit/internal/app/models/dto"
	"github.com/yigit/sportfit/internal/app/services"
	"github.com/yigit/sportfit/internal/middleware"
)

// UserController handles user registration and role management
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// CreateUser registers a user unless the email is already known
// @Summary Register a user
// @Description Creates the user if the email is new. A known email is answered with "user already exist" and nothing is written.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User information"
// @Success 201 {object} dto.APIResponse{data=dto.CreateUserResponse} "User created"
// @Success 200 {object} dto.APIResponse{data=dto.CreateUserResponse} "User already exists"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.userService.CreateUser(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if !resp.Created {
		ctx.JSON(http.StatusOK, dto.APIResponse{
			Success:   true,
			Message:   "user already exist",
			Data:      resp,
			Timestamp: time.Now(),
		})
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Message:   "user created",
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// ListUsers returns every user
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.User} "Users retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - admin only"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	users, err := c.userService.ListUsers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      users,
		Timestamp: time.Now(),
	})
}

// PromoteToAdmin grants the admin role
// @Summary Make a user admin
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.User} "Role updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - admin only"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/admin/{id} [patch]
func (c *UserController) PromoteToAdmin(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.userService.PromoteToAdmin(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      user,
		Timestamp: time.Now(),
	})
}

// PromoteToInstructor grants the instructor role and creates the instructor profile
// @Summary Make a user instructor
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.User} "Role updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - admin only"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/instructor/{id} [patch]
func (c *UserController) PromoteToInstructor(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.userService.PromoteToInstructor(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      user,
		Timestamp: time.Now(),
	})
}

// CheckAdmin tells the caller whether they are an admin
// @Summary Check admin role
// @Description Always false when the email is not the caller's
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email path string true "Email"
// @Success 200 {object} dto.APIResponse{data=dto.AdminCheckResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /user/admin/{email} [get]
func (c *UserController) CheckAdmin(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}

	admin, err := c.userService.IsAdmin(ctx.Request.Context(), caller, ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.AdminCheckResponse{Admin: admin},
		Timestamp: time.Now(),
	})
}

// CheckInstructor tells the caller whether they are an instructor
// @Summary Check instructor role
// @Description Always false when the email is not the caller's
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email path string true "Email"
// @Success 200 {object} dto.APIResponse{data=dto.InstructorCheckResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /user/instructor/{email} [get]
func (c *UserController) CheckInstructor(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}

	instructor, err := c.userService.IsInstructor(ctx.Request.Context(), caller, ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.InstructorCheckResponse{Instructor: instructor},
		Timestamp: time.Now(),
	})
}
