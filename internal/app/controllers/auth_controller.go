package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sportfit/internal/app/models/dto"
	"github.com/yigit/sportfit/internal/app/services"
	"github.com/yigit/sportfit/internal/middleware"
)

// AuthController handles token issuance
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// IssueToken handles access token requests
// @Summary Issue an access token
// @Description Signs a bearer token for a registered user. Accounts registered with a password must send it.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "Caller identity"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Token issued"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unknown user or wrong password"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /jwt [post]
func (c *AuthController) IssueToken(ctx *gin.Context) {
	var req dto.TokenRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	token, err := c.authService.IssueToken(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      token,
		Timestamp: time.Now(),
	})
}
