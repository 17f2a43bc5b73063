package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sportfit/internal/app/models/dto"
	"github.com/yigit/sportfit/internal/app/services"
	"github.com/yigit/sportfit/internal/middleware"
)

// SelectionController handles the student's cart
type SelectionController struct {
	selectionService services.SelectionService
}

// NewSelectionController creates a new SelectionController
func NewSelectionController(selectionService services.SelectionService) *SelectionController {
	return &SelectionController{
		selectionService: selectionService,
	}
}

// AddToCart adds an approved class to the caller's cart
// @Summary Select a class
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSelectionRequest true "Class to select"
// @Success 201 {object} dto.APIResponse{data=models.Selection}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 409 {object} dto.ErrorResponse "Already selected or class not approved"
// @Router /selected [post]
func (c *SelectionController) AddToCart(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}
	var req dto.CreateSelectionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	selection, err := c.selectionService.AddToCart(ctx.Request.Context(), caller, req.ClassID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      selection,
		Timestamp: time.Now(),
	})
}

// ListCart returns cart entries with their classes
// @Summary List selected classes
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param email query string false "Student email; defaults to the caller"
// @Success 200 {object} dto.APIResponse{data=[]models.Selection}
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /selectedClass [get]
func (c *SelectionController) ListCart(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}

	selections, err := c.selectionService.ListCart(ctx.Request.Context(), caller, ctx.Query("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      selections,
		Timestamp: time.Now(),
	})
}

// RemoveFromCart deletes a cart entry
// @Summary Remove a selected class
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param id path int true "Selection ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Selection removed"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Selection not found"
// @Router /selectedDelete/{id} [delete]
func (c *SelectionController) RemoveFromCart(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.selectionService.RemoveFromCart(ctx.Request.Context(), caller, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "selection removed",
		Timestamp: time.Now(),
	})
}
