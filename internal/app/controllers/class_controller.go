package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sportfit/internal/app/models/dto"
	"github.com/yigit/sportfit/internal/app/services"
	"github.com/yigit/sportfit/internal/middleware"
)

// ClassController handles class offerings and their review
type ClassController struct {
	classService services.ClassService
}

// NewClassController creates a new ClassController
func NewClassController(classService services.ClassService) *ClassController {
	return &ClassController{
		classService: classService,
	}
}

// CreateClass submits a new class for review
// @Summary Create a class
// @Description The class is created pending with every seat available
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClassRequest true "Class information"
// @Success 201 {object} dto.APIResponse{data=models.ClassOffering} "Class created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - instructor only"
// @Router /addclasses [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}
	var req dto.CreateClassRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	class, err := c.classService.CreateClass(ctx.Request.Context(), caller, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      class,
		Timestamp: time.Now(),
	})
}

// ListMyClasses returns the caller's classes
// @Summary List my classes
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param email query string false "Instructor email, must be the caller's"
// @Success 200 {object} dto.APIResponse{data=[]models.ClassOffering}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /myclass [get]
func (c *ClassController) ListMyClasses(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}

	classes, err := c.classService.ListMyClasses(ctx.Request.Context(), caller, ctx.Query("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      classes,
		Timestamp: time.Now(),
	})
}

// GetClass returns one class
// @Summary Get a class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.ClassOffering}
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /myclass/{id} [get]
func (c *ClassController) GetClass(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	class, err := c.classService.GetClass(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      class,
		Timestamp: time.Now(),
	})
}

// UpdateClass edits a class the caller teaches
// @Summary Update a class
// @Description available_seats sets the capacity; free seats follow as capacity minus enrolled
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID" Format(int64) minimum(1)
// @Param request body dto.UpdateClassRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.ClassOffering}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - not the class instructor"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 409 {object} dto.ErrorResponse "Capacity below current enrollment"
// @Router /update/class/{id} [patch]
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateClassRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	class, err := c.classService.UpdateClass(ctx.Request.Context(), caller, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      class,
		Timestamp: time.Now(),
	})
}

// DeleteClass removes a class
// @Summary Delete a class
// @Description Allowed for the class instructor and admins
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Class deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /myclass/{id} [delete]
func (c *ClassController) DeleteClass(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.classService.DeleteClass(ctx.Request.Context(), caller, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "class deleted",
		Timestamp: time.Now(),
	})
}

// ListAllClasses returns classes in every status
// @Summary List all classes
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ClassOffering}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - admin only"
// @Router /allClass [get]
func (c *ClassController) ListAllClasses(ctx *gin.Context) {
	classes, err := c.classService.ListAllClasses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      classes,
		Timestamp: time.Now(),
	})
}

// ListApprovedClasses returns the public catalog
// @Summary List approved classes
// @Description Approved classes only, most enrolled first
// @Tags classes
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.ClassOffering}
// @Router /allApprovedClass [get]
func (c *ClassController) ListApprovedClasses(ctx *gin.Context) {
	classes, err := c.classService.ListApprovedClasses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      classes,
		Timestamp: time.Now(),
	})
}

// ApproveClass publishes a class
// @Summary Approve a class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.ClassOffering}
// @Failure 403 {object} dto.ErrorResponse "Forbidden - admin only"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 409 {object} dto.ErrorResponse "Illegal status transition"
// @Router /allClass/approved/{id} [patch]
func (c *ClassController) ApproveClass(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	class, err := c.classService.Approve(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      class,
		Timestamp: time.Now(),
	})
}

// DenyClass rejects a class
// @Summary Deny a class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.ClassOffering}
// @Failure 403 {object} dto.ErrorResponse "Forbidden - admin only"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 409 {object} dto.ErrorResponse "Illegal status transition"
// @Router /allClass/denied/{id} [patch]
func (c *ClassController) DenyClass(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	class, err := c.classService.Deny(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      class,
		Timestamp: time.Now(),
	})
}

// SetFeedback stores admin feedback on a class
// @Summary Give feedback on a class
// @Description Feedback is read from the query string, or from a JSON body when the query is empty
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID" Format(int64) minimum(1)
// @Param feedback query string false "Feedback text"
// @Param request body dto.ClassFeedbackRequest false "Feedback text"
// @Success 200 {object} dto.APIResponse{data=models.ClassOffering}
// @Failure 403 {object} dto.ErrorResponse "Forbidden - admin only"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /allClass/feedback/{id} [patch]
func (c *ClassController) SetFeedback(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	feedback, hasQuery := ctx.GetQuery("feedback")
	if !hasQuery && ctx.Request.ContentLength > 0 {
		var req dto.ClassFeedbackRequest
		if !middleware.BindJSON(ctx, &req) {
			return
		}
		feedback = req.Feedback
	}

	class, err := c.classService.SetFeedback(ctx.Request.Context(), id, feedback)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      class,
		Timestamp: time.Now(),
	})
}
