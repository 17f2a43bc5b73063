package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sportfit/internal/app/models/dto"
	"github.com/yigit/sportfit/internal/app/services"
	"github.com/yigit/sportfit/internal/middleware"
)

// InstructorController handles instructor listings
type InstructorController struct {
	instructorService services.InstructorService
}

// NewInstructorController creates a new InstructorController
func NewInstructorController(instructorService services.InstructorService) *InstructorController {
	return &InstructorController{
		instructorService: instructorService,
	}
}

// ListInstructors returns instructor profiles, most students first
// @Summary List instructors
// @Tags instructors
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.InstructorProfile} "Instructors retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors [get]
func (c *InstructorController) ListInstructors(ctx *gin.Context) {
	instructors, err := c.instructorService.ListInstructors(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      instructors,
		Timestamp: time.Now(),
	})
}
