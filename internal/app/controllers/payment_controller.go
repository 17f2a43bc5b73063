package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sportfit/internal/app/models/dto"
	"github.com/yigit/sportfit/internal/app/services"
	"github.com/yigit/sportfit/internal/middleware"
)

// PaymentController handles payment intents, confirmations and payment history
type PaymentController struct {
	paymentService    services.PaymentService
	enrollmentService services.EnrollmentService
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(paymentService services.PaymentService, enrollmentService services.EnrollmentService) *PaymentController {
	return &PaymentController{
		paymentService:    paymentService,
		enrollmentService: enrollmentService,
	}
}

// CreateIntent asks the payment processor for a client secret
// @Summary Create a payment intent
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateIntentRequest true "Price to charge"
// @Success 200 {object} dto.APIResponse{data=dto.CreateIntentResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid price"
// @Failure 502 {object} dto.ErrorResponse "Payment processor error"
// @Router /createIntent [post]
func (c *PaymentController) CreateIntent(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}
	var req dto.CreateIntentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	intent, err := c.paymentService.CreateIntent(ctx.Request.Context(), caller, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      intent,
		Timestamp: time.Now(),
	})
}

// ConfirmPayment records a confirmed payment and enrolls the caller
// @Summary Confirm a payment
// @Description Consumes a seat, counts the student for the instructor, stores the payment and clears the cart entry in one transaction. Repeating a confirmation returns the stored payment with replayed=true.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classId query int false "Class ID; takes precedence over the body"
// @Param request body dto.PaymentConfirmationRequest true "Confirmed payment"
// @Success 201 {object} dto.APIResponse{data=models.EnrollmentResult} "Enrollment recorded"
// @Success 200 {object} dto.APIResponse{data=models.EnrollmentResult} "Payment already recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Selection belongs to another student"
// @Failure 404 {object} dto.ErrorResponse "Selection or class not found"
// @Failure 409 {object} dto.ErrorResponse "No seats available"
// @Router /payments [post]
func (c *PaymentController) ConfirmPayment(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}
	classID, ok := middleware.ParseOptionalIDQuery(ctx, "classId")
	if !ok {
		return
	}
	var req dto.PaymentConfirmationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.enrollmentService.ConfirmPayment(ctx.Request.Context(), caller, classID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	ctx.JSON(status, dto.APIResponse{
		Success:   true,
		Data:      result,
		Timestamp: time.Now(),
	})
}

// ListEnrolled returns the classes the caller paid for
// @Summary List enrolled classes
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param email query string false "Student email; defaults to the caller"
// @Success 200 {object} dto.APIResponse{data=[]models.PaymentRecord}
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /myenrolled [get]
func (c *PaymentController) ListEnrolled(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}

	payments, err := c.paymentService.ListEnrolled(ctx.Request.Context(), caller, ctx.Query("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      payments,
		Timestamp: time.Now(),
	})
}

// PaymentHistory returns the caller's payments, newest first
// @Summary Payment history
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param email query string false "Student email; defaults to the caller"
// @Success 200 {object} dto.APIResponse{data=[]models.PaymentRecord}
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /myPaymentHistory [get]
func (c *PaymentController) PaymentHistory(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}

	payments, err := c.paymentService.PaymentHistory(ctx.Request.Context(), caller, ctx.Query("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      payments,
		Timestamp: time.Now(),
	})
}
