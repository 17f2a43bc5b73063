package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/sportfit/internal/app/controllers"
	"github.com/yigit/sportfit/internal/middleware"
)

// Controllers groups the HTTP handlers mounted by SetupRouter
type Controllers struct {
	Auth       *controllers.AuthController
	User       *controllers.UserController
	Instructor *controllers.InstructorController
	Class      *controllers.ClassController
	Selection  *controllers.SelectionController
	Payment    *controllers.PaymentController
	Health     *controllers.HealthController
}

// SetupRouter configures all application routes. Paths are kept flat to match the
// existing web client.
func SetupRouter(router *gin.Engine, h Controllers, authMiddleware *middleware.AuthMiddleware) {
	// --- Public routes ---
	router.POST("/jwt", h.Auth.IssueToken)
	router.POST("/users", h.User.CreateUser)
	router.GET("/instructors", h.Instructor.ListInstructors)
	router.GET("/allApprovedClass", h.Class.ListApprovedClasses)
	router.GET("/health", h.Health.Health)

	// --- Authenticated routes ---
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.Authenticated())
	{
		authenticated.GET("/user/admin/:email", h.User.CheckAdmin)
		authenticated.GET("/user/instructor/:email", h.User.CheckInstructor)
		authenticated.GET("/myclass/:id", h.Class.GetClass)

		authenticated.POST("/selected", h.Selection.AddToCart)
		authenticated.POST("/createIntent", h.Payment.CreateIntent)
		authenticated.POST("/payments", h.Payment.ConfirmPayment)
	}

	// Owner-or-admin routes need the caller's role resolved
	withRole := router.Group("")
	withRole.Use(authMiddleware.WithRole())
	{
		withRole.DELETE("/myclass/:id", h.Class.DeleteClass)
		withRole.GET("/selectedClass", h.Selection.ListCart)
		withRole.DELETE("/selectedDelete/:id", h.Selection.RemoveFromCart)
		withRole.GET("/myenrolled", h.Payment.ListEnrolled)
		withRole.GET("/myPaymentHistory", h.Payment.PaymentHistory)
	}

	// --- Instructor routes ---
	instructor := router.Group("")
	instructor.Use(authMiddleware.RequireInstructor())
	{
		instructor.POST("/addclasses", h.Class.CreateClass)
		instructor.GET("/myclass", h.Class.ListMyClasses)
		instructor.PATCH("/update/class/:id", h.Class.UpdateClass)
	}

	// --- Admin routes ---
	admin := router.Group("")
	admin.Use(authMiddleware.RequireAdmin())
	{
		admin.GET("/users", h.User.ListUsers)
		admin.PATCH("/users/admin/:id", h.User.PromoteToAdmin)
		admin.PATCH("/users/instructor/:id", h.User.PromoteToInstructor)

		admin.GET("/allClass", h.Class.ListAllClasses)
		admin.PATCH("/allClass/approved/:id", h.Class.ApproveClass)
		admin.PATCH("/allClass/denied/:id", h.Class.DenyClass)
		admin.PATCH("/allClass/feedback/:id", h.Class.SetFeedback)
	}
}
