package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Chukwwumaemmannuel233/kudora-backend/controllers"
	"github.com/Chukwwumaemmannuel233/kudora-backend/middleware"
)

// RegisterAdminRoutes sets up admin authentication and review routes
func RegisterAdminRoutes(e *echo.Echo, adminController *controllers.AdminController) {
	admin := e.Group("/api/admin")

	// Login is the only unauthenticated admin route
	admin.POST("/login", adminController.Login)

	protected := admin.Group("")
	protected.Use(middleware.AdminJWTMiddleware())
	protected.Use(middleware.RequireAdmin())

	protected.GET("/buyers", adminController.GetAllBuyers)
	protected.PATCH("/buyers/:id/approve", adminController.ApproveBuyer)
	protected.PATCH("/buyers/:id/reject", adminController.RejectBuyer)
	protected.PATCH("/buyers/:id/verification-status", adminController.UpdateVerificationStatus)
	protected.POST("/buyers/:id/resend-sms-code", adminController.ResendSMSCode)
}
