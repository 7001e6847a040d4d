package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Chukwwumaemmannuel233/kudora-backend/controllers"
	"github.com/Chukwwumaemmannuel233/kudora-backend/middleware"
)

// RegisterWaitlistRoutes sets up the pre-launch waitlist routes.
// Joining is public; reading the list requires an admin token.
func RegisterWaitlistRoutes(e *echo.Echo, waitlistController *controllers.WaitlistController) {
	e.POST("/api/waitlist", waitlistController.Join)

	protected := e.Group("/api/waitlist")
	protected.Use(middleware.AdminJWTMiddleware())
	protected.Use(middleware.RequireAdmin())
	protected.GET("", waitlistController.List)
}
