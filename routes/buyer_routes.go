package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Chukwwumaemmannuel233/kudora-backend/controllers"
)

// RegisterBuyerRoutes sets up buyer signup and verification routes.
// These are public; phone verification happens before or after signup.
func RegisterBuyerRoutes(e *echo.Echo, buyerController *controllers.BuyerController, verificationController *controllers.VerificationController) {
	buyers := e.Group("/api/buyers")

	buyers.POST("/signup", buyerController.Signup)
	buyers.POST("/check-email", buyerController.CheckEmail)
	buyers.POST("/check-phone", buyerController.CheckPhone)
	buyers.GET("/:id/profile", buyerController.GetProfile)

	buyers.POST("/send-sms-code", verificationController.SendSMSCode)
	buyers.POST("/verify-sms-code", verificationController.VerifySMSCode)
	buyers.POST("/upload-verification-image", verificationController.UploadVerificationImage)
}
