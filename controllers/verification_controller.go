package controllers

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Chukwwumaemmannuel233/kudora-backend/models"
	"github.com/Chukwwumaemmannuel233/kudora-backend/services"
)

// VerificationController handles phone verification and document upload endpoints
type VerificationController struct {
	verification *services.PhoneVerificationService
	intake       *services.DocumentIntake
	logger       *log.Logger
}

// NewVerificationController creates a new verification controller
func NewVerificationController(verification *services.PhoneVerificationService, intake *services.DocumentIntake) *VerificationController {
	return &VerificationController{
		verification: verification,
		intake:       intake,
		logger:       log.New(os.Stdout, "[VERIFY] ", log.LstdFlags),
	}
}

// SendSMSCode handles POST /api/buyers/send-sms-code
func (vc *VerificationController) SendSMSCode(c echo.Context) error {
	var req models.SendCodeRequest
	if err := c.Bind(&req); err != nil || req.Phone == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Phone is required",
		})
	}

	issue, err := vc.verification.IssueCode(c.Request().Context(), req.Phone)
	if err != nil {
		return respondError(c, err)
	}

	message := "Verification code sent successfully"
	if !issue.Delivered {
		message = "SMS delivery failed; use the debug code"
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: message,
		Data:    issue,
	})
}

// VerifySMSCode handles POST /api/buyers/verify-sms-code
func (vc *VerificationController) VerifySMSCode(c echo.Context) error {
	var req models.VerifyCodeRequest
	if err := c.Bind(&req); err != nil || req.Phone == "" || req.Code == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Phone and code are required",
		})
	}

	if err := vc.verification.VerifyCode(c.Request().Context(), req.Phone, req.Code); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Phone number verified successfully",
	})
}

// UploadVerificationImage handles POST /api/buyers/upload-verification-image
func (vc *VerificationController) UploadVerificationImage(c echo.Context) error {
	var req models.UploadImageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	var buyerID *primitive.ObjectID
	if req.BuyerID != "" {
		id, err := primitive.ObjectIDFromHex(req.BuyerID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Invalid buyer id",
			})
		}
		buyerID = &id
	}

	result, err := vc.intake.UploadVerificationImage(c.Request().Context(), req.ImageData, req.ImageType, buyerID)
	if err != nil {
		return respondError(c, err)
	}

	vc.logger.Printf("verification image stored: type=%s id=%s", req.ImageType, result.StorageID)

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Image uploaded successfully",
		Data:    result,
	})
}
