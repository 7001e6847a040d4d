package controllers

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Chukwwumaemmannuel233/kudora-backend/models"
	"github.com/Chukwwumaemmannuel233/kudora-backend/services"
	"github.com/Chukwwumaemmannuel233/kudora-backend/utils"
)

// BuyerController handles buyer registration and profile endpoints
type BuyerController struct {
	onboarding *services.BuyerOnboarding
	registry   *services.IdentityRegistry
	logger     *log.Logger
}

// NewBuyerController creates a new buyer controller
func NewBuyerController(onboarding *services.BuyerOnboarding, registry *services.IdentityRegistry) *BuyerController {
	return &BuyerController{
		onboarding: onboarding,
		registry:   registry,
		logger:     log.New(os.Stdout, "[BUYER] ", log.LstdFlags),
	}
}

// Signup handles POST /api/buyers/signup
func (bc *BuyerController) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	summary, err := bc.onboarding.Signup(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err)
	}

	bc.logger.Printf("buyer signup successful: id=%s email=%s status=%s", summary.ID.Hex(), summary.Email, summary.Status)

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Signup successful! Your account is being reviewed.",
		Data:    summary,
	})
}

// CheckEmail handles POST /api/buyers/check-email
func (bc *BuyerController) CheckEmail(c echo.Context) error {
	var req models.CheckEmailRequest
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Email is required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email format",
		})
	}

	available, err := bc.registry.IsEmailAvailable(c.Request().Context(), email)
	if err != nil {
		return respondError(c, err)
	}
	if !available {
		return c.JSON(http.StatusConflict, models.Response{
			Success: false,
			Message: "Email already exists",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Email is available",
	})
}

// CheckPhone handles POST /api/buyers/check-phone
func (bc *BuyerController) CheckPhone(c echo.Context) error {
	var req models.CheckPhoneRequest
	if err := c.Bind(&req); err != nil || req.Phone == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Phone is required",
		})
	}

	phone, err := utils.SanitizePhone(req.Phone)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid phone number format",
		})
	}

	available, err := bc.registry.IsPhoneAvailable(c.Request().Context(), phone)
	if err != nil {
		return respondError(c, err)
	}
	if !available {
		return c.JSON(http.StatusConflict, models.Response{
			Success: false,
			Message: "Phone already exists",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Phone is available",
	})
}

// GetProfile handles GET /api/buyers/:id/profile
func (bc *BuyerController) GetProfile(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid buyer id",
		})
	}

	buyer, err := bc.onboarding.GetProfile(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Profile retrieved successfully",
		Data:    buyer,
	})
}
