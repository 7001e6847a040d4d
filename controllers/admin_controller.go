package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/Chukwwumaemmannuel233/kudora-backend/middleware"
	"github.com/Chukwwumaemmannuel233/kudora-backend/models"
	"github.com/Chukwwumaemmannuel233/kudora-backend/repositories"
	"github.com/Chukwwumaemmannuel233/kudora-backend/services"
)

// AdminController handles admin authentication and buyer review endpoints
type AdminController struct {
	admins       repositories.AdminRepository
	review       *services.AdminReviewWorkflow
	verification *services.PhoneVerificationService
	logger       *log.Logger
}

// NewAdminController creates a new admin controller
func NewAdminController(admins repositories.AdminRepository, review *services.AdminReviewWorkflow, verification *services.PhoneVerificationService) *AdminController {
	return &AdminController{
		admins:       admins,
		review:       review,
		verification: verification,
		logger:       log.New(os.Stdout, "[ADMIN] ", log.LstdFlags),
	}
}

// Login handles POST /api/admin/login
func (ac *AdminController) Login(c echo.Context) error {
	var req models.AdminLoginRequest
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Email and password are required",
		})
	}

	admin, err := ac.admins.FindByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Success: false,
				Message: "Invalid credentials",
			})
		}
		return respondError(c, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Invalid credentials",
		})
	}

	token, err := middleware.GenerateAdminJWT(admin.ID.Hex(), admin.Email)
	if err != nil {
		ac.logger.Printf("failed to generate admin token: %v", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token": token,
			"admin": map[string]interface{}{
				"id":       admin.ID.Hex(),
				"email":    admin.Email,
				"fullName": admin.FullName,
			},
		},
	})
}

// GetAllBuyers handles GET /api/admin/buyers
func (ac *AdminController) GetAllBuyers(c echo.Context) error {
	buyers, err := ac.review.ListAll(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Buyers retrieved successfully",
		Data:    buyers,
	})
}

// ApproveBuyer handles PATCH /api/admin/buyers/:id/approve
func (ac *AdminController) ApproveBuyer(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid buyer id",
		})
	}

	var req models.ReviewDecisionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	if err := ac.review.Approve(c.Request().Context(), id, req.AdminNotes); err != nil {
		return respondError(c, err)
	}

	ac.logger.Printf("buyer approved: id=%s", id.Hex())

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Buyer approved successfully",
	})
}

// RejectBuyer handles PATCH /api/admin/buyers/:id/reject
func (ac *AdminController) RejectBuyer(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid buyer id",
		})
	}

	var req models.ReviewDecisionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	if err := ac.review.Reject(c.Request().Context(), id, req.AdminNotes); err != nil {
		return respondError(c, err)
	}

	ac.logger.Printf("buyer rejected: id=%s", id.Hex())

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Buyer rejected successfully",
	})
}

// UpdateVerificationStatus handles PATCH /api/admin/buyers/:id/verification-status
func (ac *AdminController) UpdateVerificationStatus(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid buyer id",
		})
	}

	var req models.VerificationStatusRequest
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Status is required",
		})
	}

	if err := ac.review.UpdateVerificationStatus(c.Request().Context(), id, req.Status, req.AdminNotes); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Verification status updated successfully",
	})
}

// ResendSMSCode handles POST /api/admin/buyers/:id/resend-sms-code
func (ac *AdminController) ResendSMSCode(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid buyer id",
		})
	}

	issue, err := ac.verification.ResendCode(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	ac.logger.Printf("verification code resent: buyer=%s phone=%s", id.Hex(), issue.Phone)

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Verification code resent successfully",
		Data:    issue,
	})
}
