package controllers

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/Chukwwumaemmannuel233/kudora-backend/models"
	"github.com/Chukwwumaemmannuel233/kudora-backend/services"
)

// WaitlistController handles waitlist signup endpoints
type WaitlistController struct {
	waitlist *services.WaitlistService
	logger   *log.Logger
}

// NewWaitlistController creates a new waitlist controller
func NewWaitlistController(waitlist *services.WaitlistService) *WaitlistController {
	return &WaitlistController{
		waitlist: waitlist,
		logger:   log.New(os.Stdout, "[WAITLIST] ", log.LstdFlags),
	}
}

// Join handles POST /api/waitlist
func (wc *WaitlistController) Join(c echo.Context) error {
	var req models.JoinWaitlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	entry, err := wc.waitlist.Join(c.Request().Context(), req.Name, req.Email)
	if err != nil {
		return respondError(c, err)
	}

	wc.logger.Printf("waitlist signup: %s", entry.Email)

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "You're on the waitlist!",
		Data:    entry,
	})
}

// List handles GET /api/waitlist
func (wc *WaitlistController) List(c echo.Context) error {
	entries, err := wc.waitlist.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Waitlist retrieved successfully",
		Data:    entries,
	})
}
