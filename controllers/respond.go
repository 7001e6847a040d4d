package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Chukwwumaemmannuel233/kudora-backend/models"
	"github.com/Chukwwumaemmannuel233/kudora-backend/services"
)

// respondError maps service-layer errors onto the HTTP taxonomy.
func respondError(c echo.Context, err error) error {
	var missing *services.MissingFieldsError
	if errors.As(err, &missing) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Missing required fields",
			Data:    models.MissingFieldsResponse{MissingFields: missing.Fields},
		})
	}

	if conflict, ok := services.AsConflict(err); ok {
		return c.JSON(http.StatusConflict, models.Response{
			Success: false,
			Message: conflict.Error(),
			Data:    map[string]string{"field": conflict.Field},
		})
	}

	switch {
	case errors.Is(err, services.ErrConsentRequired),
		errors.Is(err, services.ErrCaptchaRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPhone),
		errors.Is(err, services.ErrInvalidOrExpiredCode):
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrRateLimited):
		return c.JSON(http.StatusTooManyRequests, models.Response{
			Success: false,
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrNotFound):
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Not found",
		})
	case errors.Is(err, services.ErrUploadFailed),
		errors.Is(err, services.ErrDeliveryFailed):
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: err.Error(),
		})
	default:
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Internal server error",
		})
	}
}
