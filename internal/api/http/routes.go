// Package httpapi exposes the weather dashboard's JSON API.
package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jkalnins/weather-dashboard/internal/weather"
)

var validate = validator.New()

// ErrorHandler renders every handler error in the API's response envelope.
// Wire it into fiber.Config so unexpected errors surface as a generic 500
// with no internals leaked.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	api := app.Group("/api/weather")

	api.Get("/cities", func(c *fiber.Ctx) error {
		units := weather.ParseUnits(c.Query("units"))

		cities, err := service.ListCities(c.Context(), units)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch cities")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    cities,
		})
	})

	api.Get("/cities/:id", func(c *fiber.Ctx) error {
		id, err := parseCityID(c)
		if err != nil {
			return err
		}
		units := weather.ParseUnits(c.Query("units"))

		city, err := service.GetCity(c.Context(), id, units)
		if err != nil {
			if errors.Is(err, weather.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "City not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch city")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    city,
		})
	})

	api.Post("/cities", func(c *fiber.Ctx) error {
		var req addCityRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "cityName is required")
		}

		city, err := service.AddCity(c.Context(), req.CityName)
		if err != nil {
			switch {
			case errors.Is(err, weather.ErrCityNotFound):
				return fiber.NewError(fiber.StatusNotFound, "City not found")
			case errors.Is(err, weather.ErrCityExists):
				return fiber.NewError(fiber.StatusConflict, "City already exists")
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to add city")
			}
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"data":    city,
		})
	})

	api.Delete("/cities/:id", func(c *fiber.Ctx) error {
		id, err := parseCityID(c)
		if err != nil {
			return err
		}

		if err := service.DeleteCity(c.Context(), id); err != nil {
			if errors.Is(err, weather.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "City not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete city")
		}

		return c.SendStatus(fiber.StatusNoContent)
	})

	api.Put("/cities/:id/refresh", func(c *fiber.Ctx) error {
		id, err := parseCityID(c)
		if err != nil {
			return err
		}

		city, err := service.RefreshCity(c.Context(), id)
		if err != nil {
			if errors.Is(err, weather.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "City not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to refresh city weather")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    city,
		})
	})
}

// addCityRequest is the POST /cities payload.
type addCityRequest struct {
	CityName string `json:"cityName" validate:"required"`
}

func parseCityID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid city id")
	}
	return id, nil
}
