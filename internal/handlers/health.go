package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse is the health endpoint payload
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Health returns a liveness handler.
func Health(serviceName string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, HealthResponse{
			Status:  "ok",
			Service: serviceName,
		})
	}
}
