package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports service liveness. Registered at / and /health so load
// balancers and humans get the same answer.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"service": "supplier-directory",
	})
}
