package handler

import (
	"net/http"
	"time"

	"supplier-directory/internal/store"
	"supplier-directory/pkg/database"
	"supplier-directory/pkg/logger"
	"supplier-directory/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListParts returns the read-only part catalog, optionally narrowed by a
// case-insensitive name search
func ListParts(c echo.Context) error {
	log := logger.FromContext(c)
	term := c.QueryParam("search")
	prometheus.RecordSupplierOperation("list_parts")

	defer prometheus.TrackDBOperation("query")(time.Now())

	parts, err := store.New(database.GetDB()).Parts(term)
	if err != nil {
		log.Error("Failed to retrieve parts", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve parts",
		})
	}

	log.Info("Parts retrieved successfully",
		zap.Int("count", len(parts)),
		zap.String("search", term))
	return c.JSON(http.StatusOK, echo.Map{"parts": parts})
}
