package handler

import (
	"errors"
	"net/http"
	"time"

	"supplier-directory/internal/directory"
	"supplier-directory/pkg/database"
	"supplier-directory/pkg/logger"
	"supplier-directory/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DirectoryNameRequest carries a category or tag name.
type DirectoryNameRequest struct {
	Name string `json:"name"`
}

// ListCategories returns the category directory with usage counts
func ListCategories(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing categories")
	prometheus.RecordDirectoryOperation("category", "list")

	defer prometheus.TrackDBOperation("query")(time.Now())

	categories, err := directory.Categories(database.GetDB())
	if err != nil {
		log.Error("Failed to retrieve categories", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve categories",
		})
	}

	log.Info("Categories retrieved successfully", zap.Int("count", len(categories)))
	return c.JSON(http.StatusOK, echo.Map{"categories": categories})
}

// CategoryNames returns the plain list of category names. Kept for
// compatibility with the original suppliers API.
func CategoryNames(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordDirectoryOperation("category", "list")

	defer prometheus.TrackDBOperation("query")(time.Now())

	categories, err := directory.Categories(database.GetDB())
	if err != nil {
		log.Error("Failed to retrieve categories", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve categories",
		})
	}

	names := make([]string, 0, len(categories))
	for _, entry := range categories {
		names = append(names, entry.Name)
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": names})
}

// CreateCategory validates a new category name. The directory is derived
// from supplier records, so the name becomes visible once a supplier uses it.
func CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Adding category")
	prometheus.RecordDirectoryOperation("category", "add")

	var req DirectoryNameRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	entry, err := directory.AddCategory(database.GetDB(), req.Name)
	if err != nil {
		return writeDirectoryError(c, log, err, "Failed to add category")
	}

	log.Info("Category added", zap.String("name", entry.Name))
	return c.JSON(http.StatusCreated, entry)
}

// RenameCategory renames a category and cascades the rename across every
// supplier holding it
func RenameCategory(c echo.Context) error {
	log := logger.FromContext(c)
	oldName := c.Param("name")
	prometheus.RecordDirectoryOperation("category", "rename")

	var req DirectoryNameRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	log.Info("Renaming category",
		zap.String("old_name", oldName),
		zap.String("new_name", req.Name))

	defer prometheus.TrackDBOperation("update")(time.Now())

	affected, err := directory.RenameCategory(database.GetDB(), oldName, req.Name)
	if err != nil {
		return writeDirectoryError(c, log, err, "Failed to rename category")
	}

	log.Info("Category renamed",
		zap.String("old_name", oldName),
		zap.String("new_name", req.Name),
		zap.Int64("suppliers_updated", affected))
	return c.JSON(http.StatusOK, echo.Map{
		"message":           "Category renamed successfully",
		"suppliers_updated": affected,
	})
}

// DeleteCategory removes a category, reassigning its suppliers to the
// sentinel category
func DeleteCategory(c echo.Context) error {
	log := logger.FromContext(c)
	name := c.Param("name")
	prometheus.RecordDirectoryOperation("category", "delete")

	log.Info("Deleting category", zap.String("name", name))

	defer prometheus.TrackDBOperation("update")(time.Now())

	affected, err := directory.DeleteCategory(database.GetDB(), name)
	if err != nil {
		return writeDirectoryError(c, log, err, "Failed to delete category")
	}

	log.Info("Category deleted",
		zap.String("name", name),
		zap.Int64("suppliers_updated", affected))
	return c.JSON(http.StatusOK, echo.Map{
		"message":           "Category deleted successfully",
		"suppliers_updated": affected,
	})
}

// writeDirectoryError maps directory errors onto HTTP responses.
func writeDirectoryError(c echo.Context, log *zap.Logger, err error, fallback string) error {
	switch {
	case errors.Is(err, directory.ErrEmptyName):
		log.Warn("Empty directory name", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": err.Error(),
		})
	case errors.Is(err, directory.ErrDuplicateName):
		log.Warn("Duplicate directory name", zap.Error(err))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": err.Error(),
		})
	case errors.Is(err, directory.ErrDefaultCategory):
		log.Warn("Attempt to modify a default category", zap.Error(err))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": err.Error(),
		})
	}

	log.Error(fallback, zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"error": fallback,
	})
}
