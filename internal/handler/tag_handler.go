package handler

import (
	"net/http"
	"time"

	"supplier-directory/internal/directory"
	"supplier-directory/pkg/database"
	"supplier-directory/pkg/logger"
	"supplier-directory/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListTags returns the tag directory with usage counts
func ListTags(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing tags")
	prometheus.RecordDirectoryOperation("tag", "list")

	defer prometheus.TrackDBOperation("query")(time.Now())

	tags, err := directory.Tags(database.GetDB())
	if err != nil {
		log.Error("Failed to retrieve tags", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve tags",
		})
	}

	log.Info("Tags retrieved successfully", zap.Int("count", len(tags)))
	return c.JSON(http.StatusOK, echo.Map{"tags": tags})
}

// CreateTag validates a new tag name. Like categories, tags only become
// visible in the directory once a supplier carries them.
func CreateTag(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Adding tag")
	prometheus.RecordDirectoryOperation("tag", "add")

	var req DirectoryNameRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	entry, err := directory.AddTag(database.GetDB(), req.Name)
	if err != nil {
		return writeDirectoryError(c, log, err, "Failed to add tag")
	}

	log.Info("Tag added", zap.String("name", entry.Name))
	return c.JSON(http.StatusCreated, entry)
}

// RenameTag renames a tag across every supplier tag set
func RenameTag(c echo.Context) error {
	log := logger.FromContext(c)
	oldName := c.Param("name")
	prometheus.RecordDirectoryOperation("tag", "rename")

	var req DirectoryNameRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	log.Info("Renaming tag",
		zap.String("old_name", oldName),
		zap.String("new_name", req.Name))

	defer prometheus.TrackDBOperation("update")(time.Now())

	affected, err := directory.RenameTag(database.GetDB(), oldName, req.Name)
	if err != nil {
		return writeDirectoryError(c, log, err, "Failed to rename tag")
	}

	log.Info("Tag renamed",
		zap.String("old_name", oldName),
		zap.String("new_name", req.Name),
		zap.Int64("suppliers_updated", affected))
	return c.JSON(http.StatusOK, echo.Map{
		"message":           "Tag renamed successfully",
		"suppliers_updated": affected,
	})
}

// DeleteTag removes a tag from every supplier tag set
func DeleteTag(c echo.Context) error {
	log := logger.FromContext(c)
	name := c.Param("name")
	prometheus.RecordDirectoryOperation("tag", "delete")

	log.Info("Deleting tag", zap.String("name", name))

	defer prometheus.TrackDBOperation("update")(time.Now())

	affected, err := directory.DeleteTag(database.GetDB(), name)
	if err != nil {
		return writeDirectoryError(c, log, err, "Failed to delete tag")
	}

	log.Info("Tag deleted",
		zap.String("name", name),
		zap.Int64("suppliers_updated", affected))
	return c.JSON(http.StatusOK, echo.Map{
		"message":           "Tag deleted successfully",
		"suppliers_updated": affected,
	})
}
