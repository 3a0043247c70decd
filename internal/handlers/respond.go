package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/qualitrack/qualitrack-api/internal/services"

	"github.com/gin-gonic/gin"
)

// fail converts a service error into the response envelope the frontend
// expects: 400 for validation and cycle rejections, 404 for zero-row
// targets, 409 for uniqueness conflicts, 500 with details otherwise.
func fail(c *gin.Context, err error) {
	var validation *services.ValidationError
	var notFound *services.NotFoundError
	var conflict *services.ConflictError
	var cycle *services.CycleError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": validation.Message})
	case errors.As(err, &cycle):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": cycle.Message})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": notFound.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": conflict.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
			"error":   err.Error(),
		})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func pathID(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		badRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(n), true
}
