package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sanjeebSubedi/Demake-Backend/internal/apperrors"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// writeError maps a domain error onto its fixed status and detail;
// anything else is an opaque 500.
func writeError(c *gin.Context, err error) {
	if appErr, ok := apperrors.FromError(err); ok {
		c.JSON(appErr.Status, gin.H{"detail": appErr.Detail})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
}

// pagination reads skip (or offset) and limit query parameters, clamping
// them to sane bounds. Out-of-range pages are legal and yield empty lists
// downstream.
func pagination(c *gin.Context) (skip, limit int) {
	skipStr := c.Query("skip")
	if skipStr == "" {
		skipStr = c.Query("offset")
	}
	skip, _ = strconv.Atoi(skipStr)
	if skip < 0 {
		skip = 0
	}

	limit = defaultPageLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return skip, limit
}
