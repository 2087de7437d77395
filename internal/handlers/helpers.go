package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// parseID reads a numeric path parameter. A malformed ID behaves like a
// missing record.
func parseID(c *gin.Context, param, notFoundMsg string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, notFoundMsg)
		return 0, false
	}
	return uint(id), true
}

// respondLookupError maps a repository read error to 404 for missing records
// and a logged generic 500 for everything else
func respondLookupError(c *gin.Context, logger *logrus.Logger, err error, notFoundMsg, genericMsg string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.String(http.StatusNotFound, notFoundMsg)
		return
	}
	logger.WithError(err).Error(genericMsg)
	c.String(http.StatusInternalServerError, genericMsg)
}

// respondServerError logs the error and returns a generic 500
func respondServerError(c *gin.Context, logger *logrus.Logger, err error, genericMsg string) {
	logger.WithError(err).Error(genericMsg)
	c.String(http.StatusInternalServerError, genericMsg)
}

// parseDate parses a form date in calendar format
func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// parseOptionalDate returns nil for an empty form value
func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
