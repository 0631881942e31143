package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
)

// writeError maps the domain error kinds to HTTP status codes. Anything
// unclassified is a 500.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalid):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"ok": false, "error": err.Error()})
}
