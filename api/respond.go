package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"api_dealership/internal/apperr"
)

// writeError maps an error kind to its HTTP status and writes the JSON error
// body. Storage errors and anything unclassified surface as a plain 500
// without internal detail.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindUnauthorized:
		status = http.StatusUnauthorized
		c.Header("WWW-Authenticate", `Basic realm="dealership"`)
	case apperr.KindForbidden:
		status = http.StatusForbidden
	}

	msg := "internal error"
	var e *apperr.Error
	if errors.As(err, &e) && e.Kind != apperr.KindStorage {
		msg = e.Msg
	}
	c.JSON(status, gin.H{"error": msg})
}
