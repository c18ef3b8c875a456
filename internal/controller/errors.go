package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lenderapp/lender/internal/apperr"
)

// respondError maps the core's error kinds to HTTP statuses. Anything not in
// the taxonomy is a 500 and gets logged; taxonomy errors are the caller's
// problem and are returned as-is.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrNotAuthorized), errors.Is(err, apperr.ErrNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, apperr.ErrConflict),
		errors.Is(err, apperr.ErrSlotUnavailable),
		errors.Is(err, apperr.ErrActiveBookingExists),
		errors.Is(err, apperr.ErrInvalidState):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
