package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lenderapp/lender/internal/apperr"
	"github.com/lenderapp/lender/internal/model"
)

type decisionRequest struct {
	Status     string  `json:"status" binding:"required"`
	AdminNotes *string `json:"admin_notes"`
}

func (h *Handler) adminSlots(c *gin.Context) {
	onlyPending := c.Query("booking_status") == string(model.BookingStatusPending)

	rows, err := h.admin.SlotOverview(c.Request.Context(), currentUser(c), onlyPending)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) adminStats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context(), currentUser(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) decideBooking(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, fmt.Errorf("%s: %w", err.Error(), apperr.ErrValidation))
		return
	}

	err = h.bookings.Decide(c.Request.Context(), currentUser(c), id,
		model.BookingStatus(req.Status), req.AdminNotes)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
