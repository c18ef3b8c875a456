package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lenderapp/lender/internal/apperr"
)

type createBookingRequest struct {
	SlotID uuid.UUID `json:"slot_id" binding:"required"`
}

func (h *Handler) createBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, fmt.Errorf("%s: %w", err.Error(), apperr.ErrValidation))
		return
	}

	booking, err := h.bookings.Request(c.Request.Context(), currentUser(c), req.SlotID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *Handler) listMyBookings(c *gin.Context) {
	bookings, err := h.bookings.ListByUser(c.Request.Context(), currentUser(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *Handler) hasActiveBooking(c *gin.Context) {
	active, err := h.bookings.HasActiveBooking(c.Request.Context(), currentUser(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active})
}

func (h *Handler) getBooking(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	booking, err := h.bookings.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *Handler) cancelBooking(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.bookings.Cancel(c.Request.Context(), id, currentUser(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
