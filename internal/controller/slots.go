package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lenderapp/lender/internal/apperr"
	"github.com/lenderapp/lender/internal/model"
	"github.com/lenderapp/lender/internal/service"
)

type createSlotRequest struct {
	Date      string  `json:"date" binding:"required"`
	StartTime string  `json:"start_time" binding:"required"`
	Duration  string  `json:"duration" binding:"required"`
	Notes     *string `json:"notes"`
}

func (h *Handler) listSlots(c *gin.Context) {
	slots, err := h.slots.ListAvailable(c.Request.Context(), time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (h *Handler) getSlot(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	slot, err := h.slots.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

func (h *Handler) createSlot(c *gin.Context) {
	var req createSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, fmt.Errorf("%s: %w", err.Error(), apperr.ErrValidation))
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.respondError(c, fmt.Errorf("invalid date %q: %w", req.Date, apperr.ErrValidation))
		return
	}

	slot, err := h.slots.Create(c.Request.Context(), currentUser(c), service.CreateSlotInput{
		Date:      date,
		StartTime: req.StartTime,
		Duration:  model.SlotDuration(req.Duration),
		Notes:     req.Notes,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, slot)
}

func (h *Handler) deleteSlot(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.slots.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) completeSlot(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.slots.MarkCompleted(c.Request.Context(), currentUser(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseID reads the :id path parameter as a uuid.
func parseID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", c.Param("id"), apperr.ErrValidation)
	}
	return id, nil
}
