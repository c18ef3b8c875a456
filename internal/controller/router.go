package controller

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lenderapp/lender/internal/service"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	slots    *service.SlotService
	bookings *service.BookingService
	admin    *service.AdminService
	logger   *zap.Logger
}

func NewHandler(
	slots *service.SlotService,
	bookings *service.BookingService,
	admin *service.AdminService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		slots:    slots,
		bookings: bookings,
		admin:    admin,
		logger:   logger,
	}
}

// Router builds the gin engine. Every /api/v1 route requires a valid bearer
// token; admin rights are checked by the services against the profile.
func (h *Handler) Router(jwtSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1", Auth(jwtSecret))
	{
		api.GET("/slots", h.listSlots)
		api.GET("/slots/:id", h.getSlot)
		api.POST("/slots", h.createSlot)
		api.DELETE("/slots/:id", h.deleteSlot)
		api.POST("/slots/:id/complete", h.completeSlot)

		api.POST("/bookings", h.createBooking)
		api.GET("/bookings", h.listMyBookings)
		api.GET("/bookings/active", h.hasActiveBooking)
		api.GET("/bookings/:id", h.getBooking)
		api.POST("/bookings/:id/cancel", h.cancelBooking)

		api.GET("/admin/slots", h.adminSlots)
		api.GET("/admin/stats", h.adminStats)
		api.POST("/admin/bookings/:id/decision", h.decideBooking)
	}

	return r
}
