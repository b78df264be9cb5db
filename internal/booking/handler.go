package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"flight380/pkg/logger"
)

type BookingHandler struct {
	service *Service
	logger  logger.Client
}

func NewBookingHandler(s *Service, log logger.Client) *BookingHandler {
	return &BookingHandler{service: s, logger: log}
}

func (h *BookingHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/bookings/create", h.CreateBookingHandler)
	router.GET("/api/bookings", h.ListBookingsHandler)
	router.GET("/api/bookings/:pnr", h.GetBookingHandler)
	router.GET("/api/emails/:booking_id", h.GetBookingEmailsHandler)
}

// CreateBookingHandler godoc
// @Summary      Create a booking and generate a PNR
// @Description  Persists the booking and its confirmation emails, returns the PNR
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request body BookingRequest true "Booking payload"
// @Success      200 {object} CreateResponse
// @Failure      400 {object} map[string]interface{}
// @Router       /api/bookings/create [post]
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid JSON body",
		})
		return
	}

	response, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		h.sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetBookingHandler godoc
// @Summary      Look a booking up by PNR
// @Tags         bookings
// @Produce      json
// @Param        pnr path string true "Booking reference"
// @Success      200 {object} LookupResponse
// @Router       /api/bookings/{pnr} [get]
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	response, err := h.service.GetBooking(c.Request.Context(), c.Param("pnr"))
	if err != nil {
		h.sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListBookingsHandler godoc
// @Summary      List recent bookings
// @Tags         bookings
// @Produce      json
// @Param        limit query int false "Maximum number of bookings, default 20"
// @Success      200 {object} ListResponse
// @Router       /api/bookings [get]
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		limit = defaultListLimit
	}

	response, err := h.service.ListBookings(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("list bookings failed", logger.Field{Key: "err", Value: err})
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetBookingEmailsHandler godoc
// @Summary      List the emails generated for a booking
// @Tags         bookings
// @Produce      json
// @Param        booking_id path string true "Booking ID"
// @Success      200 {object} EmailsResponse
// @Router       /api/emails/{booking_id} [get]
func (h *BookingHandler) GetBookingEmailsHandler(c *gin.Context) {
	response, err := h.service.GetBookingEmails(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		h.logger.Error("get booking emails failed", logger.Field{Key: "err", Value: err})
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *BookingHandler) sendError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{
			"success": false,
			"error":   gin.H{"code": appErr.Code, "message": appErr.Message},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   gin.H{"code": "INTERNAL_FAILURE", "message": "internal server error"},
	})
}
