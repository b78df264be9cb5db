package flight

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"flight380/pkg/logger"
)

type FlightHandler struct {
	service   *Service
	searchLog *SearchLogRepository
	logger    logger.Client
}

// NewFlightHandler wires the search endpoints. searchLog may be nil when
// analytics persistence is not configured.
func NewFlightHandler(s *Service, searchLog *SearchLogRepository, log logger.Client) *FlightHandler {
	return &FlightHandler{
		service:   s,
		searchLog: searchLog,
		logger:    log,
	}
}

func (h *FlightHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/flights/search", h.SearchFlightsHandler)
	router.GET("/api/flights/fare-calendar", h.FareCalendarHandler)
	router.GET("/api/airports/search", h.SearchAirportsHandler)
}

// SearchFlightsHandler godoc
// @Summary      Search flight offers
// @Description  Exact-date search by default; flexible_dates=true fans out across nearby dates
// @Tags         flights
// @Accept       json
// @Produce      json
// @Param        request body SearchParams true "Search parameters"
// @Success      200 {object} SearchResponse
// @Failure      400 {object} map[string]interface{}
// @Router       /api/flights/search [post]
func (h *FlightHandler) SearchFlightsHandler(c *gin.Context) {
	var params SearchParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   ErrorBody{Code: ErrorCodeValidation, Message: "invalid JSON body"},
		})
		return
	}

	var (
		response *SearchResponse
		err      error
	)
	if params.FlexibleDates {
		response, err = h.service.SearchFlightsFlexible(c.Request.Context(), params)
	} else {
		response, err = h.service.SearchFlights(c.Request.Context(), params)
	}
	if err != nil {
		sendError(c, err)
		return
	}

	if response.Success && h.searchLog != nil {
		entry := SearchLogEntry{
			Origin:        params.Origin,
			Destination:   params.Destination,
			DepartureDate: params.DepartureDate,
			ReturnDate:    params.ReturnDate,
			Passengers:    params.Adults + params.Youth + params.Children + params.Infants,
			ResultsCount:  response.Count,
			Flexible:      params.FlexibleDates,
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := h.searchLog.Record(ctx, entry); err != nil {
				h.logger.Error("failed to record search", logger.Field{Key: "err", Value: err})
			}
		}()
	}

	c.JSON(http.StatusOK, response)
}

// FareCalendarHandler godoc
// @Summary      Cheapest fare per date around a center date
// @Tags         flights
// @Produce      json
// @Param        origin query string true "Origin IATA code"
// @Param        destination query string true "Destination IATA code"
// @Param        departure_date query string true "Center date YYYY-MM-DD"
// @Param        one_way query bool false "One-way pricing"
// @Param        duration query int false "Trip length in days for round-trip pricing"
// @Param        currency query string false "Currency code"
// @Success      200 {object} FareCalendarResponse
// @Failure      400 {object} map[string]interface{}
// @Router       /api/flights/fare-calendar [get]
func (h *FlightHandler) FareCalendarHandler(c *gin.Context) {
	oneWay, _ := strconv.ParseBool(c.DefaultQuery("one_way", "false"))
	duration, err := strconv.Atoi(c.DefaultQuery("duration", "7"))
	if err != nil {
		duration = 7
	}

	response, err := h.service.GetFareCalendar(
		c.Request.Context(),
		c.Query("origin"),
		c.Query("destination"),
		c.Query("departure_date"),
		oneWay,
		duration,
		c.Query("currency"),
	)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// SearchAirportsHandler godoc
// @Summary      Search airports and cities by keyword
// @Tags         airports
// @Produce      json
// @Param        keyword query string true "Search keyword, minimum 2 characters"
// @Success      200 {object} LocationsResponse
// @Failure      400 {object} map[string]interface{}
// @Router       /api/airports/search [get]
func (h *FlightHandler) SearchAirportsHandler(c *gin.Context) {
	response, err := h.service.SearchAirports(c.Request.Context(), c.Query("keyword"), 10)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func sendError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{
			"success": false,
			"error":   ErrorBody{Code: appErr.Code, Message: appErr.Message},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   ErrorBody{Code: ErrorCodeInternalFailure, Message: "internal server error"},
	})
}
