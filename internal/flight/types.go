package flight

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrorCodeUpstream        ErrorCode = "UPSTREAM_ERROR"
	ErrorCodeTransport       ErrorCode = "TRANSPORT_ERROR"
	ErrorCodeInternalFailure ErrorCode = "INTERNAL_FAILURE"
)

type AppError struct {
	Status  int
	Code    ErrorCode
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newValidationError(msg string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: ErrorCodeValidation, Message: msg}
}

// SearchParams is the caller-facing search request
type SearchParams struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date,omitempty"`
	Adults        int    `json:"adults"`
	Youth         int    `json:"youth"`
	Children      int    `json:"children"`
	Infants       int    `json:"infants"`
	TravelClass   string `json:"travel_class"`
	DirectFlights bool   `json:"direct_flights"`
	FlexibleDates bool   `json:"flexible_dates"`
	Currency      string `json:"currency,omitempty"`
}

// FormattedFlight is one offer reshaped for the front end. RawData carries
// the untouched upstream offer document, the booking flow sends it back as-is.
type FormattedFlight struct {
	ID                    string          `json:"id"`
	From                  string          `json:"from"`
	To                    string          `json:"to"`
	DepartureTime         string          `json:"departure_time"`
	ArrivalTime           string          `json:"arrival_time"`
	Duration              string          `json:"duration"`
	Stops                 int             `json:"stops"`
	Airline               string          `json:"airline"`
	AirlineCode           string          `json:"airline_code"`
	Price                 float64         `json:"price"`
	Currency              string          `json:"currency"`
	NumberOfBookableSeats int             `json:"number_of_bookable_seats"`
	IsDirect              bool            `json:"is_direct"`
	Layovers              []string        `json:"layovers,omitempty"`
	ReturnDepartureTime   string          `json:"return_departure_time,omitempty"`
	ReturnArrivalTime     string          `json:"return_arrival_time,omitempty"`
	ReturnDuration        string          `json:"return_duration,omitempty"`
	ReturnStops           *int            `json:"return_stops,omitempty"`
	ReturnIsDirect        *bool           `json:"return_is_direct,omitempty"`
	ReturnLayovers        []string        `json:"return_layovers,omitempty"`
	DepartureDateOffset   *int            `json:"departure_date_offset,omitempty"`
	ReturnDateOffset      *int            `json:"return_date_offset,omitempty"`
	SearchedDepartureDate string          `json:"searched_departure_date,omitempty"`
	SearchedReturnDate    string          `json:"searched_return_date,omitempty"`
	RawData               json.RawMessage `json:"raw_data"`
}

type SearchMeta struct {
	FlexibleSearch       bool            `json:"flexible_search"`
	Combinations         int             `json:"combinations,omitempty"`
	CombinationsFailed   int             `json:"combinations_failed,omitempty"`
	SearchTimeMs         int64           `json:"search_time_ms,omitempty"`
	CacheHit             bool            `json:"cache_hit"`
	Upstream             json.RawMessage `json:"upstream,omitempty"`
}

type ErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

type SearchResponse struct {
	Success bool              `json:"success"`
	Flights []FormattedFlight `json:"flights"`
	Count   int               `json:"count"`
	Meta    *SearchMeta       `json:"meta,omitempty"`
	Error   *ErrorBody        `json:"error,omitempty"`
}

type FareCalendarResponse struct {
	Success     bool               `json:"success"`
	Data        map[string]float64 `json:"data"`
	Currency    string             `json:"currency"`
	Origin      string             `json:"origin"`
	Destination string             `json:"destination"`
	Cached      bool               `json:"cached"`
	Error       *ErrorBody         `json:"error,omitempty"`
}

type LocationsResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorBody      `json:"error,omitempty"`
}
