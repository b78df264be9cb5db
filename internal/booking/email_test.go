package booking

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func bookingFixture() Booking {
	flightData, _ := json.Marshal(map[string]any{
		"from":                  "LHR",
		"to":                    "JFK",
		"departure_time":        "2025-02-15T09:30:00",
		"arrival_time":          "2025-02-15T12:55:00",
		"duration":              "PT7H25M",
		"stops":                 0,
		"airline":               "BRITISH AIRWAYS",
		"airline_code":          "BA",
		"is_direct":             true,
		"return_departure_time": "2025-02-22T18:00:00",
		"return_arrival_time":   "2025-02-23T06:10:00",
		"return_duration":       "PT7H10M",
		"return_stops":          1,
		"return_is_direct":      false,
	})

	return Booking{
		ID:         "b-1",
		PNR:        "X7K2QJ",
		FlightID:   "1",
		FlightData: flightData,
		Passengers: []PassengerInfo{
			{Type: "ADULT", Title: "Mr", FirstName: "John", LastName: "Smith"},
			{Type: "CHILD", Title: "Miss", FirstName: "Emma", LastName: "Smith"},
		},
		Contact:    ContactInfo{Email: "john@example.com", Phone: "+44 7700 900000"},
		TotalPrice: 824.6,
		Currency:   "GBP",
	}
}

func TestCustomerEmail_Content(t *testing.T) {
	mail := customerEmail(bookingFixture())

	assert.Equal(t, "Flight380 - Booking Confirmation - PNR: X7K2QJ", mail.Subject)

	assert.Contains(t, mail.Body, "Dear John Smith,")
	assert.Contains(t, mail.Body, "BOOKING REFERENCE (PNR): X7K2QJ")
	assert.Contains(t, mail.Body, "From: LHR → To: JFK")
	assert.Contains(t, mail.Body, "Date: 2025-02-15")
	assert.Contains(t, mail.Body, "Departure: 09:30")
	assert.Contains(t, mail.Body, "Arrival: 12:55")
	assert.Contains(t, mail.Body, "Duration: 7h 25m")
	assert.Contains(t, mail.Body, "Airline: BRITISH AIRWAYS (BA)")
	assert.Contains(t, mail.Body, "Stops: Direct")
	assert.Contains(t, mail.Body, "  - Mr John Smith (ADULT)")
	assert.Contains(t, mail.Body, "  - Miss Emma Smith (CHILD)")
	assert.Contains(t, mail.Body, "TOTAL PRICE: £824.60 GBP")
	assert.Contains(t, mail.Body, "Email: john@example.com")
	assert.Contains(t, mail.Body, "info@flight380.co.uk")
}

func TestCustomerEmail_ReturnFlightBlock(t *testing.T) {
	mail := customerEmail(bookingFixture())

	assert.Contains(t, mail.Body, "RETURN FLIGHT:")
	assert.Contains(t, mail.Body, "From: JFK → To: LHR")
	assert.Contains(t, mail.Body, "Duration: 7h 10m")
	assert.Contains(t, mail.Body, "Stops: 1 stop(s)")
}

func TestCustomerEmail_OneWayOmitsReturnBlock(t *testing.T) {
	b := bookingFixture()
	b.FlightData, _ = json.Marshal(map[string]any{
		"from":           "LHR",
		"to":             "JFK",
		"departure_time": "2025-02-15T09:30:00",
		"arrival_time":   "2025-02-15T12:55:00",
		"duration":       "PT7H25M",
		"is_direct":      true,
	})

	mail := customerEmail(b)
	assert.NotContains(t, mail.Body, "RETURN FLIGHT:")
}

func TestAgentEmail_Content(t *testing.T) {
	bookedAt := time.Date(2025, 2, 1, 10, 30, 0, 0, time.UTC)
	mail := agentEmail(bookingFixture(), bookedAt)

	assert.Equal(t, "New Booking - PNR: X7K2QJ - LHR to JFK", mail.Subject)
	assert.Contains(t, mail.Body, "NEW BOOKING NOTIFICATION")
	assert.Contains(t, mail.Body, "BOOKING TIME: 2025-02-01 10:30:00 UTC")
	assert.Contains(t, mail.Body, "Name: John Smith")
	assert.Contains(t, mail.Body, "Email: john@example.com")
	assert.Contains(t, mail.Body, "Total Amount: £824.60 GBP")
	assert.Contains(t, mail.Body, "automated notification")
}

func TestEmail_MissingFlightFieldsRenderNA(t *testing.T) {
	b := bookingFixture()
	b.FlightData = json.RawMessage(`{}`)

	mail := customerEmail(b)
	assert.Contains(t, mail.Body, "From: N/A → To: N/A")
	assert.Contains(t, mail.Body, "Duration: N/A")
	assert.NotContains(t, mail.Body, "RETURN FLIGHT:")
}

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "7h 25m", humanDuration("PT7H25M"))
	assert.Equal(t, "7h", humanDuration("PT7H"))
	assert.Equal(t, "45m", humanDuration("PT45M"))
	assert.Equal(t, "N/A", humanDuration(""))
}
