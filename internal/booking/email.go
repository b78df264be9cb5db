package booking

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// flightSummary is the slice of the flight document the email templates
// render. Unknown fields in the document are ignored.
type flightSummary struct {
	From                string `json:"from"`
	To                  string `json:"to"`
	DepartureTime       string `json:"departure_time"`
	ArrivalTime         string `json:"arrival_time"`
	Duration            string `json:"duration"`
	Stops               int    `json:"stops"`
	Airline             string `json:"airline"`
	AirlineCode         string `json:"airline_code"`
	IsDirect            bool   `json:"is_direct"`
	ReturnDepartureTime string `json:"return_departure_time"`
	ReturnArrivalTime   string `json:"return_arrival_time"`
	ReturnDuration      string `json:"return_duration"`
	ReturnStops         int    `json:"return_stops"`
	ReturnIsDirect      bool   `json:"return_is_direct"`
}

type emailContent struct {
	Subject string
	Body    string
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// datePart extracts YYYY-MM-DD from a 2006-01-02T15:04:05 timestamp
func datePart(ts string) string {
	if len(ts) < 10 {
		return "N/A"
	}
	return ts[:10]
}

// timePart extracts HH:MM from a 2006-01-02T15:04:05 timestamp
func timePart(ts string) string {
	if len(ts) < 16 {
		return "N/A"
	}
	return ts[11:16]
}

// humanDuration turns an ISO 8601 duration like PT7H25M into "7h 25m"
func humanDuration(iso string) string {
	if iso == "" {
		return "N/A"
	}
	out := strings.ReplaceAll(iso, "PT", "")
	out = strings.ReplaceAll(out, "H", "h ")
	out = strings.ReplaceAll(out, "M", "m")
	return strings.TrimSpace(out)
}

func stopsLine(isDirect bool, stops int) string {
	if isDirect {
		return "Direct"
	}
	return fmt.Sprintf("%d stop(s)", stops)
}

func outboundBlock(f flightSummary) string {
	return fmt.Sprintf(`
    From: %s → To: %s
    Date: %s
    Departure: %s
    Arrival: %s
    Duration: %s
    Airline: %s (%s)
    Stops: %s
`,
		orNA(f.From), orNA(f.To),
		datePart(f.DepartureTime),
		timePart(f.DepartureTime),
		timePart(f.ArrivalTime),
		humanDuration(f.Duration),
		orNA(f.Airline), orNA(f.AirlineCode),
		stopsLine(f.IsDirect, f.Stops),
	)
}

func returnBlock(f flightSummary) string {
	if f.ReturnDepartureTime == "" {
		return ""
	}
	return fmt.Sprintf(`
    RETURN FLIGHT:
    From: %s → To: %s
    Date: %s
    Departure: %s
    Arrival: %s
    Duration: %s
    Stops: %s
`,
		orNA(f.To), orNA(f.From),
		datePart(f.ReturnDepartureTime),
		timePart(f.ReturnDepartureTime),
		timePart(f.ReturnArrivalTime),
		humanDuration(f.ReturnDuration),
		stopsLine(f.ReturnIsDirect, f.ReturnStops),
	)
}

func passengerList(passengers []PassengerInfo) string {
	lines := make([]string, len(passengers))
	for i, p := range passengers {
		lines[i] = fmt.Sprintf("  - %s %s %s (%s)", p.Title, p.FirstName, p.LastName, p.Type)
	}
	return strings.Join(lines, "\n")
}

const divider = "═══════════════════════════════════════════════════════════════"

// customerEmail renders the confirmation the traveler receives
func customerEmail(b Booking) emailContent {
	var flight flightSummary
	_ = json.Unmarshal(b.FlightData, &flight)

	lead := "Customer"
	if len(b.Passengers) > 0 {
		lead = b.Passengers[0].FirstName + " " + b.Passengers[0].LastName
	}

	subject := fmt.Sprintf("Flight380 - Booking Confirmation - PNR: %s", b.PNR)
	body := fmt.Sprintf(`Dear %s,

Thank you for booking with Flight380!

Your booking has been confirmed. Please find your details below:

%s
BOOKING REFERENCE (PNR): %s
%s

FLIGHT DETAILS:
---------------
OUTBOUND FLIGHT:%s%s
PASSENGERS:
-----------
%s

TOTAL PRICE: £%.2f %s

CONTACT DETAILS:
---------------
Email: %s
Phone: %s

%s

IMPORTANT INFORMATION:
- Please arrive at the airport at least 2-3 hours before departure
- Carry a valid passport/ID and this booking confirmation
- Check airline website for baggage allowance

For any queries, contact us at: info@flight380.co.uk

Thank you for choosing Flight380!

Best regards,
Flight380 Team
www.flight380.co.uk
`,
		lead,
		divider, b.PNR, divider,
		outboundBlock(flight), returnBlock(flight),
		passengerList(b.Passengers),
		b.TotalPrice, b.Currency,
		b.Contact.Email, b.Contact.Phone,
		divider,
	)

	return emailContent{Subject: subject, Body: body}
}

// agentEmail renders the internal notification sent to the booking desk
func agentEmail(b Booking, bookedAt time.Time) emailContent {
	var flight flightSummary
	_ = json.Unmarshal(b.FlightData, &flight)

	lead := "Customer"
	if len(b.Passengers) > 0 {
		lead = b.Passengers[0].FirstName + " " + b.Passengers[0].LastName
	}

	subject := fmt.Sprintf("New Booking - PNR: %s - %s to %s", b.PNR, flight.From, flight.To)
	body := fmt.Sprintf(`NEW BOOKING NOTIFICATION

%s
BOOKING REFERENCE (PNR): %s
BOOKING TIME: %s
%s

CUSTOMER DETAILS:
-----------------
Name: %s
Email: %s
Phone: %s

FLIGHT DETAILS:
---------------
OUTBOUND FLIGHT:%s%s
ALL PASSENGERS:
---------------
%s

PRICING:
--------
Total Amount: £%.2f %s

%s
This is an automated notification from Flight380 Booking System.
`,
		divider, b.PNR, bookedAt.UTC().Format("2006-01-02 15:04:05 UTC"), divider,
		lead, b.Contact.Email, b.Contact.Phone,
		outboundBlock(flight), returnBlock(flight),
		passengerList(b.Passengers),
		b.TotalPrice, b.Currency,
		divider,
	)

	return emailContent{Subject: subject, Body: body}
}
