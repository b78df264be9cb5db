package booking

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const StatusConfirmed = "CONFIRMED"

// PassengerInfo describes one traveler on a booking. Type is one of
// ADULT, YOUTH, CHILD, INFANT.
type PassengerInfo struct {
	Type           string `json:"type"`
	Title          string `json:"title"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DateOfBirth    string `json:"date_of_birth"`
	Gender         string `json:"gender"`
	Nationality    string `json:"nationality"`
	PassportNumber string `json:"passport_number,omitempty"`
	PassportExpiry string `json:"passport_expiry,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
}

type ContactInfo struct {
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// BookingRequest is the create-booking payload. FlightData is the formatted
// offer the search endpoint returned, passed back untouched by the client.
type BookingRequest struct {
	FlightID        string          `json:"flight_id"`
	FlightData      json.RawMessage `json:"flight_data"`
	Passengers      []PassengerInfo `json:"passengers"`
	Contact         ContactInfo     `json:"contact"`
	PassengerCounts map[string]int  `json:"passenger_counts"`
	TotalPrice      float64         `json:"total_price"`
	Currency        string          `json:"currency"`
}

// Booking is a persisted booking record
type Booking struct {
	ID              string          `json:"id"`
	PNR             string          `json:"pnr"`
	FlightID        string          `json:"flight_id"`
	FlightData      json.RawMessage `json:"flight_data"`
	Passengers      []PassengerInfo `json:"passengers"`
	Contact         ContactInfo     `json:"contact"`
	PassengerCounts map[string]int  `json:"passenger_counts"`
	TotalPrice      float64         `json:"total_price"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

const (
	EmailTypeCustomerConfirmation = "customer_confirmation"
	EmailTypeAgentNotification    = "agent_notification"
)

// EmailRecord is a booking email persisted instead of sent; an SMTP
// integration would read these back.
type EmailRecord struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	PNR       string    `json:"pnr"`
	Type      string    `json:"type"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	SentAt    time.Time `json:"sent_at"`
}

// EmailSummary is the emails_sent entry in the create-booking response
type EmailSummary struct {
	To      string `json:"to"`
	Type    string `json:"type"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Status  string `json:"status"`
}

type BookingDetails struct {
	PNR        string          `json:"pnr"`
	Status     string          `json:"status"`
	Flight     json.RawMessage `json:"flight"`
	Passengers []PassengerInfo `json:"passengers"`
	Contact    ContactInfo     `json:"contact"`
	TotalPrice float64         `json:"total_price"`
	Currency   string          `json:"currency"`
	CreatedAt  time.Time       `json:"created_at"`
}

type CreateResponse struct {
	Success        bool            `json:"success"`
	BookingID      string          `json:"booking_id,omitempty"`
	PNR            string          `json:"pnr,omitempty"`
	Message        string          `json:"message"`
	BookingDetails *BookingDetails `json:"booking_details,omitempty"`
	EmailsSent     []EmailSummary  `json:"emails_sent,omitempty"`
}

type LookupResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Booking *Booking      `json:"booking,omitempty"`
	Emails  []EmailRecord `json:"emails,omitempty"`
}

type ListResponse struct {
	Success  bool      `json:"success"`
	Bookings []Booking `json:"bookings"`
	Count    int       `json:"count"`
}

type EmailsResponse struct {
	Success bool          `json:"success"`
	Emails  []EmailRecord `json:"emails"`
}

// AppError mirrors the error shape the flight handlers use
type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newValidationError(msg string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: msg}
}
