package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"flight380/pkg/logger"
)

// Store is the persistence surface the service needs
type Store interface {
	CreateBookingWithEmails(ctx context.Context, b Booking, emails []EmailRecord) error
	GetByPNR(ctx context.Context, pnr string) (*Booking, error)
	List(ctx context.Context, limit int) ([]Booking, error)
	EmailsByPNR(ctx context.Context, pnr string) ([]EmailRecord, error)
	EmailsByBookingID(ctx context.Context, bookingID string) ([]EmailRecord, error)
}

const defaultListLimit = 20

type Service struct {
	store      Store
	agentEmail string
	logger     logger.Client

	now    func() time.Time
	newID  func() string
	newPNR func() string
}

func NewService(store Store, agentEmail string, log logger.Client) *Service {
	return &Service{
		store:      store,
		agentEmail: agentEmail,
		logger:     log,
		now:        time.Now,
		newID:      func() string { return uuid.NewString() },
		newPNR:     generatePNR,
	}
}

func (s *Service) validateRequest(req BookingRequest) error {
	if req.FlightID == "" {
		return newValidationError("flight_id is required")
	}
	if len(req.Passengers) == 0 {
		return newValidationError("at least one passenger is required")
	}
	if req.Contact.Email == "" || req.Contact.Phone == "" {
		return newValidationError("contact email and phone are required")
	}
	return nil
}

// CreateBooking assigns a PNR, persists the booking with its confirmation
// emails, and echoes everything back. Persistence failures come back in the
// response body rather than as an HTTP error, matching the search endpoints.
func (s *Service) CreateBooking(ctx context.Context, req BookingRequest) (*CreateResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	if req.Currency == "" {
		req.Currency = "GBP"
	}

	now := s.now().UTC()
	record := Booking{
		ID:              s.newID(),
		PNR:             s.newPNR(),
		FlightID:        req.FlightID,
		FlightData:      req.FlightData,
		Passengers:      req.Passengers,
		Contact:         req.Contact,
		PassengerCounts: req.PassengerCounts,
		TotalPrice:      req.TotalPrice,
		Currency:        req.Currency,
		Status:          StatusConfirmed,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	customer := customerEmail(record)
	agent := agentEmail(record, now)

	emails := []EmailRecord{
		{
			ID:        s.newID(),
			BookingID: record.ID,
			PNR:       record.PNR,
			Type:      EmailTypeCustomerConfirmation,
			To:        req.Contact.Email,
			Subject:   customer.Subject,
			Body:      customer.Body,
			Status:    "SENT",
			SentAt:    now,
		},
		{
			ID:        s.newID(),
			BookingID: record.ID,
			PNR:       record.PNR,
			Type:      EmailTypeAgentNotification,
			To:        s.agentEmail,
			Subject:   agent.Subject,
			Body:      agent.Body,
			Status:    "SENT",
			SentAt:    now,
		},
	}

	if err := s.store.CreateBookingWithEmails(ctx, record, emails); err != nil {
		s.logger.Error("booking creation failed",
			logger.Field{Key: "pnr", Value: record.PNR},
			logger.Field{Key: "err", Value: err},
		)
		return &CreateResponse{
			Success: false,
			Message: "Failed to create booking: " + err.Error(),
		}, nil
	}

	s.logger.Info("booking created",
		logger.Field{Key: "pnr", Value: record.PNR},
		logger.Field{Key: "booking_id", Value: record.ID},
	)

	return &CreateResponse{
		Success:   true,
		BookingID: record.ID,
		PNR:       record.PNR,
		Message:   "Booking confirmed successfully!",
		BookingDetails: &BookingDetails{
			PNR:        record.PNR,
			Status:     record.Status,
			Flight:     record.FlightData,
			Passengers: record.Passengers,
			Contact:    record.Contact,
			TotalPrice: record.TotalPrice,
			Currency:   record.Currency,
			CreatedAt:  record.CreatedAt,
		},
		EmailsSent: []EmailSummary{
			{To: req.Contact.Email, Type: "Customer Confirmation", Subject: customer.Subject, Body: customer.Body, Status: "SENT"},
			{To: s.agentEmail, Type: "Agent Notification", Subject: agent.Subject, Body: agent.Body, Status: "SENT"},
		},
	}, nil
}

// GetBooking looks a booking up by PNR, case-insensitively
func (s *Service) GetBooking(ctx context.Context, pnr string) (*LookupResponse, error) {
	if pnr == "" {
		return nil, newValidationError("pnr is required")
	}
	pnr = normalizePNR(pnr)

	record, err := s.store.GetByPNR(ctx, pnr)
	if errors.Is(err, ErrBookingNotFound) {
		return &LookupResponse{Success: false, Message: "Booking not found"}, nil
	}
	if err != nil {
		s.logger.Error("booking lookup failed",
			logger.Field{Key: "pnr", Value: pnr},
			logger.Field{Key: "err", Value: err},
		)
		return &LookupResponse{Success: false, Message: "Error retrieving booking: " + err.Error()}, nil
	}

	emails, err := s.store.EmailsByPNR(ctx, pnr)
	if err != nil {
		s.logger.Error("booking emails lookup failed",
			logger.Field{Key: "pnr", Value: pnr},
			logger.Field{Key: "err", Value: err},
		)
		emails = nil
	}

	return &LookupResponse{Success: true, Booking: record, Emails: emails}, nil
}

func (s *Service) ListBookings(ctx context.Context, limit int) (*ListResponse, error) {
	if limit < 1 {
		limit = defaultListLimit
	}

	bookings, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	return &ListResponse{Success: true, Bookings: bookings, Count: len(bookings)}, nil
}

func (s *Service) GetBookingEmails(ctx context.Context, bookingID string) (*EmailsResponse, error) {
	if bookingID == "" {
		return nil, newValidationError("booking_id is required")
	}

	emails, err := s.store.EmailsByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return &EmailsResponse{Success: true, Emails: emails}, nil
}
