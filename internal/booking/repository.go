package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"flight380/pkg/db"
)

var ErrBookingNotFound = errors.New("booking not found")

// Repository persists bookings and their emails in Postgres
type Repository struct {
	db db.SQLExecutor
}

func NewRepository(executor db.SQLExecutor) *Repository {
	return &Repository{db: executor}
}

// CreateBookingWithEmails inserts the booking and its emails atomically. A
// PNR collision surfaces as a unique-constraint error from the insert.
func (r *Repository) CreateBookingWithEmails(ctx context.Context, b Booking, emails []EmailRecord) error {
	flightData, passengers, contact, counts, err := marshalBookingFields(b)
	if err != nil {
		return err
	}

	return r.db.WithTransaction(ctx, sql.LevelReadCommitted, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, insertBookingQuery,
			b.ID, b.PNR, b.FlightID, flightData, passengers, contact, counts,
			b.TotalPrice, b.Currency, b.Status, b.CreatedAt, b.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}

		for _, e := range emails {
			_, err := tx.ExecContext(ctx, insertEmailQuery,
				e.ID, e.BookingID, e.PNR, e.Type, e.To, e.Subject, e.Body, e.Status, e.SentAt,
			)
			if err != nil {
				return fmt.Errorf("insert email: %w", err)
			}
		}
		return nil
	})
}

const insertBookingQuery = `INSERT INTO bookings
	(id, pnr, flight_id, flight_data, passengers, contact, passenger_counts,
	 total_price, currency, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

const insertEmailQuery = `INSERT INTO emails
	(id, booking_id, pnr, type, recipient, subject, body, status, sent_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

const selectBookingColumns = `id, pnr, flight_id, flight_data, passengers, contact,
	passenger_counts, total_price, currency, status, created_at, updated_at`

func (r *Repository) GetByPNR(ctx context.Context, pnr string) (*Booking, error) {
	query := fmt.Sprintf("SELECT %s FROM bookings WHERE pnr = $1", selectBookingColumns)
	row := r.db.QueryRowContext(ctx, query, pnr)

	b, err := scanBooking(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query booking: %w", err)
	}
	return b, nil
}

func (r *Repository) List(ctx context.Context, limit int) ([]Booking, error) {
	query := fmt.Sprintf("SELECT %s FROM bookings ORDER BY created_at DESC LIMIT $1", selectBookingColumns)
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []Booking{}
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *Repository) EmailsByPNR(ctx context.Context, pnr string) ([]EmailRecord, error) {
	return r.queryEmails(ctx, "SELECT id, booking_id, pnr, type, recipient, subject, body, status, sent_at FROM emails WHERE pnr = $1 ORDER BY sent_at", pnr)
}

func (r *Repository) EmailsByBookingID(ctx context.Context, bookingID string) ([]EmailRecord, error) {
	return r.queryEmails(ctx, "SELECT id, booking_id, pnr, type, recipient, subject, body, status, sent_at FROM emails WHERE booking_id = $1 ORDER BY sent_at", bookingID)
}

func (r *Repository) queryEmails(ctx context.Context, query string, arg any) ([]EmailRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query emails: %w", err)
	}
	defer rows.Close()

	emails := []EmailRecord{}
	for rows.Next() {
		var e EmailRecord
		if err := rows.Scan(&e.ID, &e.BookingID, &e.PNR, &e.Type, &e.To, &e.Subject, &e.Body, &e.Status, &e.SentAt); err != nil {
			return nil, fmt.Errorf("scan email: %w", err)
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}

func marshalBookingFields(b Booking) (flightData, passengers, contact, counts []byte, err error) {
	flightData = []byte(b.FlightData)
	if len(flightData) == 0 {
		flightData = []byte("null")
	}
	if passengers, err = json.Marshal(b.Passengers); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal passengers: %w", err)
	}
	if contact, err = json.Marshal(b.Contact); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal contact: %w", err)
	}
	if counts, err = json.Marshal(b.PassengerCounts); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal passenger counts: %w", err)
	}
	return flightData, passengers, contact, counts, nil
}

func scanBooking(scan func(dest ...any) error) (*Booking, error) {
	var (
		b          Booking
		flightData []byte
		passengers []byte
		contact    []byte
		counts     []byte
	)
	err := scan(&b.ID, &b.PNR, &b.FlightID, &flightData, &passengers, &contact,
		&counts, &b.TotalPrice, &b.Currency, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}

	b.FlightData = json.RawMessage(flightData)
	if err := json.Unmarshal(passengers, &b.Passengers); err != nil {
		return nil, fmt.Errorf("unmarshal passengers: %w", err)
	}
	if err := json.Unmarshal(contact, &b.Contact); err != nil {
		return nil, fmt.Errorf("unmarshal contact: %w", err)
	}
	if err := json.Unmarshal(counts, &b.PassengerCounts); err != nil {
		return nil, fmt.Errorf("unmarshal passenger counts: %w", err)
	}
	return &b, nil
}
