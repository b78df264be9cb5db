package flight

import (
	"context"
	"time"

	"flight380/pkg/db"
	"flight380/pkg/idgen"
)

// SearchLogEntry is one analytics record of a performed search
type SearchLogEntry struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Passengers    int
	ResultsCount  int
	Flexible      bool
}

// SearchLogRepository persists search analytics. Recording happens off the
// request path; a failed insert costs a log line, not the search response.
type SearchLogRepository struct {
	db    db.SQLExecutor
	idgen idgen.Generator
}

func NewSearchLogRepository(executor db.SQLExecutor, generator idgen.Generator) *SearchLogRepository {
	return &SearchLogRepository{db: executor, idgen: generator}
}

func (r *SearchLogRepository) Record(ctx context.Context, entry SearchLogEntry) error {
	query := `INSERT INTO flight_searches
		(id, origin, destination, departure_date, return_date, passengers, results_count, flexible, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	var returnDate any
	if entry.ReturnDate != "" {
		returnDate = entry.ReturnDate
	}

	_, err := r.db.ExecContext(ctx, query,
		r.idgen.GenerateID(),
		entry.Origin,
		entry.Destination,
		entry.DepartureDate,
		returnDate,
		entry.Passengers,
		entry.ResultsCount,
		entry.Flexible,
		time.Now().UTC(),
	)
	return err
}
