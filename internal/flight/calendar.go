package flight

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"flight380/pkg/amadeus"
	"flight380/pkg/logger"
)

type calendarEntry struct {
	date  string
	price float64
	ok    bool
}

// buildFareCalendar fetches the cheapest price for every candidate date with
// one single-result query per date, paced in batches. A date whose query
// fails or returns no priceable offer is simply absent from the map.
func (s *Service) buildFareCalendar(ctx context.Context, origin, destination string, combos []SearchCombination, travelClass, currency string) map[string]float64 {
	entries := make([]calendarEntry, len(combos))

	runBatched(ctx, len(combos), calendarBatch, s.batchPause, func(ctx context.Context, i int) {
		combo := combos[i]
		query := amadeus.SearchQuery{
			Origin:        origin,
			Destination:   destination,
			DepartureDate: combo.DepartureString(),
			ReturnDate:    combo.ReturnString(),
			Adults:        1,
			TravelClass:   travelClass,
			MaxResults:    1,
			Currency:      currency,
		}

		result, err := s.client.SearchFlightOffers(ctx, query)
		if err != nil {
			s.logger.Debug("fare calendar date failed",
				logger.Field{Key: "date", Value: combo.DepartureString()},
				logger.Field{Key: "err", Value: err},
			)
			return
		}
		if len(result.Offers) == 0 {
			return
		}

		grandTotal := result.Offers[0].Price.GrandTotal
		if grandTotal == "" {
			return
		}
		price, err := strconv.ParseFloat(grandTotal, 64)
		if err != nil {
			return
		}

		entries[i] = calendarEntry{date: combo.DepartureString(), price: price, ok: true}
	})

	calendar := make(map[string]float64, len(entries))
	for _, e := range entries {
		if e.ok {
			calendar[e.date] = e.price
		}
	}
	return calendar
}

type cachedCalendar struct {
	Data     map[string]float64 `json:"data"`
	Currency string             `json:"currency"`
}

func calendarCacheKey(origin, destination, month string, oneWay bool, durationDays int) string {
	key := fmt.Sprintf("farecal:%s:%s:%s:%t:%d", origin, destination, month, oneWay, durationDays)
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("flight:calendar:%x", hash[:16])
}

// GetFareCalendar returns a date->cheapest-price map for roughly two months
// around the center date. Results are cached per route and month; concurrent
// misses for the same key share a single upstream fan-out.
func (s *Service) GetFareCalendar(ctx context.Context, origin, destination, centerDate string, oneWay bool, durationDays int, currency string) (*FareCalendarResponse, error) {
	if origin == "" || destination == "" {
		return nil, newValidationError("origin and destination are required")
	}
	center, err := time.Parse(dateLayout, centerDate)
	if err != nil {
		return nil, newValidationError("invalid departure_date, expected YYYY-MM-DD")
	}
	if durationDays < 1 {
		durationDays = 7
	}
	if currency == "" {
		currency = s.defaultCurrency
	}

	origin = strings.ToUpper(origin)
	destination = strings.ToUpper(destination)

	cacheKey := calendarCacheKey(origin, destination, center.Format("2006-01"), oneWay, durationDays)

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
		var stored cachedCalendar
		if err := json.Unmarshal([]byte(cached), &stored); err == nil {
			return &FareCalendarResponse{
				Success:     true,
				Data:        stored.Data,
				Currency:    stored.Currency,
				Origin:      origin,
				Destination: destination,
				Cached:      true,
			}, nil
		}
		s.logger.Error("failed to unmarshal cached calendar", logger.Field{Key: "cache_key", Value: cacheKey})
	}

	computed, err, _ := s.calendarGroup.Do(cacheKey, func() (any, error) {
		combos := calendarCombinations(center, s.now(), oneWay, durationDays)
		calendar := s.buildFareCalendar(ctx, origin, destination, combos, "ECONOMY", currency)

		payload, err := json.Marshal(cachedCalendar{Data: calendar, Currency: currency})
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(payload), s.calendarTTL); err != nil {
				s.logger.Error("failed to cache fare calendar", logger.Field{Key: "err", Value: err})
			}
		}
		return calendar, nil
	})
	if err != nil {
		return nil, err
	}

	return &FareCalendarResponse{
		Success:     true,
		Data:        computed.(map[string]float64),
		Currency:    currency,
		Origin:      origin,
		Destination: destination,
		Cached:      false,
	}, nil
}
