package flight

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"flight380/pkg/amadeus"
	"flight380/pkg/cache"
	"flight380/pkg/logger"
)

// UpstreamClient is the slice of the provider client the service needs
type UpstreamClient interface {
	SearchFlightOffers(ctx context.Context, q amadeus.SearchQuery) (*amadeus.SearchResult, error)
	SearchLocations(ctx context.Context, keyword string, limit int) (json.RawMessage, error)
}

type ServiceConfig struct {
	SearchTTL       time.Duration
	CalendarTTL     time.Duration
	DefaultCurrency string
}

type Service struct {
	client          UpstreamClient
	cache           cache.Cache
	searchTTL       time.Duration
	calendarTTL     time.Duration
	defaultCurrency string
	logger          logger.Client

	// collapses concurrent fare-calendar computes for the same key
	calendarGroup singleflight.Group

	batchPause time.Duration
	now        func() time.Time
}

func NewService(client UpstreamClient, store cache.Cache, cfg ServiceConfig, log logger.Client) *Service {
	currency := cfg.DefaultCurrency
	if currency == "" {
		currency = "GBP"
	}
	return &Service{
		client:          client,
		cache:           store,
		searchTTL:       cfg.SearchTTL,
		calendarTTL:     cfg.CalendarTTL,
		defaultCurrency: currency,
		logger:          log,
		batchPause:      calendarPause,
		now:             time.Now,
	}
}

var travelClassMap = map[string]string{
	"economy":         "ECONOMY",
	"premium-economy": "PREMIUM_ECONOMY",
	"business":        "BUSINESS",
	"first":           "FIRST",
}

func normalizeTravelClass(class string) string {
	if mapped, ok := travelClassMap[strings.ToLower(class)]; ok {
		return mapped
	}
	if class == "" {
		return "ECONOMY"
	}
	return strings.ToUpper(class)
}

func (s *Service) validateParams(params SearchParams) (departure time.Time, returnDate time.Time, err error) {
	if params.Origin == "" || params.Destination == "" {
		return departure, returnDate, newValidationError("origin and destination are required")
	}
	departure, parseErr := time.Parse(dateLayout, params.DepartureDate)
	if parseErr != nil {
		return departure, returnDate, newValidationError("invalid departure_date, expected YYYY-MM-DD")
	}
	if params.ReturnDate != "" {
		returnDate, parseErr = time.Parse(dateLayout, params.ReturnDate)
		if parseErr != nil {
			return departure, returnDate, newValidationError("invalid return_date, expected YYYY-MM-DD")
		}
	}
	return departure, returnDate, nil
}

func (s *Service) baseQuery(params SearchParams) amadeus.SearchQuery {
	currency := params.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}
	return amadeus.SearchQuery{
		Origin:        strings.ToUpper(params.Origin),
		Destination:   strings.ToUpper(params.Destination),
		DepartureDate: params.DepartureDate,
		ReturnDate:    params.ReturnDate,
		// youth travel as adults upstream
		Adults:      params.Adults + params.Youth,
		Children:    params.Children,
		Infants:     params.Infants,
		TravelClass: normalizeTravelClass(params.TravelClass),
		NonStop:     params.DirectFlights,
		Currency:    currency,
	}
}

func (s *Service) searchCacheKey(params SearchParams) string {
	key := fmt.Sprintf("flight:%s:%s:%s:%s:%d:%d:%d:%s:%t:%t:%s",
		strings.ToUpper(params.Origin),
		strings.ToUpper(params.Destination),
		params.DepartureDate,
		params.ReturnDate,
		params.Adults+params.Youth,
		params.Children,
		params.Infants,
		normalizeTravelClass(params.TravelClass),
		params.DirectFlights,
		params.FlexibleDates,
		params.Currency,
	)
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("flight:search:%x", hash[:16])
}

func (s *Service) cachedSearch(ctx context.Context, key string) *SearchResponse {
	cached, err := s.cache.Get(ctx, key)
	if err != nil || cached == "" {
		return nil
	}
	var response SearchResponse
	if err := json.Unmarshal([]byte(cached), &response); err != nil {
		s.logger.Error("failed to unmarshal cached search", logger.Field{Key: "err", Value: err})
		return nil
	}
	if response.Meta == nil {
		response.Meta = &SearchMeta{}
	}
	response.Meta.CacheHit = true
	return &response
}

func (s *Service) storeSearch(ctx context.Context, key string, response *SearchResponse) {
	payload, err := json.Marshal(response)
	if err != nil {
		s.logger.Error("failed to marshal search response", logger.Field{Key: "err", Value: err})
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.searchTTL); err != nil {
		s.logger.Error("failed to cache search response", logger.Field{Key: "err", Value: err})
	}
}

// SearchFlights runs one exact-date search. Upstream failure is reported in
// the response body, not as an error: only invalid input fails hard.
func (s *Service) SearchFlights(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	if _, _, err := s.validateParams(params); err != nil {
		return nil, err
	}

	cacheKey := s.searchCacheKey(params)
	if cached := s.cachedSearch(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	query := s.baseQuery(params)
	query.MaxResults = 50

	startTime := s.now()
	result, err := s.client.SearchFlightOffers(ctx, query)
	if err != nil {
		return failureResponse(err), nil
	}

	results := []combinationResult{{
		combination: SearchCombination{},
		result:      result,
	}}
	offers, dictionaries := aggregateOffers(results, singleResultCap)
	flights := formatOffers(offers, dictionaries.Carriers, false)

	response := &SearchResponse{
		Success: true,
		Flights: flights,
		Count:   len(flights),
		Meta: &SearchMeta{
			SearchTimeMs: s.now().Sub(startTime).Milliseconds(),
			Upstream:     result.Meta,
		},
	}

	s.storeSearch(ctx, cacheKey, response)
	return response, nil
}

// SearchFlightsFlexible fans the search out across nearby date combinations.
// Individual combination failures are absorbed: even all of them failing
// yields a success response with zero offers.
func (s *Service) SearchFlightsFlexible(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	departure, returnDate, err := s.validateParams(params)
	if err != nil {
		return nil, err
	}

	cacheKey := s.searchCacheKey(params)
	if cached := s.cachedSearch(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	combos := flexibleCombinations(departure, returnDate, params.ReturnDate != "")
	base := s.baseQuery(params)
	base.MaxResults = flexiblePerCombination

	startTime := s.now()
	results := make([]combinationResult, len(combos))

	runAll(ctx, len(combos), fanoutWorkers, func(ctx context.Context, i int) {
		combo := combos[i]
		query := base
		query.DepartureDate = combo.DepartureString()
		query.ReturnDate = combo.ReturnString()

		result, err := s.client.SearchFlightOffers(ctx, query)
		results[i] = combinationResult{combination: combo, result: result, err: err}
		if err != nil {
			s.logger.Warn("flexible combination failed",
				logger.Field{Key: "departure", Value: combo.DepartureString()},
				logger.Field{Key: "return", Value: combo.ReturnString()},
				logger.Field{Key: "err", Value: err},
			)
		}
	})

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
		}
	}

	offers, dictionaries := aggregateOffers(results, flexibleResultCap)
	flights := formatOffers(offers, dictionaries.Carriers, true)

	response := &SearchResponse{
		Success: true,
		Flights: flights,
		Count:   len(flights),
		Meta: &SearchMeta{
			FlexibleSearch:     true,
			Combinations:       len(combos),
			CombinationsFailed: failed,
			SearchTimeMs:       s.now().Sub(startTime).Milliseconds(),
		},
	}

	s.storeSearch(ctx, cacheKey, response)
	return response, nil
}

// flexiblePerCombination caps each combination's upstream fetch; the merged
// list is truncated to flexibleResultCap afterwards
const flexiblePerCombination = 20

// SearchAirports proxies the locations lookup
func (s *Service) SearchAirports(ctx context.Context, keyword string, limit int) (*LocationsResponse, error) {
	if len(keyword) < 2 {
		return nil, newValidationError("keyword must be at least 2 characters")
	}

	data, err := s.client.SearchLocations(ctx, keyword, limit)
	if err != nil {
		return &LocationsResponse{Success: false, Error: errorBody(err)}, nil
	}
	return &LocationsResponse{Success: true, Data: data}, nil
}

func failureResponse(err error) *SearchResponse {
	return &SearchResponse{
		Success: false,
		Flights: []FormattedFlight{},
		Error:   errorBody(err),
	}
}

func errorBody(err error) *ErrorBody {
	var apiErr *amadeus.APIError
	if errors.As(err, &apiErr) {
		return &ErrorBody{Code: ErrorCodeUpstream, Message: apiErr.Error()}
	}
	return &ErrorBody{Code: ErrorCodeTransport, Message: err.Error()}
}
