package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"flight380/pkg/logger"
)

// SearchFlightOffers runs one exact-date search. No retries happen here;
// the fan-out layer decides how to treat failures.
func (c *Client) SearchFlightOffers(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	params := url.Values{}
	params.Set("originLocationCode", strings.ToUpper(q.Origin))
	params.Set("destinationLocationCode", strings.ToUpper(q.Destination))
	params.Set("departureDate", q.DepartureDate)
	if q.ReturnDate != "" {
		params.Set("returnDate", q.ReturnDate)
	}

	adults := q.Adults
	if adults < 1 {
		adults = 1
	}
	params.Set("adults", strconv.Itoa(adults))
	// zero counts are omitted entirely, the provider rejects children=0
	if q.Children > 0 {
		params.Set("children", strconv.Itoa(q.Children))
	}
	if q.Infants > 0 {
		params.Set("infants", strconv.Itoa(q.Infants))
	}

	if q.TravelClass != "" {
		params.Set("travelClass", q.TravelClass)
	}
	params.Set("nonStop", strconv.FormatBool(q.NonStop))

	maxResults := q.MaxResults
	if maxResults < 1 {
		maxResults = 50
	}
	params.Set("max", strconv.Itoa(maxResults))

	if q.Currency != "" {
		params.Set("currencyCode", q.Currency)
	}

	body, err := c.get(ctx, flightOffersPath, params)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data         []Offer         `json:"data"`
		Meta         json.RawMessage `json:"meta"`
		Dictionaries Dictionaries    `json:"dictionaries"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode flight offers response: %w", err)
	}

	return &SearchResult{
		Offers:       payload.Data,
		Meta:         payload.Meta,
		Dictionaries: payload.Dictionaries,
	}, nil
}

// SearchLocations looks up airports and cities by keyword. The matching
// documents are passed through untouched for the front end.
func (c *Client) SearchLocations(ctx context.Context, keyword string, limit int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("keyword", keyword)
	params.Set("subType", "AIRPORT,CITY")
	if limit > 0 {
		params.Set("page[limit]", strconv.Itoa(limit))
	}

	body, err := c.get(ctx, locationsPath, params)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode locations response: %w", err)
	}
	return payload.Data, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.host); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amadeus request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read amadeus response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, body)
		c.logger.Warn("amadeus rejected request",
			logger.Field{Key: "path", Value: path},
			logger.Field{Key: "status", Value: apiErr.Status},
			logger.Field{Key: "detail", Value: apiErr.Detail},
		)
		return nil, apiErr
	}

	return body, nil
}
