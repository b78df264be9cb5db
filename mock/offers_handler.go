package main

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math/rand"
	"net/http"
	"strconv"
	"time"
)

type OffersResponse struct {
	Data         []Offer      `json:"data"`
	Dictionaries Dictionaries `json:"dictionaries"`
	Meta         Meta         `json:"meta"`
}

type Meta struct {
	Count int `json:"count"`
}

type Dictionaries struct {
	Carriers map[string]string `json:"carriers"`
}

type Offer struct {
	Type                  string      `json:"type"`
	ID                    string      `json:"id"`
	NumberOfBookableSeats int         `json:"numberOfBookableSeats"`
	Itineraries           []Itinerary `json:"itineraries"`
	Price                 Price       `json:"price"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Departure   Endpoint `json:"departure"`
	Arrival     Endpoint `json:"arrival"`
	CarrierCode string   `json:"carrierCode"`
	Number      string   `json:"number"`
	Duration    string   `json:"duration"`
}

type Endpoint struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

type Price struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	GrandTotal string `json:"grandTotal"`
}

var carriers = map[string]string{
	"BA": "BRITISH AIRWAYS",
	"VS": "VIRGIN ATLANTIC",
	"AA": "AMERICAN AIRLINES",
	"DL": "DELTA AIR LINES",
}

var carrierCodes = []string{"BA", "VS", "AA", "DL"}

// routeSeed keeps prices stable per route and date so repeated searches and
// the fare calendar see consistent numbers
func routeSeed(origin, destination, date string) int64 {
	h := fnv.New64a()
	h.Write([]byte(origin + destination + date))
	return int64(h.Sum64())
}

func buildItinerary(rng *rand.Rand, origin, destination, date string) Itinerary {
	depHour := 6 + rng.Intn(14)
	durationMin := 300 + rng.Intn(300)
	depart := fmt.Sprintf("%sT%02d:%02d:00", date, depHour, rng.Intn(60))
	depTime, _ := time.Parse("2006-01-02T15:04:05", depart)
	arrive := depTime.Add(time.Duration(durationMin) * time.Minute)

	return Itinerary{
		Duration: fmt.Sprintf("PT%dH%dM", durationMin/60, durationMin%60),
		Segments: []Segment{{
			Departure:   Endpoint{IataCode: origin, At: depart},
			Arrival:     Endpoint{IataCode: destination, At: arrive.Format("2006-01-02T15:04:05")},
			CarrierCode: carrierCodes[rng.Intn(len(carrierCodes))],
			Number:      strconv.Itoa(100 + rng.Intn(900)),
			Duration:    fmt.Sprintf("PT%dH%dM", durationMin/60, durationMin%60),
		}},
	}
}

// FlightOffersHandler emulates GET /v2/shopping/flight-offers
func FlightOffersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	origin := q.Get("originLocationCode")
	destination := q.Get("destinationLocationCode")
	departureDate := q.Get("departureDate")
	returnDate := q.Get("returnDate")
	currency := q.Get("currencyCode")
	if currency == "" {
		currency = "GBP"
	}

	if origin == "" || destination == "" || departureDate == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]any{{
				"status": 400,
				"code":   32171,
				"title":  "MANDATORY DATA MISSING",
				"detail": "Missing mandatory query parameter",
			}},
		})
		return
	}

	max := 10
	if parsed, err := strconv.Atoi(q.Get("max")); err == nil && parsed > 0 {
		max = parsed
	}

	rng := rand.New(rand.NewSource(routeSeed(origin, destination, departureDate)))

	offers := make([]Offer, 0, max)
	basePrice := 150 + rng.Intn(600)
	for i := 0; i < max; i++ {
		price := float64(basePrice+i*rng.Intn(40)) + 0.6

		itineraries := []Itinerary{buildItinerary(rng, origin, destination, departureDate)}
		if returnDate != "" {
			itineraries = append(itineraries, buildItinerary(rng, destination, origin, returnDate))
			price *= 1.8
		}

		offers = append(offers, Offer{
			Type:                  "flight-offer",
			ID:                    strconv.Itoa(i + 1),
			NumberOfBookableSeats: 1 + rng.Intn(9),
			Itineraries:           itineraries,
			Price: Price{
				Currency:   currency,
				Total:      fmt.Sprintf("%.2f", price),
				GrandTotal: fmt.Sprintf("%.2f", price),
			},
		})
	}

	delay := 50 + rand.Intn(51) // 50 to 100ms
	time.Sleep(time.Duration(delay) * time.Millisecond)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(OffersResponse{
		Data:         offers,
		Dictionaries: Dictionaries{Carriers: carriers},
		Meta:         Meta{Count: len(offers)},
	})
}
