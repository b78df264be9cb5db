package amadeus

import "encoding/json"

// SearchQuery holds the parameters of one exact-date flight-offers search
type SearchQuery struct {
	Origin        string
	Destination   string
	DepartureDate string // YYYY-MM-DD
	ReturnDate    string // empty for one-way
	Adults        int
	Children      int
	Infants       int
	TravelClass   string // ECONOMY, PREMIUM_ECONOMY, BUSINESS, FIRST
	NonStop       bool
	MaxResults    int
	Currency      string
}

// Offer is one flight offer document. Only the lookup paths the service
// needs are parsed; the full upstream document is retained in Raw because
// fare-specific fields vary and the booking flow needs them verbatim.
type Offer struct {
	ID                    string
	NumberOfBookableSeats int
	Price                 Price
	Itineraries           []Itinerary
	Raw                   json.RawMessage
}

type offerDoc struct {
	ID                    string      `json:"id"`
	NumberOfBookableSeats int         `json:"numberOfBookableSeats"`
	Price                 Price       `json:"price"`
	Itineraries           []Itinerary `json:"itineraries"`
}

func (o *Offer) UnmarshalJSON(data []byte) error {
	var doc offerDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	o.ID = doc.ID
	o.NumberOfBookableSeats = doc.NumberOfBookableSeats
	o.Price = doc.Price
	o.Itineraries = doc.Itineraries
	o.Raw = append(json.RawMessage(nil), data...)
	return nil
}

type Price struct {
	Total      string `json:"total"`
	GrandTotal string `json:"grandTotal"`
	Currency   string `json:"currency"`
}

type Itinerary struct {
	Duration string    `json:"duration"` // ISO-8601, e.g. PT7H25M
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Departure   Endpoint `json:"departure"`
	Arrival     Endpoint `json:"arrival"`
	CarrierCode string   `json:"carrierCode"`
	Number      string   `json:"number"`
}

type Endpoint struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal"`
	At       string `json:"at"` // local timestamp, e.g. 2025-02-15T09:30:00
}

type Dictionaries struct {
	Carriers map[string]string `json:"carriers"`
}

// SearchResult is the normalized success shape of a flight-offers search
type SearchResult struct {
	Offers       []Offer
	Meta         json.RawMessage
	Dictionaries Dictionaries
}
