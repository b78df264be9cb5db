package flight

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flight380/pkg/amadeus"
)

func TestFormatLayover(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{90, "1h 30m"},
		{60, "1h"},
		{45, "45m"},
		{135, "2h 15m"},
		{120, "2h"},
		{1, "1m"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, formatLayover(tc.minutes), "minutes=%d", tc.minutes)
	}
}

func TestLayoverStrings(t *testing.T) {
	segments := []amadeus.Segment{
		{
			Departure: amadeus.Endpoint{IataCode: "LHR", At: "2025-02-15T08:00:00"},
			Arrival:   amadeus.Endpoint{IataCode: "AMS", At: "2025-02-15T10:00:00"},
		},
		{
			Departure: amadeus.Endpoint{IataCode: "AMS", At: "2025-02-15T11:30:00"},
			Arrival:   amadeus.Endpoint{IataCode: "JFK", At: "2025-02-15T14:00:00"},
		},
	}

	assert.Equal(t, []string{"1h 30m"}, layoverStrings(segments))
}

func TestLayoverStrings_NonPositiveGapOmitted(t *testing.T) {
	segments := []amadeus.Segment{
		{
			Arrival: amadeus.Endpoint{IataCode: "AMS", At: "2025-02-15T11:30:00"},
		},
		{
			// departs before the previous segment lands: data glitch, no entry
			Departure: amadeus.Endpoint{IataCode: "AMS", At: "2025-02-15T11:00:00"},
		},
	}

	assert.Nil(t, layoverStrings(segments))
}

func TestLayoverStrings_SingleSegment(t *testing.T) {
	segments := []amadeus.Segment{{
		Departure: amadeus.Endpoint{IataCode: "LHR", At: "2025-02-15T08:00:00"},
		Arrival:   amadeus.Endpoint{IataCode: "JFK", At: "2025-02-15T11:00:00"},
	}}

	assert.Nil(t, layoverStrings(segments))
}

func roundTripOffer() amadeus.Offer {
	return amadeus.Offer{
		ID:                    "42",
		NumberOfBookableSeats: 5,
		Price:                 amadeus.Price{Total: "512.80", Currency: "GBP"},
		Itineraries: []amadeus.Itinerary{
			{
				Duration: "PT8H10M",
				Segments: []amadeus.Segment{
					{
						Departure:   amadeus.Endpoint{IataCode: "LHR", At: "2025-02-15T09:30:00"},
						Arrival:     amadeus.Endpoint{IataCode: "AMS", At: "2025-02-15T11:45:00"},
						CarrierCode: "KL",
						Number:      "1008",
					},
					{
						Departure:   amadeus.Endpoint{IataCode: "AMS", At: "2025-02-15T13:15:00"},
						Arrival:     amadeus.Endpoint{IataCode: "JFK", At: "2025-02-15T16:40:00"},
						CarrierCode: "KL",
						Number:      "641",
					},
				},
			},
			{
				Duration: "PT7H05M",
				Segments: []amadeus.Segment{{
					Departure:   amadeus.Endpoint{IataCode: "JFK", At: "2025-02-22T18:30:00"},
					Arrival:     amadeus.Endpoint{IataCode: "LHR", At: "2025-02-23T06:35:00"},
					CarrierCode: "KL",
					Number:      "642",
				}},
			},
		},
		Raw: json.RawMessage(`{"id":"42","price":{"total":"512.80"}}`),
	}
}

func TestFormatOffer_RoundTrip(t *testing.T) {
	carriers := map[string]string{"KL": "KLM ROYAL DUTCH AIRLINES"}

	flight, err := formatOffer(annotatedOffer{offer: roundTripOffer()}, carriers, false)
	require.NoError(t, err)

	assert.Equal(t, "42", flight.ID)
	assert.Equal(t, "LHR", flight.From)
	assert.Equal(t, "JFK", flight.To)
	assert.Equal(t, "2025-02-15T09:30:00", flight.DepartureTime)
	assert.Equal(t, "2025-02-15T16:40:00", flight.ArrivalTime)
	assert.Equal(t, "PT8H10M", flight.Duration)
	assert.Equal(t, 1, flight.Stops)
	assert.False(t, flight.IsDirect)
	assert.Equal(t, "KLM ROYAL DUTCH AIRLINES", flight.Airline)
	assert.Equal(t, "KL", flight.AirlineCode)
	assert.Equal(t, 512.80, flight.Price)
	assert.Equal(t, "GBP", flight.Currency)
	assert.Equal(t, 5, flight.NumberOfBookableSeats)
	assert.Equal(t, []string{"1h 30m"}, flight.Layovers)

	assert.Equal(t, "2025-02-22T18:30:00", flight.ReturnDepartureTime)
	assert.Equal(t, "2025-02-23T06:35:00", flight.ReturnArrivalTime)
	assert.Equal(t, "PT7H05M", flight.ReturnDuration)
	require.NotNil(t, flight.ReturnStops)
	assert.Equal(t, 0, *flight.ReturnStops)
	require.NotNil(t, flight.ReturnIsDirect)
	assert.True(t, *flight.ReturnIsDirect)

	// untouched upstream document rides along
	assert.JSONEq(t, `{"id":"42","price":{"total":"512.80"}}`, string(flight.RawData))
}

func TestFormatOffer_CarrierFallbackToCode(t *testing.T) {
	flight, err := formatOffer(annotatedOffer{offer: roundTripOffer()}, nil, false)
	require.NoError(t, err)

	assert.Equal(t, "KL", flight.Airline)
}

func TestFormatOffer_FlexibleStamping(t *testing.T) {
	a := annotatedOffer{
		offer: roundTripOffer(),
		combination: SearchCombination{
			DepartureDate:   date("2025-02-13"),
			ReturnDate:      date("2025-02-22"),
			DepartureOffset: -2,
			ReturnOffset:    -2,
		},
	}

	flight, err := formatOffer(a, nil, true)
	require.NoError(t, err)

	require.NotNil(t, flight.DepartureDateOffset)
	assert.Equal(t, -2, *flight.DepartureDateOffset)
	require.NotNil(t, flight.ReturnDateOffset)
	assert.Equal(t, -2, *flight.ReturnDateOffset)
	assert.Equal(t, "2025-02-13", flight.SearchedDepartureDate)
	assert.Equal(t, "2025-02-22", flight.SearchedReturnDate)
}

func TestFormatOffer_ZeroOffsetStillStamped(t *testing.T) {
	a := annotatedOffer{
		offer:       roundTripOffer(),
		combination: SearchCombination{DepartureDate: date("2025-02-15")},
	}

	flight, err := formatOffer(a, nil, true)
	require.NoError(t, err)

	require.NotNil(t, flight.DepartureDateOffset)
	assert.Equal(t, 0, *flight.DepartureDateOffset)
}

func TestFormatOffers_SkipsBrokenOffers(t *testing.T) {
	broken := amadeus.Offer{ID: "broken"} // no itineraries
	unpriceable := roundTripOffer()
	unpriceable.Price.Total = "NaN-ish"

	offers := []annotatedOffer{
		{offer: broken},
		{offer: roundTripOffer()},
		{offer: unpriceable},
	}

	formatted := formatOffers(offers, nil, false)

	require.Len(t, formatted, 1)
	assert.Equal(t, "42", formatted[0].ID)
}

func TestFormatOffer_DirectFlight(t *testing.T) {
	offer := roundTripOffer()
	offer.Itineraries = offer.Itineraries[1:] // single direct itinerary

	flight, err := formatOffer(annotatedOffer{offer: offer}, nil, false)
	require.NoError(t, err)

	assert.Equal(t, "JFK", flight.From)
	assert.Equal(t, "LHR", flight.To)
	assert.Equal(t, 0, flight.Stops)
	assert.True(t, flight.IsDirect)
	assert.Nil(t, flight.Layovers)
	assert.Empty(t, flight.ReturnDepartureTime)
}
