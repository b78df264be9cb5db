package flight

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flight380/pkg/amadeus"
)

func offerWithPrice(id, total string) amadeus.Offer {
	return amadeus.Offer{
		ID:    id,
		Price: amadeus.Price{Total: total, Currency: "GBP"},
		Itineraries: []amadeus.Itinerary{{
			Duration: "PT7H25M",
			Segments: []amadeus.Segment{{
				Departure:   amadeus.Endpoint{IataCode: "LHR", At: "2025-02-15T09:30:00"},
				Arrival:     amadeus.Endpoint{IataCode: "JFK", At: "2025-02-15T12:55:00"},
				CarrierCode: "BA",
				Number:      "117",
			}},
		}},
		Raw: json.RawMessage(`{"id":"` + id + `"}`),
	}
}

func resultWith(offers ...amadeus.Offer) *amadeus.SearchResult {
	return &amadeus.SearchResult{Offers: offers}
}

func TestAggregateOffers_SortsAscendingByPrice(t *testing.T) {
	results := []combinationResult{
		{result: resultWith(offerWithPrice("a", "350.00"), offerWithPrice("b", "120.50"))},
		{result: resultWith(offerWithPrice("c", "240.75"))},
	}

	merged, _ := aggregateOffers(results, 0)

	require.Len(t, merged, 3)
	for i := 1; i < len(merged); i++ {
		assert.LessOrEqual(t, merged[i-1].sortPrice, merged[i].sortPrice)
	}
	assert.Equal(t, "b", merged[0].offer.ID)
	assert.Equal(t, "a", merged[2].offer.ID)
}

func TestAggregateOffers_UnparseablePriceSortsLast(t *testing.T) {
	results := []combinationResult{
		{result: resultWith(
			offerWithPrice("bad", "not-a-number"),
			offerWithPrice("cheap", "99.00"),
			offerWithPrice("missing", ""),
		)},
	}

	merged, _ := aggregateOffers(results, 0)

	require.Len(t, merged, 3)
	assert.Equal(t, "cheap", merged[0].offer.ID)
	assert.Equal(t, float64(priceSentinel), merged[1].sortPrice)
	assert.Equal(t, float64(priceSentinel), merged[2].sortPrice)
}

func TestAggregateOffers_FailedCombinationsContributeNothing(t *testing.T) {
	results := []combinationResult{
		{err: fmt.Errorf("upstream down")},
		{result: resultWith(offerWithPrice("a", "100.00"))},
		{err: fmt.Errorf("timeout")},
	}

	merged, _ := aggregateOffers(results, 0)

	require.Len(t, merged, 1)
	assert.Equal(t, "a", merged[0].offer.ID)
}

func TestAggregateOffers_TruncatesToCap(t *testing.T) {
	var offers []amadeus.Offer
	for i := 0; i < 100; i++ {
		offers = append(offers, offerWithPrice(fmt.Sprintf("o%d", i), fmt.Sprintf("%d.00", 100+i)))
	}
	results := []combinationResult{{result: resultWith(offers...)}}

	merged, _ := aggregateOffers(results, flexibleResultCap)

	assert.Len(t, merged, flexibleResultCap)
	// the cap keeps the cheapest offers
	assert.Equal(t, "o0", merged[0].offer.ID)
}

func TestAggregateOffers_NoDeduplication(t *testing.T) {
	// the same flight appearing under two date combinations is kept twice
	results := []combinationResult{
		{combination: SearchCombination{DepartureOffset: -1}, result: resultWith(offerWithPrice("same", "150.00"))},
		{combination: SearchCombination{DepartureOffset: 1}, result: resultWith(offerWithPrice("same", "150.00"))},
	}

	merged, _ := aggregateOffers(results, 0)

	assert.Len(t, merged, 2)
}

func TestAggregateOffers_StableOrderOnEqualPrices(t *testing.T) {
	results := []combinationResult{
		{result: resultWith(offerWithPrice("first", "200.00"), offerWithPrice("second", "200.00"))},
	}

	merged, _ := aggregateOffers(results, 0)

	require.Len(t, merged, 2)
	assert.Equal(t, "first", merged[0].offer.ID)
	assert.Equal(t, "second", merged[1].offer.ID)
}

func TestAggregateOffers_MergesCarrierDictionaries(t *testing.T) {
	results := []combinationResult{
		{result: &amadeus.SearchResult{
			Offers:       []amadeus.Offer{offerWithPrice("a", "100.00")},
			Dictionaries: amadeus.Dictionaries{Carriers: map[string]string{"BA": "BRITISH AIRWAYS"}},
		}},
		{result: &amadeus.SearchResult{
			Offers:       []amadeus.Offer{offerWithPrice("b", "110.00")},
			Dictionaries: amadeus.Dictionaries{Carriers: map[string]string{"VS": "VIRGIN ATLANTIC"}},
		}},
	}

	_, dictionaries := aggregateOffers(results, 0)

	assert.Equal(t, "BRITISH AIRWAYS", dictionaries.Carriers["BA"])
	assert.Equal(t, "VIRGIN ATLANTIC", dictionaries.Carriers["VS"])
}
