package flight

import (
	"sort"
	"strconv"

	"flight380/pkg/amadeus"
)

// priceSentinel pushes offers with a missing or unparseable price to the tail
// of the sorted result instead of failing the aggregation
const priceSentinel = 999999

const (
	flexibleResultCap = 75
	singleResultCap   = 150
)

type combinationResult struct {
	combination SearchCombination
	result      *amadeus.SearchResult
	err         error
}

type annotatedOffer struct {
	offer       amadeus.Offer
	combination SearchCombination
	sortPrice   float64
}

func parseSortPrice(total string) float64 {
	if total == "" {
		return priceSentinel
	}
	price, err := strconv.ParseFloat(total, 64)
	if err != nil {
		return priceSentinel
	}
	return price
}

// aggregateOffers merges every successful combination's offers, stamps each
// offer with the combination it came from, sorts ascending by price and
// truncates to the cap. Offers are never deduplicated: the same physical
// flight can legitimately surface under several searched date pairs.
func aggregateOffers(results []combinationResult, limit int) ([]annotatedOffer, amadeus.Dictionaries) {
	merged := make([]annotatedOffer, 0)
	dictionaries := amadeus.Dictionaries{Carriers: make(map[string]string)}

	for _, cr := range results {
		if cr.err != nil || cr.result == nil {
			continue
		}
		for code, name := range cr.result.Dictionaries.Carriers {
			dictionaries.Carriers[code] = name
		}
		for _, offer := range cr.result.Offers {
			merged = append(merged, annotatedOffer{
				offer:       offer,
				combination: cr.combination,
				sortPrice:   parseSortPrice(offer.Price.Total),
			})
		}
	}

	// stable: equal prices keep their arrival order
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].sortPrice < merged[j].sortPrice
	})

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}

	return merged, dictionaries
}
