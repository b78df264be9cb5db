package flight

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"flight380/pkg/amadeus"
)

const segmentTimeLayout = "2006-01-02T15:04:05"

// formatOffers reshapes annotated offers for the front end. An offer missing
// required sub-fields is skipped, never fatal to the batch.
func formatOffers(offers []annotatedOffer, carriers map[string]string, flexible bool) []FormattedFlight {
	formatted := make([]FormattedFlight, 0, len(offers))
	for _, a := range offers {
		flight, err := formatOffer(a, carriers, flexible)
		if err != nil {
			continue
		}
		formatted = append(formatted, flight)
	}
	return formatted
}

func formatOffer(a annotatedOffer, carriers map[string]string, flexible bool) (FormattedFlight, error) {
	offer := a.offer

	if len(offer.Itineraries) == 0 {
		return FormattedFlight{}, errors.New("offer has no itineraries")
	}
	outbound := offer.Itineraries[0]
	if len(outbound.Segments) == 0 {
		return FormattedFlight{}, errors.New("outbound itinerary has no segments")
	}

	first := outbound.Segments[0]
	last := outbound.Segments[len(outbound.Segments)-1]

	carrierCode := first.CarrierCode
	airline := carriers[carrierCode]
	if airline == "" {
		airline = carrierCode
	}

	price := 0.0
	if offer.Price.Total != "" {
		parsed, err := strconv.ParseFloat(offer.Price.Total, 64)
		if err != nil {
			return FormattedFlight{}, fmt.Errorf("unparseable price %q", offer.Price.Total)
		}
		price = parsed
	}

	currency := offer.Price.Currency
	if currency == "" {
		currency = "USD"
	}

	flight := FormattedFlight{
		ID:                    offer.ID,
		From:                  first.Departure.IataCode,
		To:                    last.Arrival.IataCode,
		DepartureTime:         first.Departure.At,
		ArrivalTime:           last.Arrival.At,
		Duration:              outbound.Duration,
		Stops:                 len(outbound.Segments) - 1,
		Airline:               airline,
		AirlineCode:           carrierCode,
		Price:                 price,
		Currency:              currency,
		NumberOfBookableSeats: offer.NumberOfBookableSeats,
		IsDirect:              len(outbound.Segments) == 1,
		Layovers:              layoverStrings(outbound.Segments),
		RawData:               offer.Raw,
	}

	if len(offer.Itineraries) > 1 {
		inbound := offer.Itineraries[1]
		if len(inbound.Segments) > 0 {
			retFirst := inbound.Segments[0]
			retLast := inbound.Segments[len(inbound.Segments)-1]
			retStops := len(inbound.Segments) - 1
			retDirect := len(inbound.Segments) == 1

			flight.ReturnDepartureTime = retFirst.Departure.At
			flight.ReturnArrivalTime = retLast.Arrival.At
			flight.ReturnDuration = inbound.Duration
			flight.ReturnStops = &retStops
			flight.ReturnIsDirect = &retDirect
			flight.ReturnLayovers = layoverStrings(inbound.Segments)
		}
	}

	if flexible {
		depOffset := a.combination.DepartureOffset
		flight.DepartureDateOffset = &depOffset
		flight.SearchedDepartureDate = a.combination.DepartureString()
		if a.combination.HasReturn() {
			retOffset := a.combination.ReturnOffset
			flight.ReturnDateOffset = &retOffset
			flight.SearchedReturnDate = a.combination.ReturnString()
		}
	}

	return flight, nil
}

// layoverStrings computes the gap between each adjacent segment pair. A gap
// that does not compute to a positive duration yields no entry for that leg.
func layoverStrings(segments []amadeus.Segment) []string {
	if len(segments) < 2 {
		return nil
	}

	layovers := make([]string, 0, len(segments)-1)
	for i := 0; i < len(segments)-1; i++ {
		arrival, err := time.Parse(segmentTimeLayout, segments[i].Arrival.At)
		if err != nil {
			continue
		}
		departure, err := time.Parse(segmentTimeLayout, segments[i+1].Departure.At)
		if err != nil {
			continue
		}

		minutes := int(departure.Sub(arrival).Minutes())
		if minutes <= 0 {
			continue
		}
		layovers = append(layovers, formatLayover(minutes))
	}

	if len(layovers) == 0 {
		return nil
	}
	return layovers
}

func formatLayover(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60

	switch {
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}
