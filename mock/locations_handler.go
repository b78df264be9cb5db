package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

type LocationsResponse struct {
	Data []Location `json:"data"`
}

type Location struct {
	Type     string  `json:"type"`
	SubType  string  `json:"subType"`
	Name     string  `json:"name"`
	IataCode string  `json:"iataCode"`
	Address  Address `json:"address"`
}

type Address struct {
	CityName    string `json:"cityName"`
	CountryName string `json:"countryName"`
}

var locations = []Location{
	{Type: "location", SubType: "AIRPORT", Name: "HEATHROW", IataCode: "LHR", Address: Address{CityName: "LONDON", CountryName: "UNITED KINGDOM"}},
	{Type: "location", SubType: "AIRPORT", Name: "GATWICK", IataCode: "LGW", Address: Address{CityName: "LONDON", CountryName: "UNITED KINGDOM"}},
	{Type: "location", SubType: "CITY", Name: "LONDON", IataCode: "LON", Address: Address{CityName: "LONDON", CountryName: "UNITED KINGDOM"}},
	{Type: "location", SubType: "AIRPORT", Name: "JOHN F KENNEDY INTL", IataCode: "JFK", Address: Address{CityName: "NEW YORK", CountryName: "UNITED STATES OF AMERICA"}},
	{Type: "location", SubType: "AIRPORT", Name: "NEWARK LIBERTY INTL", IataCode: "EWR", Address: Address{CityName: "NEW YORK", CountryName: "UNITED STATES OF AMERICA"}},
	{Type: "location", SubType: "CITY", Name: "NEW YORK", IataCode: "NYC", Address: Address{CityName: "NEW YORK", CountryName: "UNITED STATES OF AMERICA"}},
	{Type: "location", SubType: "AIRPORT", Name: "DUBAI INTL", IataCode: "DXB", Address: Address{CityName: "DUBAI", CountryName: "UNITED ARAB EMIRATES"}},
	{Type: "location", SubType: "AIRPORT", Name: "SCHIPHOL", IataCode: "AMS", Address: Address{CityName: "AMSTERDAM", CountryName: "NETHERLANDS"}},
	{Type: "location", SubType: "AIRPORT", Name: "CHARLES DE GAULLE", IataCode: "CDG", Address: Address{CityName: "PARIS", CountryName: "FRANCE"}},
	{Type: "location", SubType: "AIRPORT", Name: "ISTANBUL", IataCode: "IST", Address: Address{CityName: "ISTANBUL", CountryName: "TURKEY"}},
}

// LocationsHandler emulates GET /v1/reference-data/locations
func LocationsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	keyword := strings.ToUpper(r.URL.Query().Get("keyword"))
	limit := 10
	if parsed, err := strconv.Atoi(r.URL.Query().Get("page[limit]")); err == nil && parsed > 0 {
		limit = parsed
	}

	matched := make([]Location, 0)
	for _, loc := range locations {
		if len(matched) >= limit {
			break
		}
		if keyword == "" {
			continue
		}
		if strings.Contains(loc.Name, keyword) ||
			strings.Contains(loc.IataCode, keyword) ||
			strings.Contains(loc.Address.CityName, keyword) {
			matched = append(matched, loc)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LocationsResponse{Data: matched})
}
