package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
)

func main() {
	// Default port
	port := "8081"

	// Check if port is provided as command line argument
	if len(os.Args) > 1 {
		port = os.Args[1]
	}

	http.HandleFunc("/v1/security/oauth2/token", TokenHandler)
	http.HandleFunc("/v2/shopping/flight-offers", FlightOffersHandler)
	http.HandleFunc("/v1/reference-data/locations", LocationsHandler)

	addr := fmt.Sprintf(":%s", port)
	fmt.Printf("Amadeus Mock Server running on port %s...\n", port)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal(err)
	}
}
