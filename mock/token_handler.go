package main

import (
	"encoding/json"
	"net/http"
)

type TokenResponse struct {
	Type        string `json:"type"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	State       string `json:"state"`
}

// TokenHandler issues a static bearer token for any client credentials
func TokenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TokenResponse{
		Type:        "amadeusOAuth2Token",
		AccessToken: "mock-access-token",
		TokenType:   "Bearer",
		ExpiresIn:   1799,
		State:       "approved",
	})
}
