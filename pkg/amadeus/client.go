package amadeus

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"flight380/pkg/logger"
	"flight380/pkg/ratelimit"
)

const (
	hostTest       = "https://test.api.amadeus.com"
	hostProduction = "https://api.amadeus.com"

	tokenPath        = "/v1/security/oauth2/token"
	flightOffersPath = "/v2/shopping/flight-offers"
	locationsPath    = "/v1/reference-data/locations"
)

type Config struct {
	APIKey    string
	APISecret string
	Hostname  string // "test" for sandbox, "production" for live
	BaseURL   string // overrides Hostname when set (local mock, tests)
}

// Client talks to the Amadeus self-service APIs. Token acquisition and
// refresh go through the OAuth2 client-credentials flow; callers only see
// plain context-aware search methods.
type Client struct {
	httpClient *http.Client
	baseURL    string
	host       string
	limiter    *ratelimit.HostLimiter
	logger     logger.Client
}

func NewClient(cfg Config, limiter *ratelimit.HostLimiter, log logger.Client) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = hostTest
		if cfg.Hostname == "production" {
			base = hostProduction
		}
	}

	creds := clientcredentials.Config{
		ClientID:     cfg.APIKey,
		ClientSecret: cfg.APISecret,
		TokenURL:     base + tokenPath,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	httpClient := creds.Client(context.Background())
	httpClient.Timeout = 30 * time.Second

	host := base
	if parsed, err := url.Parse(base); err == nil {
		host = parsed.Host
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    base,
		host:       host,
		limiter:    limiter,
		logger:     log,
	}
}
