package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter throttles outbound calls per upstream host. The flight-offers
// provider enforces a low request rate on sandbox credentials, so every
// search call waits for a token before dispatch.
type HostLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults Config
}

type Config struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 10,
		BurstSize:         10,
	}
}

func NewHostLimiter(config Config) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: config,
	}
}

func (h *HostLimiter) limiter(host string) *rate.Limiter {
	h.mu.RLock()
	limiter, exists := h.limiters[host]
	h.mu.RUnlock()

	if exists {
		return limiter
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if limiter, exists = h.limiters[host]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(h.defaults.RequestsPerSecond), h.defaults.BurstSize)
	h.limiters[host] = limiter
	return limiter
}

func (h *HostLimiter) SetHostLimit(host string, rps float64, burst int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.limiters[host] = rate.NewLimiter(rate.Limit(rps), burst)
}

// Wait blocks until the host's limiter grants a token or ctx is done
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	return h.limiter(host).Wait(ctx)
}
