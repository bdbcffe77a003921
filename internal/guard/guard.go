// Package guard paces and protects calls to remote inference services
// with a token bucket rate limiter and a circuit breaker.
package guard

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Config holds guard settings
type Config struct {
	Name string
	// RequestsPerSecond of 0 disables rate limiting
	RequestsPerSecond float64
	Burst             int
	// MaxFailures is the number of consecutive failures that opens the breaker
	MaxFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again
	OpenTimeout time.Duration
	Logger      logrus.FieldLogger
}

// DefaultConfig returns settings suited to hosted chat completion APIs
func DefaultConfig(name string) Config {
	return Config{
		Name:              name,
		RequestsPerSecond: 2,
		Burst:             1,
		MaxFailures:       5,
		OpenTimeout:       30 * time.Second,
	}
}

// Guard wraps calls with rate limiting and circuit breaking
type Guard struct {
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// New creates a guard from config
func New(cfg Config) *Guard {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.OpenTimeout == 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	maxFailures := cfg.MaxFailures
	log := cfg.Logger
	settings := gobreaker.Settings{
		Name:    cfg.Name,
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if log != nil {
				log.WithFields(logrus.Fields{
					"breaker": name,
					"from":    from.String(),
					"to":      to.String(),
				}).Warn("Circuit breaker state changed")
			}
		},
	}

	return &Guard{
		limiter: limiter,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Do runs fn once the limiter allows it and the breaker is closed
func (g *Guard) Do(ctx context.Context, fn func(ctx context.Context) (string, error)) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter: %w", err)
		}
	}

	result, err := g.breaker.Execute(func() (interface{}, error) {
		return fn(ctx)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// State returns the breaker state name
func (g *Guard) State() string {
	return g.breaker.State().String()
}
