package connectors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Default client settings shared by the provider adapters.
const (
	DefaultTimeout         = 10 * time.Second
	DefaultRPS             = 5.0
	DefaultBurst           = 5
	DefaultBreakerFailures = 5
	DefaultBreakerCooldown = 30 * time.Second
)

// ClientConfig configures one provider's HTTP client, rate limiter, and
// circuit breaker.
type ClientConfig struct {
	BaseURL         string        `yaml:"base_url"`
	APIKey          string        `yaml:"api_key"`
	Timeout         time.Duration `yaml:"timeout"`
	RPS             float64       `yaml:"rps"`
	Burst           int           `yaml:"burst"`
	BreakerFailures uint32        `yaml:"breaker_failures"`
	BreakerCooldown time.Duration `yaml:"breaker_cooldown"`
}

func (c ClientConfig) withDefaults() ClientConfig {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RPS <= 0 {
		c.RPS = DefaultRPS
	}
	if c.Burst <= 0 {
		c.Burst = DefaultBurst
	}
	if c.BreakerFailures == 0 {
		c.BreakerFailures = DefaultBreakerFailures
	}
	if c.BreakerCooldown <= 0 {
		c.BreakerCooldown = DefaultBreakerCooldown
	}
	return c
}

// providerClient bundles the transport concerns every adapter shares:
// resty HTTP client, token-bucket rate limiting, and a circuit breaker.
type providerClient struct {
	name    string
	http    *resty.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

func newProviderClient(name string, cfg ClientConfig) *providerClient {
	cfg = cfg.withDefaults()

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		httpClient.SetHeader("X-API-KEY", cfg.APIKey)
	}

	failures := cfg.BreakerFailures
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
	})

	return &providerClient{
		name:    name,
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		breaker: breaker,
	}
}

// getJSON performs a rate-limited, breaker-guarded GET and decodes the JSON
// body into out.
func (p *providerClient) getJSON(ctx context.Context, op, path string, query map[string]string, out any) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return connErr(p.name, op, fmt.Errorf("%w: %v", ErrRateLimited, err))
	}

	_, err := p.breaker.Execute(func() (any, error) {
		resp, err := p.http.R().
			SetContext(ctx).
			SetQueryParams(query).
			SetResult(out).
			Get(path)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode() == http.StatusTooManyRequests {
			return nil, ErrRateLimited
		}
		if resp.IsError() {
			return nil, fmt.Errorf("http %d", resp.StatusCode())
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return connErr(p.name, op, ErrUnavailable)
		}
		return connErr(p.name, op, err)
	}
	return nil
}
