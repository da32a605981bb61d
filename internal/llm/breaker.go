package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/merchkit/cross-sell-service/internal/domain"
	gobreaker "github.com/sony/gobreaker/v2"
)

const (
	breakerFailureThreshold = 3
	breakerOpenTimeout      = 30 * time.Second
)

// BreakerClient wraps a Client with a circuit breaker so a misbehaving
// backend fails fast instead of tying up request handlers on timeouts.
type BreakerClient struct {
	inner Client
	cb    *gobreaker.CircuitBreaker[string]
}

func WithBreaker(inner Client) *BreakerClient {
	settings := gobreaker.Settings{
		Name:    "llm-backend",
		Timeout: breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
	}
	return &BreakerClient{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[string](settings),
	}
}

func (c *BreakerClient) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := c.cb.Execute(func() (string, error) {
		return c.inner.Complete(ctx, prompt)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: circuit open", domain.ErrBackendUnavailable)
		}
		return "", err
	}
	return out, nil
}

// State reports the breaker state for the status endpoint.
func (c *BreakerClient) State() string {
	return c.cb.State().String()
}
