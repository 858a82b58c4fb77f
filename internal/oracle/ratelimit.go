package oracle

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttled wraps a generator with a client-side request budget so
// parallel batch runs stay under the service's requests-per-minute quota.
type Throttled struct {
	next    Generator
	limiter *rate.Limiter
}

// Throttle limits next to rps requests per second with the given burst.
func Throttle(next Generator, rps float64, burst int) *Throttled {
	return &Throttled{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Generate blocks until the limiter admits the request, then delegates.
func (t *Throttled) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return t.next.Generate(ctx, prompt, maxTokens)
}
