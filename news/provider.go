package news

import (
	"context"
	"time"

	"github.com/avaldezm/newsight/models"
)

// Provider fetches documents for a query from a single source. Each provider
// enforces its own contribution cap; the aggregator never trims provider
// output further.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, query string) ([]models.Document, error)
}

// WithTimeout bounds a single provider's fetch window, so sources with
// different configured durations are cut off individually. The aggregator's
// own timeout still caps the whole fan-out. A non-positive timeout returns
// the provider unchanged.
func WithTimeout(p Provider, timeout time.Duration) Provider {
	if timeout <= 0 {
		return p
	}
	return &timeoutProvider{inner: p, timeout: timeout}
}

type timeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

func (t *timeoutProvider) Name() string { return t.inner.Name() }

func (t *timeoutProvider) Fetch(ctx context.Context, query string) ([]models.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Fetch(ctx, query)
}
