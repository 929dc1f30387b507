package patreon

import (
	"net/http"

	"emperror.dev/errors"
	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond keeps a full sync well below the per client
// request budget patreon enforces.
const DefaultRequestsPerSecond = 5

// RateLimitTransport waits on Limiter before handing each request to Inner.
type RateLimitTransport struct {
	Inner   http.RoundTripper
	Limiter *rate.Limiter
}

func NewRateLimitTransport(inner http.RoundTripper, perSecond int) *RateLimitTransport {
	return &RateLimitTransport{
		Inner:   inner,
		Limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

func (t *RateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.Limiter.Wait(req.Context()); err != nil {
		return nil, errors.WithMessage(err, "ratelimit "+req.URL.Path)
	}

	return t.Inner.RoundTrip(req)
}
