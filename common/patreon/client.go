package patreon

import (
	"context"
	"net/http"

	"github.com/StikStore/stikstore.github.io/common"
	"github.com/StikStore/stikstore.github.io/common/patreon/patreonapi"
	"github.com/hashicorp/go-cleanhttp"
	"golang.org/x/oauth2"
)

// API is the part of the patreon api the sync needs.
type API interface {
	FetchIdentity() (*patreonapi.IdentityResponse, error)
	FetchMembers(campaign string, count int) (*patreonapi.MembersResponse, error)
	FetchMembersPage(next string) (*patreonapi.MembersResponse, error)
}

var _ API = (*patreonapi.Client)(nil)

// NewHTTPClient returns a client that authenticates every request with the
// static access token. base defaults to a pooled cleanhttp transport.
func NewHTTPClient(accessToken string, base http.RoundTripper) *http.Client {
	if base == nil {
		base = cleanhttp.DefaultPooledTransport()
	}

	inner := &http.Client{Transport: &common.MetricsTransport{Inner: base}}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, inner)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
}

// NewClient creates an api client from conf. Requests are spaced out to
// conf.RequestsPerSecond, 0 disables the limit.
func NewClient(conf *Config, base http.RoundTripper) *patreonapi.Client {
	if base == nil {
		base = cleanhttp.DefaultPooledTransport()
	}

	if conf.RequestsPerSecond > 0 {
		base = NewRateLimitTransport(base, conf.RequestsPerSecond)
	}

	return patreonapi.NewClient(NewHTTPClient(conf.AccessToken, base), conf.APIBase, conf.UserAgent)
}
