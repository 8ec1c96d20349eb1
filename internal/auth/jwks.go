package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// KeyFetcher resolves a token's kid to a public verification key
type KeyFetcher interface {
	PublicKey(ctx context.Context, kid string) (interface{}, error)
}

// JWKSFetcher serves keys from a cached JWKS document.
// The cache refreshes in the background; an unknown kid forces one refresh
// so key rotation is picked up without waiting for the interval.
type JWKSFetcher struct {
	cache *jwk.Cache
	url   string
}

// NewJWKSFetcher registers url with a background-refreshing cache bound to ctx.
// The first fetch happens lazily on the first PublicKey call.
func NewJWKSFetcher(ctx context.Context, url string, refreshInterval time.Duration, httpClient *http.Client) (*JWKSFetcher, error) {
	cache := jwk.NewCache(ctx)

	opts := []jwk.RegisterOption{jwk.WithMinRefreshInterval(refreshInterval)}
	if httpClient != nil {
		opts = append(opts, jwk.WithHTTPClient(httpClient))
	}
	if err := cache.Register(url, opts...); err != nil {
		return nil, fmt.Errorf("failed to register JWKS url: %w", err)
	}

	return &JWKSFetcher{cache: cache, url: url}, nil
}

// PublicKey returns the raw public key for kid
func (f *JWKSFetcher) PublicKey(ctx context.Context, kid string) (interface{}, error) {
	set, err := f.cache.Get(ctx, f.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}

	key, ok := set.LookupKeyID(kid)
	if !ok {
		set, err = f.cache.Refresh(ctx, f.url)
		if err != nil {
			return nil, fmt.Errorf("failed to refresh JWKS: %w", err)
		}
		if key, ok = set.LookupKeyID(kid); !ok {
			return nil, fmt.Errorf("%w: kid %q", ErrUnknownKey, kid)
		}
	}

	var raw interface{}
	if err := key.Raw(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode JWK %q: %w", kid, err)
	}
	return raw, nil
}
