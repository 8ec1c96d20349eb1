package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultLeeway absorbs clock skew between us and the identity provider
const DefaultLeeway = 5 * time.Second

// Verifier validates session tokens issued by the identity provider
type Verifier struct {
	keys              KeyFetcher
	authorizedParties map[string]struct{}
	now               func() time.Time
	issuer            string
	leeway            time.Duration
}

// NewVerifier creates a verifier. An empty issuer skips the iss check;
// an empty authorizedParties list skips the azp check.
func NewVerifier(keys KeyFetcher, issuer string, authorizedParties []string) *Verifier {
	parties := make(map[string]struct{}, len(authorizedParties))
	for _, p := range authorizedParties {
		if p = strings.TrimSpace(p); p != "" {
			parties[p] = struct{}{}
		}
	}

	return &Verifier{
		keys:              keys,
		authorizedParties: parties,
		now:               time.Now,
		issuer:            issuer,
		leeway:            DefaultLeeway,
	}
}

// Verify checks the token's RS256 signature against the published keys and
// validates exp, nbf, iss and azp. It returns the claims on success.
func (v *Verifier) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token header has no kid")
		}
		return v.keys.PublicKey(ctx, kid)
	})
	if err != nil {
		if errors.Is(err, ErrUnknownKey) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing sub claim", ErrInvalidToken)
	}

	if len(v.authorizedParties) > 0 && claims.AuthorizedParty != "" {
		if _, ok := v.authorizedParties[claims.AuthorizedParty]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnauthorizedParty, claims.AuthorizedParty)
		}
	}

	return claims, nil
}
