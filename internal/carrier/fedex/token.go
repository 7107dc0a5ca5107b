package fedex

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// tokenExpiryBuffer is subtracted from the carrier's expires_in so a token
// is refreshed before it actually lapses mid-request.
const tokenExpiryBuffer = 5 * time.Minute

// authToken is an immutable snapshot of one issued token. It is replaced
// wholesale on refresh, never mutated, so readers need no lock beyond the
// source's.
type authToken struct {
	accessToken string
	expiresAt   time.Time
}

// valid reports whether the token can still be used.
func (t *authToken) valid(now time.Time) bool {
	return t != nil && t.accessToken != "" && now.Before(t.expiresAt)
}

// newAuthToken computes the effective expiry from the carrier's expires_in.
func newAuthToken(accessToken string, expiresIn time.Duration, now time.Time) *authToken {
	return &authToken{
		accessToken: accessToken,
		expiresAt:   now.Add(expiresIn - tokenExpiryBuffer),
	}
}

// tokenSource owns the process-wide token for one client configuration.
// Refresh is serialized through singleflight: N concurrent expired callers
// trigger exactly one fetch, and all waiters share its result.
type tokenSource struct {
	fetch func(ctx context.Context) (*authToken, error)
	now   func() time.Time

	group   singleflight.Group
	current atomic.Pointer[authToken]
}

func newTokenSource(fetch func(ctx context.Context) (*authToken, error)) *tokenSource {
	return &tokenSource{fetch: fetch, now: time.Now}
}

// Token returns a valid access token, refreshing if the current one has
// expired (or was invalidated).
func (s *tokenSource) Token(ctx context.Context) (string, error) {
	if tok := s.current.Load(); tok.valid(s.now()) {
		return tok.accessToken, nil
	}
	return s.refresh(ctx)
}

// Refresh forces a new token, used after a 401 on an authenticated call.
// Concurrent callers coalesce into a single fetch.
func (s *tokenSource) Refresh(ctx context.Context) (string, error) {
	s.current.Store(nil)
	return s.refresh(ctx)
}

func (s *tokenSource) refresh(ctx context.Context) (string, error) {
	v, err, _ := s.group.Do("token", func() (interface{}, error) {
		// Another waiter may have installed a fresh token already.
		if tok := s.current.Load(); tok.valid(s.now()) {
			return tok.accessToken, nil
		}
		tok, err := s.fetch(ctx)
		if err != nil {
			return "", err
		}
		s.current.Store(tok)
		return tok.accessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
