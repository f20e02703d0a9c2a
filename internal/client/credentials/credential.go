package credentials

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// DefaultTTL is the lifetime given to a credential at issuance.
const DefaultTTL = 7 * 24 * time.Hour

// SameSiteLax is the only same-site policy the client issues.
const SameSiteLax = "lax"

type Credential struct {
	Token     string
	ExpiresAt time.Time
	SameSite  string
	Secure    bool
}

// Expired reports whether the credential is no longer usable at now.
func (c Credential) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Store holds at most one credential.
type Store interface {
	// Get returns the stored credential, or false when there is none, it has
	// expired, or it could not be read.
	Get(ctx context.Context) (Credential, bool)
	// Set replaces any stored credential. A non-positive ttl means DefaultTTL.
	Set(ctx context.Context, token string, ttl time.Duration)
	// Clear removes the credential; clearing an empty store is a no-op.
	Clear(ctx context.Context)
}

// SecureTransport reports whether credentials issued for the API at baseURL
// should be marked secure-only.
func SecureTransport(baseURL string) bool {
	u, err := url.Parse(baseURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, "https")
}

func newCredential(token string, ttl time.Duration, secure bool, now time.Time) Credential {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return Credential{
		Token:     token,
		ExpiresAt: now.Add(ttl).UTC(),
		SameSite:  SameSiteLax,
		Secure:    secure,
	}
}
