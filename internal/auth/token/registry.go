package token

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoCredentials  = errors.New("missing credentials")
	ErrSessionInvalid = errors.New("unknown or invalid session")
	ErrSessionExpired = errors.New("session expired")
)

// Registry maps opaque session tokens to their expiry instants. It is
// the only holder of the token map; all access goes through Issue,
// Validate and Sweep. Tokens live in memory only and do not survive a
// restart.
type Registry struct {
	mu     sync.Mutex
	ttl    time.Duration
	tokens map[string]time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:    ttl,
		tokens: make(map[string]time.Time),
	}
}

// TTL returns the configured session lifetime.
func (r *Registry) TTL() time.Duration {
	return r.ttl
}

// Issue creates a fresh token expiring TTL from now. Expired entries are
// swept opportunistically on the way in.
func (r *Registry) Issue() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweepLocked(time.Now())
	tok := uuid.NewString()
	r.tokens[tok] = time.Now().Add(r.ttl)
	return tok
}

// Validate checks an Authorization header of the form "<scheme> <token>"
// and returns the token when it names a live session. A lookup that
// finds an expired entry evicts it and fails as if it were absent.
func (r *Registry) Validate(authorization string) (string, error) {
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		return "", ErrNoCredentials
	}
	tok := strings.TrimSpace(parts[1])

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweepLocked(time.Now())
	expiresAt, ok := r.tokens[tok]
	if !ok {
		return "", ErrSessionInvalid
	}
	if !expiresAt.After(time.Now()) {
		delete(r.tokens, tok)
		return "", ErrSessionExpired
	}
	return tok, nil
}

// Sweep removes every entry whose expiry has passed and reports how many
// were dropped. Eviction is idempotent: a swept token never reappears.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked(time.Now())
}

func (r *Registry) sweepLocked(now time.Time) int {
	n := 0
	for tok, expiresAt := range r.tokens {
		if !expiresAt.After(now) {
			delete(r.tokens, tok)
			n++
		}
	}
	return n
}
