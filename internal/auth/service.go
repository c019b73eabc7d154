package auth

import (
	"context"
	"sync"
	"time"

	"github.com/alcuin/alcuinch/pkg"

	log "github.com/sirupsen/logrus"
)

const (
	// DefaultTTL is the sliding inactivity window of an admin session
	DefaultTTL = 24 * time.Hour

	// tokenNumBytes of randomness per session token (256 bits, hex encoded)
	tokenNumBytes = 32
)

// Service issues, validates and destroys admin sessions. Expiry is
// sliding: a successful validation refreshes the session timestamp, so
// an active admin is never logged out, an idle one is after the TTL.
type Service struct {
	store Store
	ttl   time.Duration

	// mutex serializes the read-check-write sequence of IsValid, so two
	// near-simultaneous requests with the same token cannot observe
	// inconsistent expiry state
	mutex sync.Mutex

	// ability to inject random string generator and clock (for unit and dev testing)
	RandStringFunc func(n int) (string, error)
	NowFunc        func() time.Time
}

func NewService(store Store, ttl time.Duration) *Service {
	return &Service{
		store:          store,
		ttl:            ttl,
		RandStringFunc: pkg.GenerateRandomString,
		NowFunc:        time.Now,
	}
}

// CreateSession generates a new session token and registers it. The
// returned expiry is informational only (used for the cookie max-age) -
// the sliding record in the store is what actually governs expiry.
// As a side effect, all currently expired records are swept from the store.
func (s *Service) CreateSession(ctx context.Context) (string, time.Time, error) {
	token, err := s.RandStringFunc(tokenNumBytes)
	if err != nil {
		return "", time.Time{}, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.NowFunc()
	if err := s.store.Set(ctx, token, SessionRecord{IssuedOrRefreshedAt: now}); err != nil {
		return "", time.Time{}, err
	}

	s.sweepExpired(ctx, now)

	return token, now.Add(s.ttl), nil
}

// IsValid reports whether the token belongs to a live session. An expired
// session is evicted lazily, on this very lookup; a live one gets its
// timestamp refreshed (sliding expiration).
func (s *Service) IsValid(ctx context.Context, token string) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record, found, err := s.store.Get(ctx, token)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	now := s.NowFunc()
	if now.Sub(record.IssuedOrRefreshedAt) > s.ttl {
		if err := s.store.Delete(ctx, token); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.store.Set(ctx, token, SessionRecord{IssuedOrRefreshedAt: now}); err != nil {
		return false, err
	}
	return true, nil
}

// Destroy removes the session, if any. Destroying a nonexistent or
// already expired token is not an error.
func (s *Service) Destroy(ctx context.Context, token string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.store.Delete(ctx, token)
}

// sweepExpired removes all expired records. Runs as a side effect of
// session creation instead of on a timer. Callers must hold the mutex.
func (s *Service) sweepExpired(ctx context.Context, now time.Time) {
	tokens, err := s.store.Tokens(ctx)
	if err != nil {
		log.Errorf("session sweep, list tokens: %s", err)
		return
	}

	for _, token := range tokens {
		record, found, err := s.store.Get(ctx, token)
		if err != nil {
			log.Errorf("session sweep, get %s: %s", token, err)
			continue
		}
		if !found {
			continue
		}
		if now.Sub(record.IssuedOrRefreshedAt) > s.ttl {
			if err := s.store.Delete(ctx, token); err != nil {
				log.Errorf("session sweep, delete %s: %s", token, err)
			}
		}
	}
}
