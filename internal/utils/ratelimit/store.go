package ratelimit

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultCategory is the rate applied to categories without their own rate.
const DefaultCategory = "default"

// maxLimiters bounds the store when clients never go idle long enough to be evicted.
const maxLimiters = 10000

// Store manages rate limiters for multiple clients.
// Limiters are keyed by category and client so one client can hold
// independent budgets for different routes.
type Store struct {
	// limiters maps category/client keys to their rate limiters
	limiters map[string]*Limiter

	// rates defines different rate limits for different route categories
	rates map[string]Rate

	mu sync.RWMutex

	// cleanupInterval is how often idle limiters are evicted
	cleanupInterval time.Duration

	// idleTTL is how long a limiter may go unused before eviction
	idleTTL time.Duration

	now  func() time.Time
	done chan struct{}
	once sync.Once
}

// NewStore creates a store applying defaultRate to unknown categories and
// starts the background eviction loop. Call Stop to end the loop.
func NewStore(defaultRate Rate, cleanupInterval time.Duration) *Store {
	store := newStore(defaultRate, cleanupInterval, time.Now)
	go store.cleanupRoutine()
	return store
}

func newStore(defaultRate Rate, cleanupInterval time.Duration, now func() time.Time) *Store {
	return &Store{
		limiters:        make(map[string]*Limiter),
		rates:           map[string]Rate{DefaultCategory: defaultRate},
		cleanupInterval: cleanupInterval,
		idleTTL:         cleanupInterval,
		now:             now,
		done:            make(chan struct{}),
	}
}

func limiterKey(category, clientID string) string {
	return category + "|" + clientID
}

// GetLimiter returns the limiter of clientID in category, creating it on first use.
func (s *Store) GetLimiter(clientID string, category string) *Limiter {
	key := limiterKey(category, clientID)

	s.mu.RLock()
	limiter, exists := s.limiters[key]
	s.mu.RUnlock()

	if exists {
		return limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have created it while we waited for the lock
	if limiter, exists = s.limiters[key]; exists {
		return limiter
	}

	rate, ok := s.rates[category]
	if !ok {
		rate = s.rates[DefaultCategory]
	}

	limiter = newLimiterWithClock(rate.RequestsPerSecond, rate.Burst, s.now)
	s.limiters[key] = limiter

	return limiter
}

// SetRate sets the rate of a category. Existing limiters keep their rate.
func (s *Store) SetRate(category string, rate Rate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[category] = rate
}

// Len returns the number of live limiters.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.limiters)
}

// Stop ends the eviction loop. It is safe to call more than once.
func (s *Store) Stop() {
	s.once.Do(func() { close(s.done) })
}

func (s *Store) cleanupRoutine() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.done:
			return
		}
	}
}

// cleanup evicts limiters idle for longer than idleTTL and resets the
// store if it is still over maxLimiters afterwards.
func (s *Store) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idleTTL)
	evicted := 0
	for key, limiter := range s.limiters {
		if limiter.IdleSince().Before(cutoff) {
			delete(s.limiters, key)
			evicted++
		}
	}

	if len(s.limiters) > maxLimiters {
		log.Warn().Int("limiters", len(s.limiters)).Msg("Rate limiter store growing too large, resetting")
		s.limiters = make(map[string]*Limiter)
		return
	}

	if evicted > 0 {
		log.Debug().Int("evicted", evicted).Msg("Evicted idle rate limiters")
	}
}
