package service

import (
	"fmt"
	"sync"
	"time"
)

// RateLimitService throttles repeated user actions per action kind. A key
// like "vote-question" covers the whole class, so rapid voting on
// different questions still shares one cooldown.
type RateLimitService interface {
	// TryAcquire reports whether the action is allowed and, if so, records
	// now as the last accepted action in the same check-and-set. A missing
	// entry always allows.
	TryAcquire(userID uint, actionKey string, now time.Time) bool
	Start()
	Stop()
}

type rateLimitService struct {
	cooldown   time.Duration
	maxIdle    time.Duration
	sweepEvery time.Duration
	entries    sync.Map // "<userID>:<actionKey>" -> *rateLimitEntry
	done       chan struct{}
	stopOnce   sync.Once
}

type rateLimitEntry struct {
	mu   sync.Mutex
	last time.Time
}

func newRateLimitService(cooldown time.Duration) RateLimitService {
	return &rateLimitService{
		cooldown:   cooldown,
		maxIdle:    24 * time.Hour,
		sweepEvery: time.Hour,
		done:       make(chan struct{}),
	}
}

func (r *rateLimitService) TryAcquire(userID uint, actionKey string, now time.Time) bool {
	key := fmt.Sprintf("%d:%s", userID, actionKey)
	raw, _ := r.entries.LoadOrStore(key, &rateLimitEntry{})
	entry := raw.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if !entry.last.IsZero() && now.Sub(entry.last) < r.cooldown {
		return false
	}
	entry.last = now
	return true
}

// Start launches the stale-entry sweep. It touches only the limiter's own
// map and never blocks request handling.
func (r *rateLimitService) Start() {
	go func() {
		ticker := time.NewTicker(r.sweepEvery)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				r.sweep(now)
			case <-r.done:
				return
			}
		}
	}()
}

func (r *rateLimitService) Stop() {
	r.stopOnce.Do(func() {
		close(r.done)
	})
}

func (r *rateLimitService) sweep(now time.Time) {
	r.entries.Range(func(key, raw interface{}) bool {
		entry := raw.(*rateLimitEntry)
		entry.mu.Lock()
		stale := now.Sub(entry.last) >= r.maxIdle
		entry.mu.Unlock()
		if stale {
			r.entries.Delete(key)
		}
		return true
	})
}
