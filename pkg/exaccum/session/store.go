// Package session keeps one accumulating workbook per session key.
//
// State lives in process memory only: it is lost on restart and is not shared
// between server instances. Entries idle for longer than the store's TTL are
// evicted; a zero TTL keeps entries until they are cleared.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/ukaji3/exaccum-go/pkg/exaccum/table"
)

type entry struct {
	wb       *table.Workbook
	lastSeen time.Time
}

// Store maps session keys to workbooks.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*entry
}

// NewStore creates a store evicting entries idle for longer than ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// GetOrCreate returns the workbook for key, creating an empty one if needed.
func (s *Store) GetOrCreate(key string) *table.Workbook {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.live(key, now); ok {
		e.lastSeen = now
		return e.wb
	}
	e := &entry{wb: table.NewWorkbook(), lastSeen: now}
	s.entries[key] = e
	return e.wb
}

// Get returns the workbook for key without creating one.
func (s *Store) Get(key string) (*table.Workbook, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.live(key, now)
	if !ok {
		return nil, false
	}
	e.lastSeen = now
	return e.wb, true
}

// Clear removes the entry for key. The next GetOrCreate yields a new workbook.
func (s *Store) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(key)
}

// Len returns the number of stored sessions, expired ones included until swept.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep evicts entries expired as of now and returns how many were removed.
func (s *Store) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, e := range s.entries {
		if s.expired(e, now) {
			s.remove(key)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			n := s.Sweep(t)
			if onSweep != nil && n > 0 {
				onSweep(n)
			}
		}
	}
}

// live returns the entry for key unless it has expired, evicting it if so.
// Callers hold s.mu.
func (s *Store) live(key string, now time.Time) (*entry, bool) {
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.expired(e, now) {
		s.remove(key)
		return nil, false
	}
	return e, true
}

func (s *Store) expired(e *entry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.lastSeen) > s.ttl
}

// remove drops the entry. The workbook is not closed: a request that fetched
// it before removal may still be serializing it.
func (s *Store) remove(key string) {
	delete(s.entries, key)
}
