package timeclock

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Store is the authoritative TimeEntry log. Implementations must enforce the
// single open entry per employee themselves: Insert of an open entry fails
// with ErrAlreadyClockedIn when one exists, CloseEntry fails with
// ErrNotClockedIn when the entry is already closed. Insert of an id that is
// already stored fails with ErrDuplicateEntry.
type Store interface {
	OpenEntry(ctx context.Context, employeeID int) (*TimeEntry, error)
	Insert(ctx context.Context, entry TimeEntry) error
	CloseEntry(ctx context.Context, id string, at time.Time) error
	// Entries returns the employee's entries, most recent clock-in first.
	Entries(ctx context.Context, employeeID int) ([]TimeEntry, error)
	AllEntries(ctx context.Context) ([]TimeEntry, error)
}

type MemoryStore struct {
	mu      sync.RWMutex
	entries []TimeEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) OpenEntry(_ context.Context, employeeID int) (*TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e := OpenEntry(s.entries, employeeID); e != nil {
		c := cloneEntry(*e)
		return &c, nil
	}
	return nil, nil
}

func (s *MemoryStore) Insert(_ context.Context, entry TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.ID == entry.ID {
			return ErrDuplicateEntry
		}
	}
	if entry.IsOpen() && OpenEntry(s.entries, entry.EmployeeID) != nil {
		return ErrAlreadyClockedIn
	}
	s.entries = append(s.entries, cloneEntry(entry))
	return nil
}

func (s *MemoryStore) CloseEntry(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID != id {
			continue
		}
		if !s.entries[i].IsOpen() {
			return ErrNotClockedIn
		}
		s.entries[i].ClockOutTime = &at
		return nil
	}
	return fmt.Errorf("entry %s: %w", id, ErrNotClockedIn)
}

func (s *MemoryStore) Entries(_ context.Context, employeeID int) ([]TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []TimeEntry
	for _, e := range s.entries {
		if e.EmployeeID == employeeID {
			out = append(out, cloneEntry(e))
		}
	}
	SortRecentFirst(out)
	return out, nil
}

func (s *MemoryStore) AllEntries(_ context.Context) ([]TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]TimeEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, cloneEntry(e))
	}
	SortRecentFirst(out)
	return out, nil
}

// SortRecentFirst orders entries by clock-in, latest first.
func SortRecentFirst(entries []TimeEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ClockInTime.After(entries[j].ClockInTime)
	})
}

func cloneEntry(e TimeEntry) TimeEntry {
	if e.ClockOutTime != nil {
		out := *e.ClockOutTime
		e.ClockOutTime = &out
	}
	return e
}
