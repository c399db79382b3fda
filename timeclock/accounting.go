package timeclock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Directory resolves employee identities. It knows nothing about clock state;
// IsClockedIn on returned employees is ignored.
type Directory interface {
	Lookup(id int) (Employee, bool)
	Employees() []Employee
}

type Publisher interface {
	Publish(event Event)
}

type Options struct {
	Publisher Publisher
	// Location sets the day boundaries for today/week figures. Defaults to
	// time.Local.
	Location *time.Location
	Now      func() time.Time
}

// Accounting records clock-ins and clock-outs against a Store and answers
// hour queries. Mutations for one employee are serialized in-process; the
// Store guards the invariant across processes.
type Accounting struct {
	store     Store
	directory Directory
	publisher Publisher
	location  *time.Location
	now       func() time.Time
	locks     keyedMutex
}

func New(store Store, directory Directory, opts Options) *Accounting {
	a := &Accounting{
		store:     store,
		directory: directory,
		publisher: opts.Publisher,
		location:  opts.Location,
		now:       opts.Now,
	}
	if a.location == nil {
		a.location = time.Local
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a
}

// Now returns the current time in the accounting location.
func (a *Accounting) Now() time.Time {
	return a.now().In(a.location)
}

func (a *Accounting) Location() *time.Location {
	return a.location
}

func (a *Accounting) ClockIn(ctx context.Context, employeeID int, now time.Time) (*TimeEntry, error) {
	emp, err := a.employee(employeeID)
	if err != nil {
		return nil, err
	}

	unlock := a.locks.Lock(employeeID)
	defer unlock()

	open, err := a.store.OpenEntry(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to read open entry: %w", err)
	}
	if open != nil {
		return nil, ErrAlreadyClockedIn
	}

	entry := TimeEntry{
		ID:          uuid.New().String(),
		EmployeeID:  employeeID,
		ClockInTime: now,
	}
	if err := a.store.Insert(ctx, entry); err != nil {
		return nil, err
	}

	emp.IsClockedIn = true
	a.publish(Event{Kind: EventClockIn, Entry: entry, Employee: emp})
	return &entry, nil
}

func (a *Accounting) ClockOut(ctx context.Context, employeeID int, now time.Time) (*TimeEntry, error) {
	emp, err := a.employee(employeeID)
	if err != nil {
		return nil, err
	}

	unlock := a.locks.Lock(employeeID)
	defer unlock()

	open, err := a.store.OpenEntry(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to read open entry: %w", err)
	}
	if open == nil {
		return nil, ErrNotClockedIn
	}
	if now.Before(open.ClockInTime) {
		return nil, ErrInvalidInterval
	}

	if err := a.store.CloseEntry(ctx, open.ID, now); err != nil {
		return nil, err
	}
	open.ClockOutTime = &now

	emp.IsClockedIn = false
	a.publish(Event{Kind: EventClockOut, Entry: *open, Employee: emp})
	return open, nil
}

// importNamespace seeds the ids of imported entries.
var importNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://swissclock.ch/time-entries"))

// ImportID is the id given to an imported entry without one. It depends only
// on the employee and the clock-in instant, so importing a file twice finds
// the same rows.
func ImportID(employeeID int, clockIn time.Time) string {
	key := fmt.Sprintf("%d|%d", employeeID, clockIn.UnixNano())
	return uuid.NewSHA1(importNamespace, []byte(key)).String()
}

type ImportResult struct {
	Imported int
	// Duplicates counts entries the store already held.
	Duplicates int
}

// Import loads historical entries. Entries without an id get ImportID, and
// entries already stored are skipped. It stops at the first invalid entry.
func (a *Accounting) Import(ctx context.Context, entries []TimeEntry) (ImportResult, error) {
	var result ImportResult
	for i, entry := range entries {
		if _, err := a.employee(entry.EmployeeID); err != nil {
			return result, fmt.Errorf("entry %d: %w", i, err)
		}
		if entry.ClockOutTime != nil && entry.ClockOutTime.Before(entry.ClockInTime) {
			return result, fmt.Errorf("entry %d: %w", i, ErrInvalidInterval)
		}
		if entry.ID == "" {
			entry.ID = ImportID(entry.EmployeeID, entry.ClockInTime)
		}

		unlock := a.locks.Lock(entry.EmployeeID)
		err := a.store.Insert(ctx, entry)
		unlock()
		switch {
		case errors.Is(err, ErrDuplicateEntry):
			result.Duplicates++
		case err != nil:
			return result, fmt.Errorf("entry %d: %w", i, err)
		default:
			result.Imported++
		}
	}
	return result, nil
}

func (a *Accounting) Entries(ctx context.Context, employeeID int) ([]TimeEntry, error) {
	if _, err := a.employee(employeeID); err != nil {
		return nil, err
	}
	return a.store.Entries(ctx, employeeID)
}

func (a *Accounting) TotalHours(ctx context.Context, employeeID int, asOf time.Time) (float64, error) {
	entries, err := a.Entries(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	return TotalHours(entries, employeeID, asOf), nil
}

func (a *Accounting) TodayHours(ctx context.Context, employeeID int, asOf time.Time) (float64, error) {
	entries, err := a.Entries(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	return TodayHours(entries, employeeID, asOf.In(a.location)), nil
}

func (a *Accounting) Summary(ctx context.Context, employeeID int, asOf time.Time) (Summary, error) {
	entries, err := a.Entries(ctx, employeeID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(entries, employeeID, asOf.In(a.location)), nil
}

// Status returns every directory employee with IsClockedIn derived from the log.
func (a *Accounting) Status(ctx context.Context) ([]Employee, error) {
	entries, err := a.store.AllEntries(ctx)
	if err != nil {
		return nil, err
	}
	return WithStatus(a.employees(), entries), nil
}

func (a *Accounting) Leaderboard(ctx context.Context, asOf time.Time) ([]Standing, error) {
	entries, err := a.store.AllEntries(ctx)
	if err != nil {
		return nil, err
	}
	return Leaderboard(a.employees(), entries, asOf), nil
}

func (a *Accounting) AllEntries(ctx context.Context) ([]TimeEntry, error) {
	return a.store.AllEntries(ctx)
}

func (a *Accounting) Employees() []Employee {
	return a.employees()
}

func (a *Accounting) employees() []Employee {
	if a.directory == nil {
		return nil
	}
	return a.directory.Employees()
}

func (a *Accounting) employee(id int) (Employee, error) {
	if a.directory == nil {
		return Employee{ID: id}, nil
	}
	emp, ok := a.directory.Lookup(id)
	if !ok {
		return Employee{}, fmt.Errorf("employee %d: %w", id, ErrUnknownEmployee)
	}
	return emp, nil
}

func (a *Accounting) publish(event Event) {
	if a.publisher != nil {
		a.publisher.Publish(event)
	}
}

// keyedMutex hands out one mutex per employee and drops it once unused.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[int]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) Lock(id int) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[int]*refMutex)
	}
	m, ok := k.locks[id]
	if !ok {
		m = &refMutex{}
		k.locks[id] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}
