package timeclock

import "errors"

var (
	ErrAlreadyClockedIn = errors.New("already clocked in")
	ErrNotClockedIn     = errors.New("not clocked in")
	// ErrInvalidInterval is returned when a clock-out precedes its clock-in.
	ErrInvalidInterval = errors.New("clock-out is before clock-in")
	ErrUnknownEmployee = errors.New("unknown employee")
	// ErrDuplicateEntry is returned by Store.Insert when the id is taken.
	ErrDuplicateEntry = errors.New("time entry already exists")
)

// Code returns the wire name of a domain error, or "" for anything else.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyClockedIn):
		return "AlreadyClockedIn"
	case errors.Is(err, ErrNotClockedIn):
		return "NotClockedIn"
	case errors.Is(err, ErrInvalidInterval):
		return "InvalidInterval"
	case errors.Is(err, ErrUnknownEmployee):
		return "UnknownEmployee"
	case errors.Is(err, ErrDuplicateEntry):
		return "DuplicateEntry"
	}
	return ""
}
