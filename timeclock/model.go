package timeclock

import "time"

type Employee struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	IsClockedIn bool   `json:"isClockedIn"`
}

// TimeEntry is one clock-in/clock-out record. ClockOutTime is nil while the
// entry is open.
type TimeEntry struct {
	ID           string     `json:"id"`
	EmployeeID   int        `json:"employeeId"`
	ClockInTime  time.Time  `json:"clockInTime"`
	ClockOutTime *time.Time `json:"clockOutTime"`
}

func (e TimeEntry) IsOpen() bool {
	return e.ClockOutTime == nil
}

// Duration returns the entry's length, measuring open entries up to asOf.
// The result is never negative.
func (e TimeEntry) Duration(asOf time.Time) time.Duration {
	end := asOf
	if e.ClockOutTime != nil {
		end = *e.ClockOutTime
	}
	d := end.Sub(e.ClockInTime)
	if d < 0 {
		return 0
	}
	return d
}

func (e TimeEntry) Hours(asOf time.Time) float64 {
	return e.Duration(asOf).Hours()
}

type Standing struct {
	Employee   Employee `json:"employee"`
	TotalHours float64  `json:"totalHours"`
	Rank       int      `json:"rank"`
}

type Summary struct {
	EmployeeID        int       `json:"employeeId"`
	IsClockedIn       bool      `json:"isClockedIn"`
	TodayHours        float64   `json:"todayHours"`
	WeekHours         float64   `json:"weekHours"`
	TotalHours        float64   `json:"totalHours"`
	AverageDailyHours float64   `json:"averageDailyHours"`
	DaysWorked        int       `json:"daysWorked"`
	AsOf              time.Time `json:"asOf"`
}

type EventKind string

const (
	EventClockIn  EventKind = "clock_in"
	EventClockOut EventKind = "clock_out"
)

type Event struct {
	Kind     EventKind `json:"kind"`
	Entry    TimeEntry `json:"entry"`
	Employee Employee  `json:"employee"`
}
