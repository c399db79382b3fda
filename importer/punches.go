package importer

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"swissclock.ch/swissclock/timeclock"
	"swissclock.ch/swissclock/utils"
)

// Punch is one badge tap exported by a door terminal.
type Punch struct {
	ID         int
	EmployeeID int
	Timestamp  time.Time
	Date       string
	Location   string
}

// Shift is every punch of one employee on one local day.
type Shift struct {
	EmployeeID int
	Date       string
	From       time.Time
	To         time.Time
	Punches    []Punch
}

// ParsePunchCSV reads a terminal export with columns
// ID,EmployeeID,Timestamp,Location. Dates are taken in loc.
func ParsePunchCSV(r io.Reader, loc *time.Location) ([]Punch, error) {
	rows, err := utils.ParseCSV(r)
	if err != nil {
		return nil, err
	}

	var punches []Punch
	for i, row := range rows {
		if i == 0 || isBlank(row) {
			continue
		}
		if len(row) < 4 {
			return nil, fmt.Errorf("row %d: expected 4 columns, got %d", i, len(row))
		}

		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid ID: %w", i, err)
		}
		employeeID, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid employee id: %w", i, err)
		}
		timestamp, err := time.Parse(time.RFC3339, row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid timestamp: %w", i, err)
		}
		timestamp = timestamp.In(loc)

		punches = append(punches, Punch{
			ID:         id,
			EmployeeID: employeeID,
			Timestamp:  timestamp,
			Date:       timestamp.Format("2006-01-02"),
			Location:   row[3],
		})
	}
	return punches, nil
}

// GroupPunches folds punches into one shift per employee and day, first
// punch to last, ordered by day then employee.
func GroupPunches(punches []Punch) []Shift {
	grouped := utils.GroupBy(punches, func(p Punch) string {
		return fmt.Sprintf("%d|%s", p.EmployeeID, p.Date)
	})

	shifts := make([]Shift, 0, len(grouped))
	for _, group := range grouped {
		shift := Shift{
			EmployeeID: group[0].EmployeeID,
			Date:       group[0].Date,
			From:       group[0].Timestamp,
			To:         group[0].Timestamp,
			Punches:    group,
		}
		for _, p := range group[1:] {
			if p.Timestamp.Before(shift.From) {
				shift.From = p.Timestamp
			}
			if p.Timestamp.After(shift.To) {
				shift.To = p.Timestamp
			}
		}
		shifts = append(shifts, shift)
	}

	sort.Slice(shifts, func(i, j int) bool {
		if shifts[i].Date != shifts[j].Date {
			return shifts[i].Date < shifts[j].Date
		}
		return shifts[i].EmployeeID < shifts[j].EmployeeID
	})
	return shifts
}

// Entries turns shifts into closed time entries. A shift with a single
// punch has no clock-out and is returned in skipped instead.
func Entries(shifts []Shift) (entries []timeclock.TimeEntry, skipped []Shift) {
	for _, s := range shifts {
		if len(s.Punches) < 2 {
			skipped = append(skipped, s)
			continue
		}
		out := s.To
		entries = append(entries, timeclock.TimeEntry{
			EmployeeID:   s.EmployeeID,
			ClockInTime:  s.From,
			ClockOutTime: &out,
		})
	}
	return entries, skipped
}
