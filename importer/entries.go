package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"swissclock.ch/swissclock/timeclock"
	"swissclock.ch/swissclock/utils"
)

// ParseEntriesCSV reads rows of employeeId,clockIn,clockOut with a header
// row. An empty clockOut leaves the entry open. Times without an offset are
// read in loc.
func ParseEntriesCSV(r io.Reader, loc *time.Location) ([]timeclock.TimeEntry, error) {
	rows, err := utils.ParseCSV(r)
	if err != nil {
		return nil, err
	}

	var entries []timeclock.TimeEntry
	for i, row := range rows {
		if i == 0 || isBlank(row) {
			continue
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("row %d: expected at least 2 columns, got %d", i, len(row))
		}

		employeeID, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid employeeId: %w", i, err)
		}
		in, err := parseTime(row[1], loc)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid clockIn: %w", i, err)
		}

		entry := timeclock.TimeEntry{EmployeeID: employeeID, ClockInTime: in}
		if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
			out, err := parseTime(row[2], loc)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid clockOut: %w", i, err)
			}
			if out.Before(in) {
				return nil, fmt.Errorf("row %d: %w", i, timeclock.ErrInvalidInterval)
			}
			entry.ClockOutTime = &out
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	t, err := utils.ParseISOTime(s)
	if err != nil {
		return time.Time{}, err
	}
	return *t, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
