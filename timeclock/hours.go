package timeclock

import (
	"sort"
	"time"

	"swissclock.ch/swissclock/utils"
)

// TotalHours sums the hours of every entry belonging to employeeID. Open
// entries count up to asOf.
func TotalHours(entries []TimeEntry, employeeID int, asOf time.Time) float64 {
	return TotalDuration(entries, employeeID, asOf).Hours()
}

// TotalDuration is TotalHours before conversion. Totals are summed as
// durations so equal worked time always compares equal.
func TotalDuration(entries []TimeEntry, employeeID int, asOf time.Time) time.Duration {
	var total time.Duration
	for _, e := range entries {
		if e.EmployeeID == employeeID {
			total += e.Duration(asOf)
		}
	}
	return total
}

// HoursBetween sums the hours of entries clocked in within [from, to). An
// entry is attributed whole to the interval holding its clock-in.
func HoursBetween(entries []TimeEntry, employeeID int, from, to, asOf time.Time) float64 {
	var total time.Duration
	for _, e := range entries {
		if e.EmployeeID != employeeID {
			continue
		}
		if e.ClockInTime.Before(from) || !e.ClockInTime.Before(to) {
			continue
		}
		total += e.Duration(asOf)
	}
	return total.Hours()
}

// TodayHours counts entries clocked in on the calendar day of asOf, in asOf's
// location. A shift crossing midnight belongs entirely to the day it started.
func TodayHours(entries []TimeEntry, employeeID int, asOf time.Time) float64 {
	start := utils.StartOfDay(asOf)
	return HoursBetween(entries, employeeID, start, start.AddDate(0, 0, 1), asOf)
}

func WeekHours(entries []TimeEntry, employeeID int, asOf time.Time) float64 {
	start := utils.StartOfWeek(asOf)
	return HoursBetween(entries, employeeID, start, start.AddDate(0, 0, 7), asOf)
}

// DaysWorked counts the distinct local days on which the employee clocked in.
func DaysWorked(entries []TimeEntry, employeeID int, loc *time.Location) int {
	days := make(map[string]struct{})
	for _, e := range entries {
		if e.EmployeeID == employeeID {
			days[e.ClockInTime.In(loc).Format("2006-01-02")] = struct{}{}
		}
	}
	return len(days)
}

func OpenEntry(entries []TimeEntry, employeeID int) *TimeEntry {
	for i := range entries {
		if entries[i].EmployeeID == employeeID && entries[i].IsOpen() {
			return &entries[i]
		}
	}
	return nil
}

func Summarize(entries []TimeEntry, employeeID int, asOf time.Time) Summary {
	s := Summary{
		EmployeeID:  employeeID,
		IsClockedIn: OpenEntry(entries, employeeID) != nil,
		TodayHours:  TodayHours(entries, employeeID, asOf),
		WeekHours:   WeekHours(entries, employeeID, asOf),
		TotalHours:  TotalHours(entries, employeeID, asOf),
		DaysWorked:  DaysWorked(entries, employeeID, asOf.Location()),
		AsOf:        asOf,
	}
	if s.DaysWorked > 0 {
		s.AverageDailyHours = s.TotalHours / float64(s.DaysWorked)
	}
	return s
}

// WithStatus returns copies of employees with IsClockedIn derived from entries.
func WithStatus(employees []Employee, entries []TimeEntry) []Employee {
	return utils.Map(employees, func(emp Employee) Employee {
		emp.IsClockedIn = OpenEntry(entries, emp.ID) != nil
		return emp
	})
}

// Leaderboard orders employees by total hours, highest first. Ties keep their
// input order and share a rank.
func Leaderboard(employees []Employee, entries []TimeEntry, asOf time.Time) []Standing {
	byEmployee := utils.GroupBy(entries, func(e TimeEntry) int { return e.EmployeeID })

	totals := make(map[int]time.Duration, len(employees))
	standings := utils.Map(WithStatus(employees, entries), func(emp Employee) Standing {
		d := TotalDuration(byEmployee[emp.ID], emp.ID, asOf)
		totals[emp.ID] = d
		return Standing{Employee: emp, TotalHours: d.Hours()}
	})
	sort.SliceStable(standings, func(i, j int) bool {
		return totals[standings[i].Employee.ID] > totals[standings[j].Employee.ID]
	})

	for i := range standings {
		if i > 0 && totals[standings[i].Employee.ID] == totals[standings[i-1].Employee.ID] {
			standings[i].Rank = standings[i-1].Rank
			continue
		}
		standings[i].Rank = i + 1
	}
	return standings
}
