package reporting

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"swissclock.ch/swissclock/timeclock"
	"swissclock.ch/swissclock/utils"
)

func TestLastWeek(t *testing.T) {
	// Wednesday 2024-01-10
	p := LastWeek(time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), p.From)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), p.To)
	assert.Equal(t, "timesheet-2024-01-01-2024-01-07.xlsx", p.FileName())
}

func TestWriteTimesheet(t *testing.T) {
	employees := []timeclock.Employee{{ID: 1, Name: "Miro"}, {ID: 2, Name: "Shein"}, {ID: 3, Name: "Aymene"}}
	day := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	before := day.AddDate(0, 0, -7)
	entries := []timeclock.TimeEntry{
		{ID: "a", EmployeeID: 2, ClockInTime: day, ClockOutTime: utils.Ptr(day.Add(8 * time.Hour))},
		{ID: "b", EmployeeID: 1, ClockInTime: day.Add(time.Hour)},
		{ID: "c", EmployeeID: 1, ClockInTime: before, ClockOutTime: utils.Ptr(before.Add(time.Hour))},
	}
	period := Period{From: utils.MustParseDate("2024-01-01"), To: utils.MustParseDate("2024-01-08")}

	data, err := WriteTimesheet(employees, entries, period, day.Add(3*time.Hour+30*time.Minute))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 4)
	assert.Equal(t, "Open entry", summary[0][4])
	assert.Equal(t, []string{"1", "Shein", "8", "1", "no"}, summary[1])
	assert.Equal(t, []string{"2", "Miro", "2.5", "1", "yes"}, summary[2])
	assert.Equal(t, []string{"3", "Aymene", "0", "0", "no"}, summary[3])

	rows, err := f.GetRows(EntriesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Shein", "2024-01-02", "09:00", "2024-01-02 17:00", "8"}, rows[1])
	assert.Equal(t, []string{"Miro", "2024-01-02", "10:00", "open", "2.5"}, rows[2])
}

func TestOpenEntryColumnIgnoresCurrentClockState(t *testing.T) {
	period := Period{From: utils.MustParseDate("2024-01-01"), To: utils.MustParseDate("2024-01-08")}
	// clocked in now, but the open entry started after the period
	employees := []timeclock.Employee{{ID: 1, Name: "Miro", IsClockedIn: true}}
	later := time.Date(2024, 1, 9, 9, 0, 0, 0, time.UTC)
	earlier := time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)
	entries := []timeclock.TimeEntry{
		{ID: "a", EmployeeID: 1, ClockInTime: earlier, ClockOutTime: utils.Ptr(earlier.Add(2 * time.Hour))},
		{ID: "b", EmployeeID: 1, ClockInTime: later},
	}

	f, err := BuildTimesheet(employees, entries, period, later.Add(time.Hour))
	require.NoError(t, err)
	defer f.Close()

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "Miro", "2", "1", "no"}, summary[1])
}

func TestDigest(t *testing.T) {
	period := Period{From: utils.MustParseDate("2024-01-01"), To: utils.MustParseDate("2024-01-08")}
	in := time.Date(2024, 1, 3, 8, 0, 0, 0, time.UTC)
	standings := Standings(
		[]timeclock.Employee{{ID: 1, Name: "Miro"}, {ID: 2, Name: "Shein"}},
		[]timeclock.TimeEntry{{ID: "a", EmployeeID: 2, ClockInTime: in, ClockOutTime: utils.Ptr(in.Add(7*time.Hour + 45*time.Minute))}},
		period, period.To,
	)

	assert.Equal(t, "Hours from Mon 01 Jan to Sun 07 Jan 2024\n1. Shein: 7.75 h\n2. Miro: 0.00 h\n", Digest(standings, period))
}
