package reporting

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"swissclock.ch/swissclock/timeclock"
	"swissclock.ch/swissclock/utils"
)

const (
	SummarySheet = "Summary"
	EntriesSheet = "Entries"
	ContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Period is a half-open interval [From, To) of clock-in times. Day
// boundaries follow From's location.
type Period struct {
	From time.Time
	To   time.Time
}

// LastWeek returns Monday to Monday of the week before the one containing t.
func LastWeek(t time.Time) Period {
	start := utils.StartOfWeek(t).AddDate(0, 0, -7)
	return Period{From: start, To: start.AddDate(0, 0, 7)}
}

func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.From) && t.Before(p.To)
}

func (p Period) FileName() string {
	return fmt.Sprintf("timesheet-%s-%s.xlsx", p.From.Format("2006-01-02"), p.To.AddDate(0, 0, -1).Format("2006-01-02"))
}

// BuildTimesheet lays out a ranked summary and the raw entries for period.
// Open entries are measured up to asOf. The summary's "Open entry" column
// flags employees with an entry started in the period and not yet clocked
// out; the clock state of employees is not read.
func BuildTimesheet(employees []timeclock.Employee, entries []timeclock.TimeEntry, period Period, asOf time.Time) (*excelize.File, error) {
	loc := period.From.Location()
	inPeriod := utils.Filter(entries, func(e timeclock.TimeEntry) bool { return period.Contains(e.ClockInTime) })

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(EntriesSheet); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	summary := [][]interface{}{{"Rank", "Employee", "Hours", "Days", "Open entry"}}
	for _, s := range timeclock.Leaderboard(employees, inPeriod, asOf) {
		summary = append(summary, []interface{}{
			s.Rank,
			s.Employee.Name,
			round2(s.TotalHours),
			timeclock.DaysWorked(inPeriod, s.Employee.ID, loc),
			utils.FormatBoolean(s.Employee.IsClockedIn, "yes", "no"),
		})
	}
	if err := writeRows(f, SummarySheet, summary, bold); err != nil {
		return nil, err
	}

	names := make(map[int]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.Name
	}
	sort.SliceStable(inPeriod, func(i, j int) bool {
		return inPeriod[i].ClockInTime.Before(inPeriod[j].ClockInTime)
	})

	rows := [][]interface{}{{"Employee", "Date", "Clock in", "Clock out", "Hours"}}
	for _, e := range inPeriod {
		name, ok := names[e.EmployeeID]
		if !ok {
			name = fmt.Sprintf("#%d", e.EmployeeID)
		}
		in := e.ClockInTime.In(loc)
		out := "open"
		if e.ClockOutTime != nil {
			out = e.ClockOutTime.In(loc).Format("2006-01-02 15:04")
		}
		rows = append(rows, []interface{}{name, in.Format("2006-01-02"), in.Format("15:04"), out, round2(e.Hours(asOf))})
	}
	if err := writeRows(f, EntriesSheet, rows, bold); err != nil {
		return nil, err
	}

	return f, nil
}

// Standings ranks employees by hours clocked in during period.
func Standings(employees []timeclock.Employee, entries []timeclock.TimeEntry, period Period, asOf time.Time) []timeclock.Standing {
	inPeriod := utils.Filter(entries, func(e timeclock.TimeEntry) bool { return period.Contains(e.ClockInTime) })
	return timeclock.Leaderboard(employees, inPeriod, asOf)
}

// Digest is a plain text summary of standings for email and chat.
func Digest(standings []timeclock.Standing, period Period) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hours from %s to %s\n", period.From.Format("Mon 02 Jan"), period.To.AddDate(0, 0, -1).Format("Mon 02 Jan 2006"))
	for _, s := range standings {
		fmt.Fprintf(&b, "%d. %s: %.2f h\n", s.Rank, s.Employee.Name, s.TotalHours)
	}
	return b.String()
}

// WriteTimesheet renders the workbook to xlsx bytes.
func WriteTimesheet(employees []timeclock.Employee, entries []timeclock.TimeEntry, period Period, asOf time.Time) ([]byte, error) {
	f, err := BuildTimesheet(employees, entries, period, asOf)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	last, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", last, 16)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
