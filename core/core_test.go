package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
	"swissclock.ch/swissclock/timeclock"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected LogLevel
		gorm     logger.LogLevel
	}{
		{in: "silent", expected: LogLevelSilent, gorm: logger.Silent},
		{in: "ERROR", expected: LogLevelError, gorm: logger.Error},
		{in: "warning", expected: LogLevelWarn, gorm: logger.Warn},
		{in: "debug", expected: LogLevelInfo, gorm: logger.Info},
		{in: "", expected: LogLevelWarn, gorm: logger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			level := ParseLogLevel(tt.in)
			assert.Equal(t, tt.expected, level)
			assert.Equal(t, tt.gorm, level.gorm())
		})
	}
}

func TestTimeEntryRecord(t *testing.T) {
	in := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	out := in.Add(8 * time.Hour)

	closed := timeclock.TimeEntry{ID: "e1", EmployeeID: 2, ClockInTime: in, ClockOutTime: &out}
	assert.Equal(t, closed, NewTimeEntryRecord(closed).ToEntry())

	open := timeclock.TimeEntry{ID: "e2", EmployeeID: 2, ClockInTime: in}
	rec := NewTimeEntryRecord(open)
	assert.Nil(t, rec.ClockOutTime)
	assert.True(t, rec.ToEntry().IsOpen())
	assert.Equal(t, "time_entries", rec.TableName())
}
