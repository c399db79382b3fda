package core

import (
	"time"

	"swissclock.ch/swissclock/timeclock"
)

type TimeEntryRecord struct {
	ID           string     `gorm:"primaryKey;size:36"`
	EmployeeID   int        `gorm:"type:bigint unsigned;not null;index:idx_employee_clock_in"`
	ClockInTime  time.Time  `gorm:"not null;index:idx_employee_clock_in"`
	ClockOutTime *time.Time `gorm:"index"`
	CreatedAt    time.Time  `gorm:"<-:create"`
	UpdatedAt    time.Time

	Employee Employee `gorm:"foreignKey:EmployeeID;references:EmployeeId"`
}

func (TimeEntryRecord) TableName() string {
	return "time_entries"
}

func (r TimeEntryRecord) ToEntry() timeclock.TimeEntry {
	entry := timeclock.TimeEntry{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		ClockInTime: r.ClockInTime,
	}
	if r.ClockOutTime != nil {
		out := *r.ClockOutTime
		entry.ClockOutTime = &out
	}
	return entry
}

func NewTimeEntryRecord(e timeclock.TimeEntry) TimeEntryRecord {
	return TimeEntryRecord{
		ID:           e.ID,
		EmployeeID:   e.EmployeeID,
		ClockInTime:  e.ClockInTime,
		ClockOutTime: e.ClockOutTime,
	}
}
