package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"swissclock.ch/swissclock/core"
	"swissclock.ch/swissclock/timeclock"
	"swissclock.ch/swissclock/utils"
)

// GormStore keeps the entry log in MySQL. Inserts lock the employee row so
// concurrent servers cannot open two entries for the same employee.
type GormStore struct {
	dm *core.DatabaseManager
}

func NewGormStore(dm *core.DatabaseManager) *GormStore {
	return &GormStore{dm: dm}
}

func (s *GormStore) OpenEntry(ctx context.Context, employeeID int) (*timeclock.TimeEntry, error) {
	var rec core.TimeEntryRecord
	err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Where("employee_id = ? AND clock_out_time IS NULL", employeeID).Take(&rec).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	entry := rec.ToEntry()
	return &entry, nil
}

func (s *GormStore) Insert(ctx context.Context, entry timeclock.TimeEntry) error {
	return s.dm.Transaction(ctx, func(tx *gorm.DB) error {
		var emp core.Employee
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&emp, entry.EmployeeID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("employee %d: %w", entry.EmployeeID, timeclock.ErrUnknownEmployee)
		}
		if err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&core.TimeEntryRecord{}).Where("id = ?", entry.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("entry %s: %w", entry.ID, timeclock.ErrDuplicateEntry)
		}

		if entry.IsOpen() {
			var open int64
			if err := tx.Model(&core.TimeEntryRecord{}).
				Where("employee_id = ? AND clock_out_time IS NULL", entry.EmployeeID).
				Count(&open).Error; err != nil {
				return err
			}
			if open > 0 {
				return timeclock.ErrAlreadyClockedIn
			}
		}

		rec := core.NewTimeEntryRecord(entry)
		return tx.Create(&rec).Error
	})
}

func (s *GormStore) CloseEntry(ctx context.Context, id string, at time.Time) error {
	return s.dm.Exec(ctx, func(db *gorm.DB) error {
		result := db.Model(&core.TimeEntryRecord{}).
			Where("id = ? AND clock_out_time IS NULL", id).
			Update("clock_out_time", at)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("entry %s: %w", id, timeclock.ErrNotClockedIn)
		}
		return nil
	})
}

func (s *GormStore) Entries(ctx context.Context, employeeID int) ([]timeclock.TimeEntry, error) {
	var records []core.TimeEntryRecord
	if err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Where("employee_id = ?", employeeID).Order("clock_in_time DESC").Find(&records).Error
	}); err != nil {
		return nil, err
	}
	return utils.Map(records, core.TimeEntryRecord.ToEntry), nil
}

func (s *GormStore) AllEntries(ctx context.Context) ([]timeclock.TimeEntry, error) {
	var records []core.TimeEntryRecord
	if err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Order("clock_in_time DESC").Find(&records).Error
	}); err != nil {
		return nil, err
	}
	return utils.Map(records, core.TimeEntryRecord.ToEntry), nil
}
