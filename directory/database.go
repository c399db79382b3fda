package directory

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"swissclock.ch/swissclock/core"
)

// FromDatabase loads active employees from the employees table. The
// directory is a snapshot; restart to pick up new employees.
func FromDatabase(ctx context.Context, dm *core.DatabaseManager) (*Static, error) {
	var employees []core.Employee
	if err := dm.Exec(ctx, func(db *gorm.DB) error {
		var err error
		employees, err = core.ListActiveEmployees(db)
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	users := make([]User, 0, len(employees))
	for _, e := range employees {
		users = append(users, User{
			ID:           int(e.EmployeeId),
			Name:         e.Name,
			Username:     e.Username,
			PasswordHash: e.PasswordHash,
		})
	}
	return NewStatic(users)
}

// Seed inserts the users into the employees table. Ids that already exist
// are left untouched, so passwords changed in the database survive a reseed.
func Seed(ctx context.Context, dm *core.DatabaseManager, users []User) (int, error) {
	created := 0
	err := dm.Transaction(ctx, func(tx *gorm.DB) error {
		for _, u := range users {
			existing, err := core.FindEmployeeByID(tx, u.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}

			emp, err := newEmployeeRecord(u)
			if err != nil {
				return err
			}
			if err := tx.Create(&emp).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	return created, err
}

func newEmployeeRecord(u User) (core.Employee, error) {
	hash := u.PasswordHash
	if u.Password != "" {
		var err error
		if hash, err = HashPassword(u.Password); err != nil {
			return core.Employee{}, fmt.Errorf("user %q: %w", u.Username, err)
		}
	}
	return core.Employee{
		EmployeeId:   uint(u.ID),
		Username:     u.Username,
		Name:         u.Name,
		PasswordHash: hash,
		Active:       true,
	}, nil
}
