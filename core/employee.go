package core

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Employee struct {
	EmployeeId   uint   `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"size:64;uniqueIndex"`
	Name         string `gorm:"size:255;not null"`
	PasswordHash string `gorm:"size:255"`
	Active       bool   `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func FindEmployeeByID(db *gorm.DB, id int) (*Employee, error) {
	var emp Employee
	result := db.First(&emp, id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil // not found
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &emp, nil
}

func ListActiveEmployees(db *gorm.DB) ([]Employee, error) {
	var employees []Employee
	err := db.Where("active = ?", true).Order("employee_id").Find(&employees).Error
	return employees, err
}
