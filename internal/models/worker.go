package models

import "time"

// Worker represents a farm worker on the payroll.
type Worker struct {
	ID                      int64      `json:"id"`
	Name                    string     `json:"name"`
	Phone                   string     `json:"phone"`
	Address                 NullString `json:"address"`
	JoiningDate             time.Time  `json:"joiningDate"`
	MonthlySalary           float64    `json:"monthlySalary"`
	IsActive                bool       `json:"isActive"`
	Notes                   NullString `json:"notes"`
	RunningTotalWorkingDays float64    `json:"runningTotalWorkingDays"`
	CreatedAt               time.Time  `json:"createdAt"`
	UpdatedAt               time.Time  `json:"updatedAt"`
}
