package models

import (
	"time"

	"paytrack/internal/constants"
)

// Attendance is one worker's record for one calendar date. The
// (WorkerID, AttendedOn) pair is unique; creating a record for an existing
// pair updates it in place.
type Attendance struct {
	ID         int64      `json:"id"`
	WorkerID   int64      `json:"workerId"`
	WorkerName string     `json:"workerName,omitempty"`
	AttendedOn time.Time  `json:"date"`
	Status     string     `json:"status"`
	CheckIn    NullString `json:"checkIn"`
	CheckOut   NullString `json:"checkOut"`
	Notes      NullString `json:"notes"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// WorkingDayCredit returns the contribution of this record to the worker's
// running total of working days: 1 for present, 0.5 for a half day.
func (a Attendance) WorkingDayCredit() float64 {
	switch a.Status {
	case constants.ATTENDANCE_PRESENT:
		return 1
	case constants.ATTENDANCE_HALF_DAY:
		return 0.5
	}
	return 0
}
