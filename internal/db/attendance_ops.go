package db

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"paytrack/internal/models"
)

const attendanceColumns = `a.id, a.worker_id, w.name, a.attended_on, a.status,
       a.check_in, a.check_out, a.notes, a.created_at, a.updated_at`

func scanAttendance(row interface{ Scan(...interface{}) error }) (models.Attendance, error) {
	var a models.Attendance
	err := row.Scan(&a.ID, &a.WorkerID, &a.WorkerName, &a.AttendedOn, &a.Status,
		&a.CheckIn, &a.CheckOut, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// UpsertAttendance inserts an attendance record or, when one already exists
// for the (worker, date) pair, updates it in place. The unique index on
// (worker_id, attended_on) makes the upsert race-free. The returned flag is
// true when an existing record was updated rather than inserted.
//
// The worker's running working-day total is adjusted by the credit delta
// between the old and new status.
func UpsertAttendance(a models.Attendance) (models.Attendance, bool, error) {
	var oldStatus sql.NullString
	err := DB.QueryRow(`SELECT status FROM attendance WHERE worker_id = $1 AND attended_on = $2`,
		a.WorkerID, a.AttendedOn).Scan(&oldStatus)
	if err != nil && err != sql.ErrNoRows {
		log.Printf("UpsertAttendance: failed to read existing record for worker %d on %s: %v",
			a.WorkerID, a.AttendedOn.Format("2006-01-02"), err)
		return a, false, err
	}
	updated := err == nil

	err = DB.QueryRow(`
        INSERT INTO attendance (worker_id, attended_on, status, check_in, check_out, notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
        ON CONFLICT (worker_id, attended_on) DO UPDATE
        SET status = EXCLUDED.status,
            check_in = EXCLUDED.check_in,
            check_out = EXCLUDED.check_out,
            notes = EXCLUDED.notes,
            updated_at = NOW()
        RETURNING id, created_at, updated_at`,
		a.WorkerID, a.AttendedOn, a.Status, a.CheckIn, a.CheckOut, a.Notes).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		log.Printf("UpsertAttendance: upsert failed for worker %d on %s: %v",
			a.WorkerID, a.AttendedOn.Format("2006-01-02"), err)
		return a, false, err
	}

	oldCredit := 0.0
	if updated {
		oldCredit = models.Attendance{Status: oldStatus.String}.WorkingDayCredit()
	}
	if errAdj := AdjustWorkerWorkingDays(a.WorkerID, a.WorkingDayCredit()-oldCredit); errAdj != nil {
		log.Printf("UpsertAttendance: working-day adjustment failed for worker %d: %v", a.WorkerID, errAdj)
	}

	log.Printf("UpsertAttendance: worker %d on %s -> %s (updated=%v)",
		a.WorkerID, a.AttendedOn.Format("2006-01-02"), a.Status, updated)
	return a, updated, nil
}

// GetAttendanceByID retrieves one attendance record with its worker's name.
func GetAttendanceByID(id int64) (models.Attendance, error) {
	a, err := scanAttendance(DB.QueryRow(`
        SELECT `+attendanceColumns+`
        FROM attendance a JOIN workers w ON w.id = a.worker_id
        WHERE a.id = $1`, id))
	if err != nil && err != sql.ErrNoRows {
		log.Printf("GetAttendanceByID: failed to get record %d: %v", id, err)
	}
	return a, err
}

// ListAttendance returns attendance records newest-date first, optionally
// filtered by worker and/or date window (zero time means unbounded).
func ListAttendance(workerID int64, from, to time.Time) ([]models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `
        FROM attendance a JOIN workers w ON w.id = a.worker_id
        WHERE 1=1`
	args := []interface{}{}
	if workerID != 0 {
		args = append(args, workerID)
		query += ` AND a.worker_id = $1`
	}
	if !from.IsZero() {
		args = append(args, from)
		query += fmt.Sprintf(` AND a.attended_on >= $%d`, len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		query += fmt.Sprintf(` AND a.attended_on <= $%d`, len(args))
	}
	query += ` ORDER BY a.attended_on DESC, a.id DESC`

	rows, err := DB.Query(query, args...)
	if err != nil {
		log.Printf("ListAttendance: query failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	records := []models.Attendance{}
	for rows.Next() {
		a, errScan := scanAttendance(rows)
		if errScan != nil {
			return nil, errScan
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// UpdateAttendance overwrites status/check-in/check-out/notes of a record and
// keeps the worker's working-day total in step.
func UpdateAttendance(a models.Attendance) (models.Attendance, error) {
	var oldStatus string
	var workerID int64
	err := DB.QueryRow(`SELECT worker_id, status FROM attendance WHERE id = $1`, a.ID).
		Scan(&workerID, &oldStatus)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("UpdateAttendance: failed to read record %d: %v", a.ID, err)
		}
		return a, err
	}

	err = DB.QueryRow(`
        UPDATE attendance
        SET status = $1, check_in = $2, check_out = $3, notes = $4, updated_at = NOW()
        WHERE id = $5
        RETURNING worker_id, attended_on, created_at, updated_at`,
		a.Status, a.CheckIn, a.CheckOut, a.Notes, a.ID).
		Scan(&a.WorkerID, &a.AttendedOn, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		log.Printf("UpdateAttendance: failed to update record %d: %v", a.ID, err)
		return a, err
	}

	oldCredit := models.Attendance{Status: oldStatus}.WorkingDayCredit()
	if errAdj := AdjustWorkerWorkingDays(workerID, a.WorkingDayCredit()-oldCredit); errAdj != nil {
		log.Printf("UpdateAttendance: working-day adjustment failed for worker %d: %v", workerID, errAdj)
	}
	return a, nil
}

// DeleteAttendance removes a record and reverses its working-day credit.
func DeleteAttendance(id int64) error {
	var workerID int64
	var status string
	err := DB.QueryRow(`DELETE FROM attendance WHERE id = $1 RETURNING worker_id, status`, id).
		Scan(&workerID, &status)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("DeleteAttendance: failed to delete record %d: %v", id, err)
		}
		return err
	}
	credit := models.Attendance{Status: status}.WorkingDayCredit()
	if errAdj := AdjustWorkerWorkingDays(workerID, -credit); errAdj != nil {
		log.Printf("DeleteAttendance: working-day adjustment failed for worker %d: %v", workerID, errAdj)
	}
	return nil
}
