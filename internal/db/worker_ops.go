package db

import (
	"database/sql"
	"log"
	"strings"

	"paytrack/internal/models"
)

const workerColumns = `id, name, phone, address, joining_date, monthly_salary,
       is_active, notes, COALESCE(running_total_working_days, 0), created_at, updated_at`

func scanWorker(row interface{ Scan(...interface{}) error }) (models.Worker, error) {
	var w models.Worker
	err := row.Scan(&w.ID, &w.Name, &w.Phone, &w.Address, &w.JoiningDate, &w.MonthlySalary,
		&w.IsActive, &w.Notes, &w.RunningTotalWorkingDays, &w.CreatedAt, &w.UpdatedAt)
	return w, err
}

// CreateWorker inserts a new worker and returns it with its assigned id.
func CreateWorker(w models.Worker) (models.Worker, error) {
	err := DB.QueryRow(`
        INSERT INTO workers (name, phone, address, joining_date, monthly_salary, is_active, notes, running_total_working_days, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, 0, NOW(), NOW())
        RETURNING id, created_at, updated_at`,
		w.Name, w.Phone, w.Address, w.JoiningDate, w.MonthlySalary, w.IsActive, w.Notes).
		Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		log.Printf("CreateWorker: failed to insert worker '%s': %v", w.Name, err)
		return w, err
	}
	log.Printf("CreateWorker: worker '%s' created with id %d", w.Name, w.ID)
	return w, nil
}

// GetWorkerByID retrieves one worker. Returns sql.ErrNoRows when absent.
func GetWorkerByID(id int64) (models.Worker, error) {
	w, err := scanWorker(DB.QueryRow(`SELECT `+workerColumns+` FROM workers WHERE id = $1`, id))
	if err != nil && err != sql.ErrNoRows {
		log.Printf("GetWorkerByID: failed to get worker %d: %v", id, err)
	}
	return w, err
}

// ListWorkers returns workers sorted by joining date, newest first.
// When activeOnly is non-nil, filters on is_active.
func ListWorkers(activeOnly *bool) ([]models.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers`
	args := []interface{}{}
	if activeOnly != nil {
		query += ` WHERE is_active = $1`
		args = append(args, *activeOnly)
	}
	query += ` ORDER BY joining_date DESC, id DESC`

	rows, err := DB.Query(query, args...)
	if err != nil {
		log.Printf("ListWorkers: query failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	workers := []models.Worker{}
	for rows.Next() {
		w, errScan := scanWorker(rows)
		if errScan != nil {
			log.Printf("ListWorkers: scan failed: %v", errScan)
			return nil, errScan
		}
		workers = append(workers, w)
	}
	return workers, rows.Err()
}

// FindWorkersByName performs a case-insensitive substring lookup, used by the
// bot's fuzzy worker-name step.
func FindWorkersByName(fragment string) ([]models.Worker, error) {
	rows, err := DB.Query(`SELECT `+workerColumns+` FROM workers WHERE name ILIKE $1 ORDER BY name`,
		"%"+strings.TrimSpace(fragment)+"%")
	if err != nil {
		log.Printf("FindWorkersByName: query failed for '%s': %v", fragment, err)
		return nil, err
	}
	defer rows.Close()

	workers := []models.Worker{}
	for rows.Next() {
		w, errScan := scanWorker(rows)
		if errScan != nil {
			return nil, errScan
		}
		workers = append(workers, w)
	}
	return workers, rows.Err()
}

// UpdateWorker overwrites the mutable fields of a worker.
func UpdateWorker(w models.Worker) (models.Worker, error) {
	err := DB.QueryRow(`
        UPDATE workers
        SET name = $1, phone = $2, address = $3, joining_date = $4, monthly_salary = $5,
            is_active = $6, notes = $7, updated_at = NOW()
        WHERE id = $8
        RETURNING created_at, updated_at, COALESCE(running_total_working_days, 0)`,
		w.Name, w.Phone, w.Address, w.JoiningDate, w.MonthlySalary, w.IsActive, w.Notes, w.ID).
		Scan(&w.CreatedAt, &w.UpdatedAt, &w.RunningTotalWorkingDays)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("UpdateWorker: failed to update worker %d: %v", w.ID, err)
		}
		return w, err
	}
	return w, nil
}

// AdjustWorkerWorkingDays shifts the worker's running working-day total by
// delta (positive or negative). Called whenever attendance changes.
func AdjustWorkerWorkingDays(workerID int64, delta float64) error {
	if delta == 0 {
		return nil
	}
	_, err := DB.Exec(`
        UPDATE workers
        SET running_total_working_days = COALESCE(running_total_working_days, 0) + $1, updated_at = NOW()
        WHERE id = $2`, delta, workerID)
	if err != nil {
		log.Printf("AdjustWorkerWorkingDays: failed to adjust worker %d by %.1f: %v", workerID, delta, err)
	}
	return err
}

// DeleteWorker removes a worker. Attendance rows go with it via FK cascade;
// payment rows keep their worker_id reference and block deletion, matching
// the ledger's append-only intent.
func DeleteWorker(id int64) error {
	result, err := DB.Exec(`DELETE FROM workers WHERE id = $1`, id)
	if err != nil {
		log.Printf("DeleteWorker: failed to delete worker %d: %v", id, err)
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	log.Printf("DeleteWorker: worker %d deleted", id)
	return nil
}
