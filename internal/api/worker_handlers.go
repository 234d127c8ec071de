package api

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"time"

	"paytrack/internal/db"
	"paytrack/internal/models"
)

type workerRequest struct {
	Name          string  `json:"name" validate:"required"`
	Phone         string  `json:"phone" validate:"required"`
	Address       string  `json:"address"`
	JoiningDate   string  `json:"joiningDate"` // YYYY-MM-DD, defaults to today
	MonthlySalary float64 `json:"monthlySalary" validate:"required,gt=0"`
	IsActive      *bool   `json:"isActive"`
	Notes         string  `json:"notes"`
}

// apply copies the request onto a worker record, parsing the optional date.
func (req workerRequest) apply(w *models.Worker) error {
	w.Name = req.Name
	w.Phone = req.Phone
	w.Address = models.NewNullString(req.Address)
	w.MonthlySalary = req.MonthlySalary
	w.Notes = models.NewNullString(req.Notes)
	w.IsActive = true
	if req.IsActive != nil {
		w.IsActive = *req.IsActive
	}
	if req.JoiningDate != "" {
		parsed, err := time.Parse("2006-01-02", req.JoiningDate)
		if err != nil {
			return err
		}
		w.JoiningDate = parsed
	} else if w.JoiningDate.IsZero() {
		now := time.Now()
		w.JoiningDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
	return nil
}

// ListWorkers returns all workers, optionally filtered by ?isActive=.
func ListWorkers(w http.ResponseWriter, r *http.Request) {
	var activeOnly *bool
	if raw := r.URL.Query().Get("isActive"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "Query parameter 'isActive' must be a boolean")
			return
		}
		activeOnly = &parsed
	}

	workers, err := db.ListWorkers(activeOnly)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load workers")
		return
	}
	writeJSONSuccess(w, "Workers retrieved", workers)
}

func GetWorker(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	worker, err := db.GetWorkerByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Worker not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to load worker")
		return
	}
	writeJSONSuccess(w, "Worker retrieved", worker)
}

func CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req workerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var worker models.Worker
	if err := req.apply(&worker); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Field 'joiningDate' must be YYYY-MM-DD")
		return
	}

	created, err := db.CreateWorker(worker)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to create worker")
		return
	}
	writeJSONCreated(w, "Worker created", created)
}

func UpdateWorker(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	worker, err := db.GetWorkerByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Worker not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to load worker")
		return
	}

	var req workerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := req.apply(&worker); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Field 'joiningDate' must be YYYY-MM-DD")
		return
	}

	updated, err := db.UpdateWorker(worker)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to update worker")
		return
	}
	writeJSONSuccess(w, "Worker updated", updated)
}

func DeleteWorker(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := db.DeleteWorker(id); err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Worker not found")
			return
		}
		log.Printf("DeleteWorker: delete failed for worker %d: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete worker")
		return
	}
	writeJSONSuccess(w, "Worker deleted", nil)
}

// ListWorkerPaymentHistory returns the payment ledger entries for one worker.
func ListWorkerPaymentHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if _, err := db.GetWorkerByID(id); err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Worker not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to load worker")
		return
	}

	payments, err := db.ListPayments("", id, 0)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load payments")
		return
	}
	writeJSONSuccess(w, "Payments retrieved", payments)
}

// ListWorkerAttendanceHistory returns one worker's attendance, optionally
// windowed by ?from= and ?to=.
func ListWorkerAttendanceHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	from, err := dateQuery(r, "from")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := dateQuery(r, "to")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := db.ListAttendance(id, from, to)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load attendance")
		return
	}
	writeJSONSuccess(w, "Attendance retrieved", records)
}
