package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"paytrack/internal/db"
	"paytrack/internal/models"
)

// Indirection over the db layer so handler tests can stub persistence.
var (
	getWorkerByID    = db.GetWorkerByID
	upsertAttendance = db.UpsertAttendance
)

type attendanceRequest struct {
	WorkerID int64  `json:"workerId" validate:"required,gt=0"`
	Date     string `json:"date"` // YYYY-MM-DD, defaults to today
	Status   string `json:"status" validate:"required"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Notes    string `json:"notes"`
}

// ListAttendance returns attendance newest first, filtered by ?workerId=,
// ?from= and ?to=.
func ListAttendance(w http.ResponseWriter, r *http.Request) {
	var workerID int64
	if raw := r.URL.Query().Get("workerId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			writeJSONError(w, http.StatusBadRequest, "Query parameter 'workerId' must be a positive integer")
			return
		}
		workerID = parsed
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

	records, err := db.ListAttendance(workerID, from, to)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load attendance")
		return
	}
	writeJSONSuccess(w, "Attendance retrieved", records)
}

func GetAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	record, err := db.GetAttendanceByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Attendance record not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to load attendance record")
		return
	}
	writeJSONSuccess(w, "Attendance record retrieved", record)
}

// CreateAttendance records attendance for a worker on a date. Because the
// (worker, date) pair is unique this is an upsert: marking an already-marked
// day corrects it and answers 200 rather than 201.
func CreateAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendanceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	status, ok := normalizeStatusOrReject(w, req.Status)
	if !ok {
		return
	}

	now := time.Now()
	attendedOn := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "Field 'date' must be YYYY-MM-DD")
			return
		}
		attendedOn = parsed
	}

	if _, err := getWorkerByID(req.WorkerID); err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Worker not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to load worker")
		return
	}

	record, updated, err := upsertAttendance(models.Attendance{
		WorkerID:   req.WorkerID,
		AttendedOn: attendedOn,
		Status:     status,
		CheckIn:    models.NewNullString(req.CheckIn),
		CheckOut:   models.NewNullString(req.CheckOut),
		Notes:      models.NewNullString(req.Notes),
	})
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to save attendance")
		return
	}

	data := map[string]interface{}{"record": record, "updated": updated}
	if updated {
		writeJSONSuccess(w, "Attendance updated", data)
		return
	}
	writeJSONCreated(w, "Attendance recorded", data)
}

func UpdateAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	record, err := db.GetAttendanceByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Attendance record not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to load attendance record")
		return
	}

	var req attendanceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	status, ok := normalizeStatusOrReject(w, req.Status)
	if !ok {
		return
	}

	record.Status = status
	record.CheckIn = models.NewNullString(req.CheckIn)
	record.CheckOut = models.NewNullString(req.CheckOut)
	record.Notes = models.NewNullString(req.Notes)

	updated, err := db.UpdateAttendance(record)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to update attendance")
		return
	}
	writeJSONSuccess(w, "Attendance updated", updated)
}

func DeleteAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := db.DeleteAttendance(id); err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Attendance record not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete attendance")
		return
	}
	writeJSONSuccess(w, "Attendance deleted", nil)
}
