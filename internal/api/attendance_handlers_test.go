package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"paytrack/internal/constants"
	"paytrack/internal/models"
)

func stubWorker(t *testing.T, err error) {
	orig := getWorkerByID
	getWorkerByID = func(id int64) (models.Worker, error) {
		if err != nil {
			return models.Worker{}, err
		}
		return models.Worker{ID: id, Name: "Ram Singh"}, nil
	}
	t.Cleanup(func() { getWorkerByID = orig })
}

func TestCreateAttendanceUpdatedVsCreated(t *testing.T) {
	stubWorker(t, nil)

	tests := []struct {
		name     string
		updated  bool
		wantCode int
		wantMsg  string
	}{
		{name: "first mark for the pair creates", updated: false, wantCode: http.StatusCreated, wantMsg: "Attendance recorded"},
		{name: "second mark for the pair updates", updated: true, wantCode: http.StatusOK, wantMsg: "Attendance updated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got models.Attendance
			orig := upsertAttendance
			upsertAttendance = func(a models.Attendance) (models.Attendance, bool, error) {
				got = a
				a.ID = 9
				return a, tt.updated, nil
			}
			t.Cleanup(func() { upsertAttendance = orig })

			body := `{"workerId":3,"date":"2024-06-15","status":"Present"}`
			req := httptest.NewRequest(http.MethodPost, "/api/attendance", strings.NewReader(body))
			rec := httptest.NewRecorder()
			CreateAttendance(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			var resp struct {
				Status  string `json:"status"`
				Message string `json:"message"`
				Data    struct {
					Updated bool `json:"updated"`
				} `json:"data"`
			}
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "success", resp.Status)
			assert.Equal(t, tt.wantMsg, resp.Message)
			assert.Equal(t, tt.updated, resp.Data.Updated)

			// The handler normalizes the status and parses the date before
			// handing the record to the upsert.
			assert.Equal(t, int64(3), got.WorkerID)
			assert.Equal(t, constants.ATTENDANCE_PRESENT, got.Status)
			assert.Equal(t, "2024-06-15", got.AttendedOn.Format("2006-01-02"))
		})
	}
}

func TestCreateAttendanceUnknownWorker(t *testing.T) {
	stubWorker(t, sql.ErrNoRows)

	body := `{"workerId":99,"status":"present"}`
	req := httptest.NewRequest(http.MethodPost, "/api/attendance", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CreateAttendance(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateAttendanceRejectsUnknownStatus(t *testing.T) {
	stubWorker(t, nil)

	body := `{"workerId":3,"status":"vacation"}`
	req := httptest.NewRequest(http.MethodPost, "/api/attendance", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CreateAttendance(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
