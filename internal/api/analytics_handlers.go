package api

import (
	"log"
	"net/http"
	"time"

	"paytrack/internal/db"
)

// GetSummary returns the dashboard rollup.
func GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := db.BuildSummary(time.Now())
	if err != nil {
		log.Printf("GetSummary: failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to build summary")
		return
	}
	writeJSONSuccess(w, "Summary retrieved", summary)
}

// GetCultivationAnalytics returns the per-crop breakdown with share
// percentages.
func GetCultivationAnalytics(w http.ResponseWriter, r *http.Request) {
	rollups, err := db.BuildCropRollups()
	if err != nil {
		log.Printf("GetCultivationAnalytics: failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to build cultivation analytics")
		return
	}
	writeJSONSuccess(w, "Cultivation analytics retrieved", rollups)
}

// GetAttendanceAnalytics returns per-worker attendance counts over an
// optional ?from= / ?to= window.
func GetAttendanceAnalytics(w http.ResponseWriter, r *http.Request) {
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

	rollups, err := db.BuildAttendanceRollups(from, to)
	if err != nil {
		log.Printf("GetAttendanceAnalytics: failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to build attendance analytics")
		return
	}
	writeJSONSuccess(w, "Attendance analytics retrieved", rollups)
}

// GetMeelAnalytics returns per-partner contribution sums and shares.
func GetMeelAnalytics(w http.ResponseWriter, r *http.Request) {
	rollups, err := db.BuildPartnerRollups()
	if err != nil {
		log.Printf("GetMeelAnalytics: failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to build meel analytics")
		return
	}
	writeJSONSuccess(w, "Meel analytics retrieved", rollups)
}
