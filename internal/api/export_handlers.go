package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"paytrack/internal/db"
	"paytrack/internal/utils"
)

// sendWorkbook streams the workbook as an xlsx attachment. The filename gets
// a uuid suffix so repeated downloads never collide in the client's folder.
func sendWorkbook(w http.ResponseWriter, f *excelize.File, baseName string) {
	filename := fmt.Sprintf("%s-%s.xlsx", baseName, uuid.New().String()[:8])
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := f.Write(w); err != nil {
		log.Printf("sendWorkbook: write failed for %s: %v", filename, err)
	}
}

func setHeaderRow(f *excelize.File, sheetName string, headers []string) {
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}
}

// ExportPayments writes the whole payment ledger to a workbook.
func ExportPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := db.ListPayments("", 0, 0)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load payments")
		return
	}

	f := excelize.NewFile()
	sheetName := "Payments"
	index, _ := f.NewSheet(sheetName)
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	setHeaderRow(f, sheetName, []string{"ID", "Category", "Worker ID", "Cultivation ID", "Amount", "Date", "Mode", "Description"})

	rowIndex := 2
	for _, p := range payments {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowIndex), p.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowIndex), p.Category)
		if p.WorkerID.Valid {
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowIndex), p.WorkerID.Int64)
		}
		if p.CultivationID.Valid {
			f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowIndex), p.CultivationID.Int64)
		}
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowIndex), p.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", rowIndex), p.PaidOn.Format("02/01/2006"))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", rowIndex), p.PaymentMode)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", rowIndex), utils.FormatOptionalText(p.Description))
		rowIndex++
	}

	sendWorkbook(w, f, "payments")
}

// ExportAttendance writes attendance records to a workbook, honoring the same
// ?workerId=/?from=/?to= filters as the list endpoint.
func ExportAttendance(w http.ResponseWriter, r *http.Request) {
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

	records, err := db.ListAttendance(0, from, to)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load attendance")
		return
	}

	f := excelize.NewFile()
	sheetName := "Attendance"
	index, _ := f.NewSheet(sheetName)
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	setHeaderRow(f, sheetName, []string{"ID", "Worker", "Date", "Status", "Check In", "Check Out", "Notes"})

	rowIndex := 2
	for _, a := range records {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowIndex), a.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowIndex), a.WorkerName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowIndex), a.AttendedOn.Format("02/01/2006"))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowIndex), utils.TitleCaseStatus(a.Status))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowIndex), utils.FormatOptionalText(a.CheckIn))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", rowIndex), utils.FormatOptionalText(a.CheckOut))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", rowIndex), utils.FormatOptionalText(a.Notes))
		rowIndex++
	}

	sendWorkbook(w, f, "attendance")
}
