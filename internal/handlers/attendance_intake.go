package handlers

import (
	"log"
	"time"

	"paytrack/internal/constants"
	"paytrack/internal/db"
	"paytrack/internal/models"
	"paytrack/internal/session"
	"paytrack/internal/utils"
)

// Attendance intake: worker name (fuzzy) → date (default today) → status →
// notes (optional) → commit. The commit is an upsert on (worker, date), so
// marking the same day twice corrects the earlier record.

func (bh *BotHandler) startAttendanceIntake(chatID int64) {
	bh.Deps.SessionManager.UpdateIntake(chatID, &session.IntakeData{})
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_ATTENDANCE_WORKER)
	bh.sendMessage(chatID, "Marking attendance. Which worker? (part of the name is fine)")
}

// resolveWorker turns a free-text fragment into exactly one worker, or replies
// with the reason it could not and reports false.
func (bh *BotHandler) resolveWorker(chatID int64, text string) (models.Worker, bool) {
	workers, err := db.FindWorkersByName(text)
	if err != nil {
		log.Printf("resolveWorker: lookup failed for chatID %d: %v", chatID, err)
		bh.sendMessage(chatID, "❌ Could not look up workers right now. Try again.")
		return models.Worker{}, false
	}
	worker, ok := utils.MatchWorkerByName(workers, text)
	if !ok {
		if len(workers) == 0 {
			bh.sendMessage(chatID, "No worker matches \""+text+"\". Which worker?")
		} else {
			reply := "Several workers match \"" + text + "\":\n"
			for _, w := range workers {
				reply += "• " + w.Name + "\n"
			}
			reply += "Please be more specific."
			bh.sendMessage(chatID, reply)
		}
		return models.Worker{}, false
	}
	return worker, true
}

func (bh *BotHandler) handleAttendanceWorkerInput(chatID int64, text string) {
	worker, ok := bh.resolveWorker(chatID, text)
	if !ok {
		return
	}
	intake := bh.Deps.SessionManager.GetIntake(chatID)
	intake.Attendance.WorkerID = worker.ID
	intake.Attendance.WorkerName = worker.Name
	bh.Deps.SessionManager.UpdateIntake(chatID, intake)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_ATTENDANCE_DATE)
	bh.sendMessage(chatID, "Date? (DD/MM/YYYY, or \"today\")")
}

func (bh *BotHandler) handleAttendanceDateInput(chatID int64, text string) {
	attendedOn, _ := utils.ParseIntakeDate(text, true, time.Now())
	intake := bh.Deps.SessionManager.GetIntake(chatID)
	intake.Attendance.AttendedOn = attendedOn
	bh.Deps.SessionManager.UpdateIntake(chatID, intake)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_ATTENDANCE_STATUS)
	bh.sendMessage(chatID, "Status? (Present / Absent / HalfDay / Leave)")
}

func (bh *BotHandler) handleAttendanceStatusInput(chatID int64, text string) {
	status := constants.NormalizeAttendanceStatus(text)
	if status == "" {
		bh.sendMessage(chatID, "❌ Please answer Present, Absent, HalfDay or Leave.")
		return
	}
	intake := bh.Deps.SessionManager.GetIntake(chatID)
	intake.Attendance.Status = status
	bh.Deps.SessionManager.UpdateIntake(chatID, intake)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_ATTENDANCE_NOTES)
	bh.sendMessage(chatID, "Any notes? (reply \"none\" to skip)")
}

func (bh *BotHandler) handleAttendanceNotesInput(chatID int64, text string) {
	intake := bh.Deps.SessionManager.GetIntake(chatID)
	intake.Attendance.Notes = models.NewNullString(utils.NormalizeOptionalText(text))
	workerName := intake.Attendance.WorkerName

	record, updated, err := db.UpsertAttendance(intake.Attendance)
	bh.Deps.SessionManager.ClearState(chatID)
	if err != nil {
		log.Printf("handleAttendanceNotesInput: commit failed for chatID %d: %v", chatID, err)
		bh.sendMessage(chatID, "❌ Something went wrong saving attendance. Please start again with /addattendance.")
		return
	}

	verb := "Added"
	if updated {
		verb = "Updated"
	}
	bh.sendMessage(chatID, "✅ "+verb+" attendance for "+workerName+
		" on "+utils.FormatDateForDisplay(record.AttendedOn)+
		": "+utils.TitleCaseStatus(record.Status))
}
