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

// Worker intake: name → phone → salary → address (optional) → joining date
// (optional, defaults to today) → notes (optional) → commit.

func (bh *BotHandler) startWorkerIntake(chatID int64) {
	bh.Deps.SessionManager.UpdateIntake(chatID, &session.IntakeData{})
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_WORKER_NAME)
	bh.sendMessage(chatID, "Adding a new worker. What is the worker's name?")
}

func (bh *BotHandler) handleWorkerNameInput(chatID int64, text string) {
	if text == "" {
		bh.sendMessage(chatID, "Name cannot be empty. What is the worker's name?")
		return
	}
	intake := bh.Deps.SessionManager.GetIntake(chatID)
	intake.Worker.Name = text
	bh.Deps.SessionManager.UpdateIntake(chatID, intake)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_WORKER_PHONE)
	bh.sendMessage(chatID, "Phone number?")
}

func (bh *BotHandler) handleWorkerPhoneInput(chatID int64, text string) {
	phone, err := utils.ValidatePhoneNumber(text)
	if err != nil {
		bh.sendMessage(chatID, "❌ "+err.Error()+" Phone number?")
		return
	}
	intake := bh.Deps.SessionManager.GetIntake(chatID)
	intake.Worker.Phone = phone
	bh.Deps.SessionManager.UpdateIntake(chatID, intake)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_WORKER_SALARY)
	bh.sendMessage(chatID, "Monthly salary?")
}

func (bh *BotHandler) handleWorkerSalaryInput(chatID int64, text string) {
	salary, err := utils.ParsePositiveAmount(text)
	if err != nil {
		bh.sendMessage(chatID, "❌ "+err.Error()+" Monthly salary?")
		return
	}
	intake := bh.Deps.SessionManager.GetIntake(chatID)
	intake.Worker.MonthlySalary = salary
	bh.Deps.SessionManager.UpdateIntake(chatID, intake)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_WORKER_ADDRESS)
	bh.sendMessage(chatID, "Address? (reply \"none\" to skip)")
}

func (bh *BotHandler) handleWorkerAddressInput(chatID int64, text string) {
	intake := bh.Deps.SessionManager.GetIntake(chatID)
	intake.Worker.Address = models.NewNullString(utils.NormalizeOptionalText(text))
	bh.Deps.SessionManager.UpdateIntake(chatID, intake)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_WORKER_JOINING_DATE)
	bh.sendMessage(chatID, "Joining date? (DD/MM/YYYY, or \"today\")")
}

func (bh *BotHandler) handleWorkerJoiningDateInput(chatID int64, text string) {
	// Required date: unparsable input silently falls back to today.
	joiningDate, _ := utils.ParseIntakeDate(text, true, time.Now())
	intake := bh.Deps.SessionManager.GetIntake(chatID)
	intake.Worker.JoiningDate = joiningDate
	bh.Deps.SessionManager.UpdateIntake(chatID, intake)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_WORKER_NOTES)
	bh.sendMessage(chatID, "Any notes? (reply \"none\" to skip)")
}

func (bh *BotHandler) handleWorkerNotesInput(chatID int64, text string) {
	intake := bh.Deps.SessionManager.GetIntake(chatID)
	intake.Worker.Notes = models.NewNullString(utils.NormalizeOptionalText(text))
	intake.Worker.IsActive = true

	worker, err := db.CreateWorker(intake.Worker)
	bh.Deps.SessionManager.ClearState(chatID)
	if err != nil {
		log.Printf("handleWorkerNotesInput: commit failed for chatID %d: %v", chatID, err)
		bh.sendMessage(chatID, "❌ Something went wrong saving the worker. Please start again with /addworker.")
		return
	}

	bh.sendMessage(chatID, "✅ Worker added: "+worker.Name+
		"\nPhone: "+worker.Phone+
		"\nSalary: "+utils.FormatMoney(worker.MonthlySalary)+
		"\nJoined: "+utils.FormatDateForDisplay(worker.JoiningDate))
}
