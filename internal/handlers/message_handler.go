// internal/handlers/message_handler.go

package handlers

import (
	"database/sql"
	"log"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"paytrack/internal/constants"
	"paytrack/internal/db"
	"paytrack/internal/models"
)

const helpText = `Commands:
/workers — list workers
/addworker — add a worker
/payworker — record a worker payment
/attendance — recent attendance
/addattendance — mark attendance
/attendancesummary — attendance rollup
/crops — list cultivations
/addcrop — add a cultivation
/properties — list property deals
/addproperty — add a property deal
/summary — money summary

During an add flow, answer one question per message. Reply "none" to skip an
optional field and "today" for today's date. Send /cancel to abandon a flow.`

// HandleMessage processes one incoming Telegram message: authentication,
// command dispatch, then the active intake step if any. Handling is
// serialized per chat, so rapid messages from one sender advance an intake
// flow one step per message even though updates are dispatched concurrently.
func (bh *BotHandler) HandleMessage(update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	bh.Deps.SessionManager.Serialize(update.Message.Chat.ID, func() {
		bh.processMessage(update.Message)
	})
}

func (bh *BotHandler) processMessage(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	log.Printf("HandleMessage: ChatID=%d, Text='%s'", chatID, text)

	user, authed := bh.authenticate(message)
	if !authed {
		bh.sendMessage(chatID, "You are not linked to a PayTrack account. Set your Telegram username on your account profile, then try again.")
		return
	}

	if message.IsCommand() {
		bh.handleCommand(chatID, user, message.Command())
		return
	}

	currentState := bh.Deps.SessionManager.GetState(chatID)
	if currentState == constants.STATE_IDLE {
		bh.sendMessage(chatID, helpText)
		return
	}
	bh.Deps.SessionManager.Touch(chatID)

	switch currentState {
	// Worker intake
	case constants.STATE_WORKER_NAME:
		bh.handleWorkerNameInput(chatID, text)
	case constants.STATE_WORKER_PHONE:
		bh.handleWorkerPhoneInput(chatID, text)
	case constants.STATE_WORKER_SALARY:
		bh.handleWorkerSalaryInput(chatID, text)
	case constants.STATE_WORKER_ADDRESS:
		bh.handleWorkerAddressInput(chatID, text)
	case constants.STATE_WORKER_JOINING_DATE:
		bh.handleWorkerJoiningDateInput(chatID, text)
	case constants.STATE_WORKER_NOTES:
		bh.handleWorkerNotesInput(chatID, text)

	// Cultivation intake
	case constants.STATE_CROP_NAME:
		bh.handleCropNameInput(chatID, text)
	case constants.STATE_CROP_AREA:
		bh.handleCropAreaInput(chatID, text)
	case constants.STATE_CROP_RATE:
		bh.handleCropRateInput(chatID, text)
	case constants.STATE_CROP_PAYMENT_MODE:
		bh.handleCropPaymentModeInput(chatID, text)
	case constants.STATE_CROP_BUYER_NAME:
		bh.handleCropBuyerNameInput(chatID, text)
	case constants.STATE_CROP_AMOUNT_RECEIVED:
		bh.handleCropAmountReceivedInput(chatID, text)
	case constants.STATE_CROP_HARVEST_DATE:
		bh.handleCropHarvestDateInput(chatID, text)
	case constants.STATE_CROP_NOTES:
		bh.handleCropNotesInput(chatID, text)

	// Property intake
	case constants.STATE_PROPERTY_TYPE:
		bh.handlePropertyTypeInput(chatID, text)
	case constants.STATE_PROPERTY_VALUE:
		bh.handlePropertyValueInput(chatID, text)

	// Attendance intake
	case constants.STATE_ATTENDANCE_WORKER:
		bh.handleAttendanceWorkerInput(chatID, text)
	case constants.STATE_ATTENDANCE_DATE:
		bh.handleAttendanceDateInput(chatID, text)
	case constants.STATE_ATTENDANCE_STATUS:
		bh.handleAttendanceStatusInput(chatID, text)
	case constants.STATE_ATTENDANCE_NOTES:
		bh.handleAttendanceNotesInput(chatID, text)

	// Worker payment intake
	case constants.STATE_PAYMENT_WORKER:
		bh.handlePaymentWorkerInput(chatID, text)
	case constants.STATE_PAYMENT_AMOUNT:
		bh.handlePaymentAmountInput(chatID, text)
	case constants.STATE_PAYMENT_MODE:
		bh.handlePaymentModeInput(chatID, text)

	default:
		log.Printf("HandleMessage: unknown state '%s' for chatID %d, resetting to idle", currentState, chatID)
		bh.Deps.SessionManager.ClearState(chatID)
		bh.sendMessage(chatID, helpText)
	}
}

// authenticate resolves the sender's Telegram username to a PayTrack
// account. A chat with no username, or a username no account has linked,
// is rejected.
func (bh *BotHandler) authenticate(message *tgbotapi.Message) (models.User, bool) {
	if message.From == nil || message.From.UserName == "" {
		return models.User{}, false
	}
	user, err := db.GetUserByTelegramUsername(message.From.UserName)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("authenticate: lookup failed for '%s': %v", message.From.UserName, err)
		}
		return models.User{}, false
	}
	return user, true
}

// handleCommand dispatches a slash command. Any command except /cancel
// abandons the active intake flow first, so a stale session never swallows
// a fresh command.
func (bh *BotHandler) handleCommand(chatID int64, user models.User, command string) {
	if bh.Deps.SessionManager.GetState(chatID) != constants.STATE_IDLE {
		bh.Deps.SessionManager.ClearState(chatID)
	}

	switch command {
	case "start":
		bh.sendMessage(chatID, "Welcome to PayTrack, "+user.Username+".\n\n"+helpText)
	case "cancel":
		bh.sendMessage(chatID, "Cancelled.")
	case "help":
		bh.sendMessage(chatID, helpText)

	case "workers":
		bh.handleWorkersList(chatID)
	case "addworker":
		bh.startWorkerIntake(chatID)
	case "payworker":
		bh.startPaymentIntake(chatID)
	case "attendance":
		bh.handleAttendanceList(chatID)
	case "addattendance":
		bh.startAttendanceIntake(chatID)
	case "attendancesummary":
		bh.handleAttendanceSummary(chatID)
	case "crops":
		bh.handleCropsList(chatID)
	case "addcrop":
		bh.startCultivationIntake(chatID)
	case "properties":
		bh.handlePropertiesList(chatID)
	case "addproperty":
		bh.startPropertyIntake(chatID)
	case "summary":
		bh.handleSummary(chatID)

	default:
		log.Printf("handleCommand: unknown command '%s' from chatID %d", command, chatID)
		bh.sendMessage(chatID, "Unknown command.\n\n"+helpText)
	}
}
