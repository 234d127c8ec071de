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

// Worker payment intake: worker name (fuzzy) → amount → payment mode →
// commit. A UPI payment also gets a scannable QR code in the confirmation.

func (bh *BotHandler) startPaymentIntake(chatID int64) {
	bh.Deps.SessionManager.UpdateIntake(chatID, &session.IntakeData{})
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_PAYMENT_WORKER)
	bh.sendMessage(chatID, "Recording a worker payment. Which worker? (part of the name is fine)")
}

func (bh *BotHandler) handlePaymentWorkerInput(chatID int64, text string) {
	worker, ok := bh.resolveWorker(chatID, text)
	if !ok {
		return
	}
	intake := bh.Deps.SessionManager.GetIntake(chatID)
	intake.Payment.Category = constants.PAYMENT_CATEGORY_WORKER
	intake.Payment.WorkerID = models.NewNullInt64(worker.ID)
	intake.Payment.Description = models.NewNullString("Payment to " + worker.Name)
	bh.Deps.SessionManager.UpdateIntake(chatID, intake)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_PAYMENT_AMOUNT)
	bh.sendMessage(chatID, "How much?")
}

func (bh *BotHandler) handlePaymentAmountInput(chatID int64, text string) {
	amount, err := utils.ParsePositiveAmount(text)
	if err != nil {
		bh.sendMessage(chatID, "❌ "+err.Error()+" How much?")
		return
	}
	intake := bh.Deps.SessionManager.GetIntake(chatID)
	intake.Payment.Amount = amount
	bh.Deps.SessionManager.UpdateIntake(chatID, intake)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_PAYMENT_MODE)
	bh.sendMessage(chatID, "Payment mode? (cash / upi)")
}

func (bh *BotHandler) handlePaymentModeInput(chatID int64, text string) {
	mode := constants.NormalizePaymentMode(text)
	if mode == "" {
		bh.sendMessage(chatID, "❌ Please answer \"cash\" or \"upi\".")
		return
	}

	intake := bh.Deps.SessionManager.GetIntake(chatID)
	intake.Payment.PaymentMode = mode
	intake.Payment.PaidOn = time.Now()

	payment, err := db.CreatePayment(intake.Payment)
	bh.Deps.SessionManager.ClearState(chatID)
	if err != nil {
		log.Printf("handlePaymentModeInput: commit failed for chatID %d: %v", chatID, err)
		bh.sendMessage(chatID, "❌ Something went wrong saving the payment. Please start again with /payworker.")
		return
	}

	confirmation := "✅ Payment recorded: " + utils.FormatMoney(payment.Amount) +
		" (" + payment.PaymentMode + ")" +
		"\n" + utils.FormatOptionalText(payment.Description)
	bh.sendMessage(chatID, confirmation)

	if mode == constants.PAYMENT_MODE_UPI && bh.Deps.Config.UPIVirtualAddress != "" {
		qr, qrErr := utils.GenerateUPIQR(bh.Deps.Config.UPIVirtualAddress, bh.Deps.Config.UPIPayeeName,
			payment.Amount, utils.FormatOptionalText(payment.Description))
		if qrErr != nil {
			log.Printf("handlePaymentModeInput: QR generation failed for chatID %d: %v", chatID, qrErr)
			return
		}
		bh.sendPhoto(chatID, "upi-payment.png", qr, "Scan to pay "+utils.FormatMoney(payment.Amount)+" via UPI")
	}
}
