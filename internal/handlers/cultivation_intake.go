package handlers

import (
	"fmt"
	"log"
	"time"

	"paytrack/internal/constants"
	"paytrack/internal/db"
	"paytrack/internal/models"
	"paytrack/internal/session"
	"paytrack/internal/utils"
)

// Cultivation intake: crop name → area → rate per bigha → payment mode →
// buyer name (optional, resolved to a person) → amount received (optional,
// default 0) → harvest date (optional) → notes (optional) → commit.

func (bh *BotHandler) startCultivationIntake(chatID int64) {
	bh.Deps.SessionManager.UpdateIntake(chatID, &session.IntakeData{})
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_CROP_NAME)
	bh.sendMessage(chatID, "Adding a cultivation record. Which crop?")
}

func (bh *BotHandler) handleCropNameInput(chatID int64, text string) {
	if text == "" {
		bh.sendMessage(chatID, "Crop name cannot be empty. Which crop?")
		return
	}
	intake := bh.Deps.SessionManager.GetIntake(chatID)
	intake.Cultivation.CropName = text
	bh.Deps.SessionManager.UpdateIntake(chatID, intake)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_CROP_AREA)
	bh.sendMessage(chatID, "Area in bigha?")
}

func (bh *BotHandler) handleCropAreaInput(chatID int64, text string) {
	area, err := utils.ParsePositiveAmount(text)
	if err != nil {
		bh.sendMessage(chatID, "❌ "+err.Error()+" Area in bigha?")
		return
	}
	intake := bh.Deps.SessionManager.GetIntake(chatID)
	intake.Cultivation.AreaBigha = area
	bh.Deps.SessionManager.UpdateIntake(chatID, intake)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_CROP_RATE)
	bh.sendMessage(chatID, "Rate per bigha?")
}

func (bh *BotHandler) handleCropRateInput(chatID int64, text string) {
	rate, err := utils.ParsePositiveAmount(text)
	if err != nil {
		bh.sendMessage(chatID, "❌ "+err.Error()+" Rate per bigha?")
		return
	}
	intake := bh.Deps.SessionManager.GetIntake(chatID)
	intake.Cultivation.RatePerBigha = rate
	bh.Deps.SessionManager.UpdateIntake(chatID, intake)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_CROP_PAYMENT_MODE)
	bh.sendMessage(chatID, "Payment mode? (cash / upi)")
}

func (bh *BotHandler) handleCropPaymentModeInput(chatID int64, text string) {
	mode := constants.NormalizePaymentMode(text)
	if mode == "" {
		bh.sendMessage(chatID, "❌ Please answer \"cash\" or \"upi\".")
		return
	}
	intake := bh.Deps.SessionManager.GetIntake(chatID)
	intake.Cultivation.PaymentMode = mode
	bh.Deps.SessionManager.UpdateIntake(chatID, intake)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_CROP_BUYER_NAME)
	bh.sendMessage(chatID, "Buyer's name? (reply \"none\" to skip)")
}

func (bh *BotHandler) handleCropBuyerNameInput(chatID int64, text string) {
	intake := bh.Deps.SessionManager.GetIntake(chatID)
	intake.BuyerName = utils.NormalizeOptionalText(text)
	bh.Deps.SessionManager.UpdateIntake(chatID, intake)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_CROP_AMOUNT_RECEIVED)
	bh.sendMessage(chatID, "Amount received so far? (reply \"none\" for 0)")
}

func (bh *BotHandler) handleCropAmountReceivedInput(chatID int64, text string) {
	intake := bh.Deps.SessionManager.GetIntake(chatID)
	if utils.NormalizeOptionalText(text) == "" {
		intake.Cultivation.AmountReceived = 0
	} else {
		received, err := utils.ParseNonNegativeAmount(text)
		if err != nil {
			bh.sendMessage(chatID, "❌ "+err.Error()+" Amount received so far?")
			return
		}
		intake.Cultivation.AmountReceived = received
	}
	bh.Deps.SessionManager.UpdateIntake(chatID, intake)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_CROP_HARVEST_DATE)
	bh.sendMessage(chatID, "Harvest date? (DD/MM/YYYY, \"today\", or \"none\")")
}

func (bh *BotHandler) handleCropHarvestDateInput(chatID int64, text string) {
	intake := bh.Deps.SessionManager.GetIntake(chatID)
	intake.Cultivation.HarvestedOn = utils.ParseOptionalIntakeDate(text, time.Now())
	bh.Deps.SessionManager.UpdateIntake(chatID, intake)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_CROP_NOTES)
	bh.sendMessage(chatID, "Any notes? (reply \"none\" to skip)")
}

func (bh *BotHandler) handleCropNotesInput(chatID int64, text string) {
	intake := bh.Deps.SessionManager.GetIntake(chatID)
	intake.Cultivation.Notes = models.NewNullString(utils.NormalizeOptionalText(text))
	intake.Cultivation.CultivatedOn = time.Now()

	if intake.BuyerName != "" {
		person, err := db.GetOrCreatePersonByName(intake.BuyerName)
		if err != nil {
			log.Printf("handleCropNotesInput: buyer resolution failed for chatID %d: %v", chatID, err)
			bh.Deps.SessionManager.ClearState(chatID)
			bh.sendMessage(chatID, "❌ Something went wrong saving the cultivation. Please start again with /addcrop.")
			return
		}
		intake.Cultivation.PersonID = models.NewNullInt64(person.ID)
		intake.Cultivation.PersonName = person.Name
	}

	cultivation, err := db.CreateCultivation(intake.Cultivation)
	bh.Deps.SessionManager.ClearState(chatID)
	if err != nil {
		log.Printf("handleCropNotesInput: commit failed for chatID %d: %v", chatID, err)
		bh.sendMessage(chatID, "❌ Something went wrong saving the cultivation. Please start again with /addcrop.")
		return
	}

	summary := fmt.Sprintf("✅ Cultivation added: %s\nArea: %.2f bigha × %s = %s\nReceived: %s, Pending: %s",
		cultivation.CropName,
		cultivation.AreaBigha,
		utils.FormatMoney(cultivation.RatePerBigha),
		utils.FormatMoney(cultivation.TotalCost),
		utils.FormatMoney(cultivation.AmountReceived),
		utils.FormatMoney(cultivation.AmountPending))
	if cultivation.PersonName != "" {
		summary += "\nBuyer: " + cultivation.PersonName
	}
	bh.sendMessage(chatID, summary)
}
