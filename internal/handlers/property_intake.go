package handlers

import (
	"log"
	"time"

	"paytrack/internal/constants"
	"paytrack/internal/db"
	"paytrack/internal/session"
	"paytrack/internal/utils"
)

// Property intake is the short flow: transaction type → total value → commit.
// Area, partner and counterparty details are left for the WebApp to fill in.

func (bh *BotHandler) startPropertyIntake(chatID int64) {
	bh.Deps.SessionManager.UpdateIntake(chatID, &session.IntakeData{})
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_PROPERTY_TYPE)
	bh.sendMessage(chatID, "Adding a property deal. Buy or sell?")
}

func (bh *BotHandler) handlePropertyTypeInput(chatID int64, text string) {
	propertyType := constants.NormalizePropertyType(text)
	if propertyType == "" {
		bh.sendMessage(chatID, "❌ Please answer \"buy\" or \"sell\".")
		return
	}
	intake := bh.Deps.SessionManager.GetIntake(chatID)
	intake.Property.PropertyType = propertyType
	bh.Deps.SessionManager.UpdateIntake(chatID, intake)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_PROPERTY_VALUE)
	bh.sendMessage(chatID, "Total value of the deal?")
}

func (bh *BotHandler) handlePropertyValueInput(chatID int64, text string) {
	value, err := utils.ParsePositiveAmount(text)
	if err != nil {
		bh.sendMessage(chatID, "❌ "+err.Error()+" Total value of the deal?")
		return
	}

	intake := bh.Deps.SessionManager.GetIntake(chatID)
	intake.Property.TotalCost = value
	intake.Property.AreaUnit = constants.AREA_UNIT_BIGHA
	intake.Property.TransactedOn = time.Now()

	property, err := db.CreateProperty(intake.Property)
	bh.Deps.SessionManager.ClearState(chatID)
	if err != nil {
		log.Printf("handlePropertyValueInput: commit failed for chatID %d: %v", chatID, err)
		bh.sendMessage(chatID, "❌ Something went wrong saving the property deal. Please start again with /addproperty.")
		return
	}

	bh.sendMessage(chatID, "✅ Property deal recorded: "+utils.TitleCaseStatus(property.PropertyType)+
		" for "+utils.FormatMoney(property.TotalCost)+
		"\nPending: "+utils.FormatMoney(property.AmountPending))
}
