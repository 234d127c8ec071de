package session

import "paytrack/internal/models"

// IntakeData is the scratch record a chat fills in one field per message.
// Only the sub-record matching the active flow is populated; committing or
// abandoning the flow discards the whole struct.
type IntakeData struct {
	Worker      models.Worker
	Cultivation models.Cultivation
	Property    models.Property
	Attendance  models.Attendance
	Payment     models.Payment

	// BuyerName holds the cultivation buyer's free text until commit, when
	// it is resolved to a Person record.
	BuyerName string
}
