package models

import "time"

// Property is a real-estate buy or sell transaction.
type Property struct {
	ID               int64      `json:"id"`
	PropertyType     string     `json:"propertyType"`
	Area             float64    `json:"area"`
	AreaUnit         string     `json:"areaUnit"`
	PartnerName      NullString `json:"partnerName"`
	CounterpartyName NullString `json:"counterpartyName"`
	RatePerUnit      float64    `json:"ratePerUnit"`
	TotalCost        float64    `json:"totalCost"`
	AmountPaid       float64    `json:"amountPaid"`
	AmountPending    float64    `json:"amountPending"`
	TransactedOn     time.Time  `json:"transactionDate"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Recalculate rederives AmountPending from the total cost and amount paid.
func (p *Property) Recalculate() {
	p.AmountPending = ComputePending(p.TotalCost, p.AmountPaid)
}
