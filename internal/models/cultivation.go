package models

import "time"

// Cultivation is one crop deal: area cultivated at a per-bigha rate for a
// person, with money received against the computed total.
type Cultivation struct {
	ID             int64      `json:"id"`
	PersonID       NullInt64  `json:"personId"`
	PersonName     string     `json:"personName,omitempty"`
	CropName       string     `json:"cropName"`
	AreaBigha      float64    `json:"area"`
	RatePerBigha   float64    `json:"ratePerBigha"`
	TotalCost      float64    `json:"totalCost"`
	AmountReceived float64    `json:"amountReceived"`
	AmountPending  float64    `json:"amountPending"`
	PaymentMode    string     `json:"paymentMode"`
	CultivatedOn   time.Time  `json:"cultivationDate"`
	HarvestedOn    NullTime   `json:"harvestDate"`
	Notes          NullString `json:"notes"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Recalculate rederives TotalCost and AmountPending from area, rate and the
// amount received. Called on every create and update so the stored figures
// can never drift from the inputs.
func (c *Cultivation) Recalculate() {
	c.TotalCost = c.AreaBigha * c.RatePerBigha
	c.AmountPending = ComputePending(c.TotalCost, c.AmountReceived)
}
