package models

import "time"

// Payment is the unified payment entity. The original system kept two
// near-duplicate models (Payment and WorkerPayment); here Category
// discriminates the context and exactly one of WorkerID/CultivationID is set.
type Payment struct {
	ID            int64      `json:"id"`
	Category      string     `json:"category"`
	WorkerID      NullInt64  `json:"workerId"`
	CultivationID NullInt64  `json:"cultivationId"`
	Amount        float64    `json:"amount"`
	PaidOn        time.Time  `json:"date"`
	PaymentMode   string     `json:"paymentMode"`
	Description   NullString `json:"description"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
