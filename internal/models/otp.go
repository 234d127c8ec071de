package models

import "time"

// OTP is a disposable verification code for mobile-number login. Expired
// rows are purged periodically; the original relied on a store-level TTL
// index for the same effect.
type OTP struct {
	ID           int64     `json:"id"`
	MobileNumber string    `json:"mobileNumber"`
	Code         string    `json:"-"`
	ExpiresAt    time.Time `json:"expiresAt"`
	IsUsed       bool      `json:"isUsed"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Expired reports whether the code is past its expiry at the given instant.
func (o OTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
