package models

import "time"

// Person owns zero or more cultivations (buyer/landholder side of a crop deal).
type Person struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Phone     NullString `json:"phone"`
	Address   NullString `json:"address"`
	Notes     NullString `json:"notes"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
