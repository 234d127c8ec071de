package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MeelPartner is one named participant in a partnered Meel trade.
type MeelPartner struct {
	Name         string  `json:"name"`
	Mobile       string  `json:"mobile,omitempty"`
	Contribution float64 `json:"contribution"`
}

// MeelPartnerList stores the partner list as a JSONB column.
type MeelPartnerList []MeelPartner

// Value implements driver.Valuer for JSONB storage.
func (l MeelPartnerList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB storage.
func (l *MeelPartnerList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("MeelPartnerList.Scan: unsupported source type %T", src)
}

// Meel is one entry in the crop-trading ledger, optionally split among
// partners by contribution amount.
type Meel struct {
	ID              int64           `json:"id"`
	CropName        string          `json:"cropName"`
	TransactionType string          `json:"transactionType"`
	TransactionMode string          `json:"transactionMode"`
	Partners        MeelPartnerList `json:"partners"`
	TotalCost       float64         `json:"totalCost"`
	Tag             NullString      `json:"tag"`
	CreatedBy       int64           `json:"createdBy"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
