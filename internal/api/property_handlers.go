package api

import (
	"database/sql"
	"net/http"
	"time"

	"paytrack/internal/constants"
	"paytrack/internal/db"
	"paytrack/internal/models"
)

type propertyRequest struct {
	PropertyType     string  `json:"propertyType" validate:"required"`
	Area             float64 `json:"area" validate:"gte=0"`
	AreaUnit         string  `json:"areaUnit" validate:"omitempty,oneof=bigha gaj"`
	PartnerName      string  `json:"partnerName"`
	CounterpartyName string  `json:"counterpartyName"`
	RatePerUnit      float64 `json:"ratePerUnit" validate:"gte=0"`
	TotalCost        float64 `json:"totalCost" validate:"required,gt=0"`
	AmountPaid       float64 `json:"amountPaid" validate:"gte=0"`
	TransactedOn     string  `json:"transactionDate"` // YYYY-MM-DD, defaults to today
}

func (req propertyRequest) apply(w http.ResponseWriter, p *models.Property) bool {
	propertyType := constants.NormalizePropertyType(req.PropertyType)
	if propertyType == "" {
		writeJSONError(w, http.StatusBadRequest, "Field 'propertyType' must be one of: buy, sell")
		return false
	}

	p.PropertyType = propertyType
	p.Area = req.Area
	p.AreaUnit = req.AreaUnit
	if p.AreaUnit == "" {
		p.AreaUnit = constants.AREA_UNIT_BIGHA
	}
	p.PartnerName = models.NewNullString(req.PartnerName)
	p.CounterpartyName = models.NewNullString(req.CounterpartyName)
	p.RatePerUnit = req.RatePerUnit
	p.TotalCost = req.TotalCost
	p.AmountPaid = req.AmountPaid

	if req.TransactedOn != "" {
		parsed, err := time.Parse("2006-01-02", req.TransactedOn)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "Field 'transactionDate' must be YYYY-MM-DD")
			return false
		}
		p.TransactedOn = parsed
	} else if p.TransactedOn.IsZero() {
		p.TransactedOn = time.Now()
	}
	return true
}

// ListProperties returns property deals newest first, filtered by
// ?propertyType=.
func ListProperties(w http.ResponseWriter, r *http.Request) {
	propertyType := r.URL.Query().Get("propertyType")
	if propertyType != "" {
		propertyType = constants.NormalizePropertyType(propertyType)
		if propertyType == "" {
			writeJSONError(w, http.StatusBadRequest, "Query parameter 'propertyType' must be one of: buy, sell")
			return
		}
	}

	properties, err := db.ListProperties(propertyType)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load properties")
		return
	}
	writeJSONSuccess(w, "Properties retrieved", properties)
}

func GetProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	property, err := db.GetPropertyByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Property not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to load property")
		return
	}
	writeJSONSuccess(w, "Property retrieved", property)
}

func CreateProperty(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var property models.Property
	if !req.apply(w, &property) {
		return
	}

	created, err := db.CreateProperty(property)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to create property")
		return
	}
	writeJSONCreated(w, "Property created", created)
}

func UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	property, err := db.GetPropertyByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Property not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to load property")
		return
	}

	var req propertyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if !req.apply(w, &property) {
		return
	}

	updated, err := db.UpdateProperty(property)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to update property")
		return
	}
	writeJSONSuccess(w, "Property updated", updated)
}

func DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := db.DeleteProperty(id); err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Property not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete property")
		return
	}
	writeJSONSuccess(w, "Property deleted", nil)
}
