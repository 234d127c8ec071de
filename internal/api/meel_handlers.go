package api

import (
	"database/sql"
	"fmt"
	"net/http"
	"strings"

	"paytrack/internal/constants"
	"paytrack/internal/db"
	"paytrack/internal/models"
)

type meelRequest struct {
	CropName        string               `json:"cropName" validate:"required"`
	TransactionType string               `json:"transactionType" validate:"required,oneof=buy sell"`
	TransactionMode string               `json:"transactionMode" validate:"required,oneof=individual with-partner"`
	Partners        []models.MeelPartner `json:"partners"`
	TotalCost       float64              `json:"totalCost" validate:"required,gt=0"`
	Tag             string               `json:"tag"`
}

// validatePartners enforces the partnered-trade rules: every partner named
// with a positive contribution, and the contributions together not exceeding
// the trade's total cost. Writes the 400 response itself on failure.
func (req meelRequest) validatePartners(w http.ResponseWriter) bool {
	if req.TransactionMode != constants.MEEL_MODE_WITH_PARTNER {
		return true
	}
	if len(req.Partners) == 0 {
		writeJSONError(w, http.StatusBadRequest, "A with-partner trade needs at least one partner")
		return false
	}

	var sum float64
	for i, partner := range req.Partners {
		if strings.TrimSpace(partner.Name) == "" {
			writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Partner %d has no name", i+1))
			return false
		}
		if partner.Contribution <= 0 {
			writeJSONError(w, http.StatusBadRequest,
				fmt.Sprintf("Partner '%s' must have a contribution greater than zero", partner.Name))
			return false
		}
		sum += partner.Contribution
	}
	if sum > req.TotalCost {
		writeJSONError(w, http.StatusBadRequest, "Partner contributions exceed the total cost")
		return false
	}
	return true
}

func (req meelRequest) apply(m *models.Meel) {
	m.CropName = req.CropName
	m.TransactionType = req.TransactionType
	m.TransactionMode = req.TransactionMode
	m.TotalCost = req.TotalCost
	m.Tag = models.NewNullString(req.Tag)
	if req.TransactionMode == constants.MEEL_MODE_WITH_PARTNER {
		m.Partners = req.Partners
	} else {
		m.Partners = nil
	}
}

// ListMeel returns ledger entries newest first, filtered by
// ?transactionType=.
func ListMeel(w http.ResponseWriter, r *http.Request) {
	transactionType := r.URL.Query().Get("transactionType")
	if transactionType != "" && transactionType != constants.MEEL_TYPE_BUY && transactionType != constants.MEEL_TYPE_SELL {
		writeJSONError(w, http.StatusBadRequest, "Query parameter 'transactionType' must be one of: buy, sell")
		return
	}

	entries, err := db.ListMeel(transactionType)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load meel entries")
		return
	}
	writeJSONSuccess(w, "Meel entries retrieved", entries)
}

func GetMeel(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	entry, err := db.GetMeelByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Meel entry not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to load meel entry")
		return
	}
	writeJSONSuccess(w, "Meel entry retrieved", entry)
}

func CreateMeel(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	var req meelRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if !req.validatePartners(w) {
		return
	}

	var entry models.Meel
	req.apply(&entry)
	entry.CreatedBy = user.ID

	created, err := db.CreateMeel(entry)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to create meel entry")
		return
	}
	writeJSONCreated(w, "Meel entry created", created)
}

func UpdateMeel(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	entry, err := db.GetMeelByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Meel entry not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to load meel entry")
		return
	}

	var req meelRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if !req.validatePartners(w) {
		return
	}
	req.apply(&entry)

	updated, err := db.UpdateMeel(entry)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to update meel entry")
		return
	}
	writeJSONSuccess(w, "Meel entry updated", updated)
}

func DeleteMeel(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := db.DeleteMeel(id); err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Meel entry not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete meel entry")
		return
	}
	writeJSONSuccess(w, "Meel entry deleted", nil)
}
