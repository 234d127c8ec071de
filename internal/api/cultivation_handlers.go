package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"paytrack/internal/constants"
	"paytrack/internal/db"
	"paytrack/internal/models"
)

type cultivationRequest struct {
	PersonID       int64   `json:"personId"`
	CropName       string  `json:"cropName" validate:"required"`
	Area           float64 `json:"area" validate:"required,gt=0"`
	RatePerBigha   float64 `json:"ratePerBigha" validate:"required,gt=0"`
	AmountReceived float64 `json:"amountReceived" validate:"gte=0"`
	PaymentMode    string  `json:"paymentMode" validate:"required"`
	CultivatedOn   string  `json:"cultivationDate"` // YYYY-MM-DD, defaults to today
	HarvestedOn    string  `json:"harvestDate"`     // YYYY-MM-DD, optional
	Notes          string  `json:"notes"`
}

// apply copies the request onto a cultivation. Total cost and pending are not
// taken from the caller; the db layer recomputes them.
func (req cultivationRequest) apply(w http.ResponseWriter, c *models.Cultivation) bool {
	mode := constants.NormalizePaymentMode(req.PaymentMode)
	if mode == "" {
		writeJSONError(w, http.StatusBadRequest, "Field 'paymentMode' must be one of: cash, upi")
		return false
	}

	if req.PersonID != 0 {
		if _, err := db.GetPersonByID(req.PersonID); err != nil {
			if err == sql.ErrNoRows {
				writeJSONError(w, http.StatusNotFound, "Person not found")
				return false
			}
			writeJSONError(w, http.StatusInternalServerError, "Failed to load person")
			return false
		}
		c.PersonID = models.NewNullInt64(req.PersonID)
	} else {
		c.PersonID = models.NullInt64{}
	}

	c.CropName = req.CropName
	c.AreaBigha = req.Area
	c.RatePerBigha = req.RatePerBigha
	c.AmountReceived = req.AmountReceived
	c.PaymentMode = mode
	c.Notes = models.NewNullString(req.Notes)

	if req.CultivatedOn != "" {
		parsed, err := time.Parse("2006-01-02", req.CultivatedOn)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "Field 'cultivationDate' must be YYYY-MM-DD")
			return false
		}
		c.CultivatedOn = parsed
	} else if c.CultivatedOn.IsZero() {
		c.CultivatedOn = time.Now()
	}

	if req.HarvestedOn != "" {
		parsed, err := time.Parse("2006-01-02", req.HarvestedOn)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "Field 'harvestDate' must be YYYY-MM-DD")
			return false
		}
		c.HarvestedOn = models.NewNullTime(parsed)
	} else {
		c.HarvestedOn = models.NullTime{}
	}
	return true
}

// ListCultivations returns cultivations newest first, filtered by ?personId=
// and ?cropName=.
func ListCultivations(w http.ResponseWriter, r *http.Request) {
	var personID int64
	if raw := r.URL.Query().Get("personId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "Query parameter 'personId' must be an integer")
			return
		}
		personID = parsed
	}

	cultivations, err := db.ListCultivations(personID, r.URL.Query().Get("cropName"))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load cultivations")
		return
	}
	writeJSONSuccess(w, "Cultivations retrieved", cultivations)
}

func GetCultivation(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	cultivation, err := db.GetCultivationByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Cultivation not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to load cultivation")
		return
	}
	writeJSONSuccess(w, "Cultivation retrieved", cultivation)
}

func CreateCultivation(w http.ResponseWriter, r *http.Request) {
	var req cultivationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var cultivation models.Cultivation
	if !req.apply(w, &cultivation) {
		return
	}

	created, err := db.CreateCultivation(cultivation)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to create cultivation")
		return
	}
	writeJSONCreated(w, "Cultivation created", created)
}

func UpdateCultivation(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	cultivation, err := db.GetCultivationByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Cultivation not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to load cultivation")
		return
	}

	var req cultivationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if !req.apply(w, &cultivation) {
		return
	}

	updated, err := db.UpdateCultivation(cultivation)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to update cultivation")
		return
	}
	writeJSONSuccess(w, "Cultivation updated", updated)
}

// DeleteCultivation removes a cultivation together with its payments.
func DeleteCultivation(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := db.DeleteCultivation(id); err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Cultivation not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete cultivation")
		return
	}
	writeJSONSuccess(w, "Cultivation deleted", nil)
}
