package api

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"paytrack/internal/constants"
	"paytrack/internal/db"
	"paytrack/internal/models"
	"paytrack/internal/utils"
)

type paymentRequest struct {
	Category      string  `json:"category" validate:"omitempty,oneof=worker cultivation"`
	WorkerID      int64   `json:"workerId"`
	CultivationID int64   `json:"cultivationId"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Date          string  `json:"date"` // YYYY-MM-DD, defaults to today
	PaymentMode   string  `json:"paymentMode" validate:"required"`
	Description   string  `json:"description"`
}

// buildPayment turns the request into a payment record, enforcing that the
// reference id matches the category. Writes the 400/404 response itself on
// failure.
func buildPayment(w http.ResponseWriter, req paymentRequest) (models.Payment, bool) {
	var p models.Payment

	mode := constants.NormalizePaymentMode(req.PaymentMode)
	if mode == "" {
		writeJSONError(w, http.StatusBadRequest, "Field 'paymentMode' must be one of: cash, upi")
		return p, false
	}

	p.Category = req.Category
	p.Amount = req.Amount
	p.PaymentMode = mode
	p.Description = models.NewNullString(req.Description)

	p.PaidOn = time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "Field 'date' must be YYYY-MM-DD")
			return p, false
		}
		p.PaidOn = parsed
	}

	switch req.Category {
	case constants.PAYMENT_CATEGORY_WORKER:
		if req.WorkerID <= 0 {
			writeJSONError(w, http.StatusBadRequest, "Field 'workerId' is required for worker payments")
			return p, false
		}
		if _, err := db.GetWorkerByID(req.WorkerID); err != nil {
			if err == sql.ErrNoRows {
				writeJSONError(w, http.StatusNotFound, "Worker not found")
				return p, false
			}
			writeJSONError(w, http.StatusInternalServerError, "Failed to load worker")
			return p, false
		}
		p.WorkerID = models.NewNullInt64(req.WorkerID)
	case constants.PAYMENT_CATEGORY_CULTIVATION:
		if req.CultivationID <= 0 {
			writeJSONError(w, http.StatusBadRequest, "Field 'cultivationId' is required for cultivation payments")
			return p, false
		}
		if _, err := db.GetCultivationByID(req.CultivationID); err != nil {
			if err == sql.ErrNoRows {
				writeJSONError(w, http.StatusNotFound, "Cultivation not found")
				return p, false
			}
			writeJSONError(w, http.StatusInternalServerError, "Failed to load cultivation")
			return p, false
		}
		p.CultivationID = models.NewNullInt64(req.CultivationID)
	}

	return p, true
}

// ListPayments returns the unified ledger, filtered by ?category=,
// ?workerId= and ?cultivationId=.
func ListPayments(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" && category != constants.PAYMENT_CATEGORY_WORKER && category != constants.PAYMENT_CATEGORY_CULTIVATION {
		writeJSONError(w, http.StatusBadRequest, "Query parameter 'category' must be one of: worker, cultivation")
		return
	}

	var workerID, cultivationID int64
	if raw := r.URL.Query().Get("workerId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "Query parameter 'workerId' must be an integer")
			return
		}
		workerID = parsed
	}
	if raw := r.URL.Query().Get("cultivationId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "Query parameter 'cultivationId' must be an integer")
			return
		}
		cultivationID = parsed
	}

	payments, err := db.ListPayments(category, workerID, cultivationID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load payments")
		return
	}
	writeJSONSuccess(w, "Payments retrieved", payments)
}

func GetPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	payment, err := db.GetPaymentByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Payment not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to load payment")
		return
	}
	writeJSONSuccess(w, "Payment retrieved", payment)
}

func CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.Category == "" {
		writeJSONError(w, http.StatusBadRequest, "Field 'category' is required")
		return
	}
	payment, ok := buildPayment(w, req)
	if !ok {
		return
	}

	created, err := db.CreatePayment(payment)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to record payment")
		return
	}
	writeJSONCreated(w, "Payment recorded", created)
}

func UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	payment, err := db.GetPaymentByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Payment not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to load payment")
		return
	}

	var req paymentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	mode := constants.NormalizePaymentMode(req.PaymentMode)
	if mode == "" {
		writeJSONError(w, http.StatusBadRequest, "Field 'paymentMode' must be one of: cash, upi")
		return
	}

	payment.Amount = req.Amount
	payment.PaymentMode = mode
	payment.Description = models.NewNullString(req.Description)
	if req.Date != "" {
		parsed, errParse := time.Parse("2006-01-02", req.Date)
		if errParse != nil {
			writeJSONError(w, http.StatusBadRequest, "Field 'date' must be YYYY-MM-DD")
			return
		}
		payment.PaidOn = parsed
	}

	updated, err := db.UpdatePayment(payment)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to update payment")
		return
	}
	writeJSONSuccess(w, "Payment updated", updated)
}

func DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := db.DeletePayment(id); err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Payment not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete payment")
		return
	}
	writeJSONSuccess(w, "Payment deleted", nil)
}

// PaymentQR renders a UPI collection QR for a payment. Only meaningful for
// UPI-mode payments when a collection address is configured.
func PaymentQR(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	payment, err := db.GetPaymentByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Payment not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to load payment")
		return
	}

	if payment.PaymentMode != constants.PAYMENT_MODE_UPI {
		writeJSONError(w, http.StatusGone, "Payment is not a UPI payment")
		return
	}
	if deps.Config.UPIVirtualAddress == "" {
		writeJSONError(w, http.StatusGone, "No UPI collection address is configured")
		return
	}

	note := utils.FormatOptionalText(payment.Description)
	if note == "" {
		note = fmt.Sprintf("PayTrack payment #%d", payment.ID)
	}
	png, err := utils.GenerateUPIQR(deps.Config.UPIVirtualAddress, deps.Config.UPIPayeeName, payment.Amount, note)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to render QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// ListWorkerPayments is the category=worker view of the ledger.
func ListWorkerPayments(w http.ResponseWriter, r *http.Request) {
	var workerID int64
	if raw := r.URL.Query().Get("workerId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "Query parameter 'workerId' must be an integer")
			return
		}
		workerID = parsed
	}

	payments, err := db.ListPayments(constants.PAYMENT_CATEGORY_WORKER, workerID, 0)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load payments")
		return
	}
	writeJSONSuccess(w, "Worker payments retrieved", payments)
}

// CreateWorkerPayment records a payment with the category pinned to worker.
func CreateWorkerPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	req.Category = constants.PAYMENT_CATEGORY_WORKER
	req.CultivationID = 0

	payment, ok := buildPayment(w, req)
	if !ok {
		return
	}
	created, err := db.CreatePayment(payment)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to record payment")
		return
	}
	writeJSONCreated(w, "Payment recorded", created)
}
