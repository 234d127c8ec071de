package db

import (
	"database/sql"
	"fmt"
	"log"

	"paytrack/internal/models"
)

const paymentColumns = `id, category, worker_id, cultivation_id, amount, paid_on,
       payment_mode, description, created_at, updated_at`

func scanPayment(row interface{ Scan(...interface{}) error }) (models.Payment, error) {
	var p models.Payment
	err := row.Scan(&p.ID, &p.Category, &p.WorkerID, &p.CultivationID, &p.Amount, &p.PaidOn,
		&p.PaymentMode, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// CreatePayment inserts a payment. When the payment is against a
// cultivation, the cultivation's received/pending figures are folded forward
// in the same transaction so the money invariant holds.
func CreatePayment(p models.Payment) (models.Payment, error) {
	tx, err := DB.Begin()
	if err != nil {
		log.Printf("CreatePayment: failed to begin transaction: %v", err)
		return p, err
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
        INSERT INTO payments (category, worker_id, cultivation_id, amount, paid_on, payment_mode, description, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        RETURNING id, created_at, updated_at`,
		p.Category, p.WorkerID, p.CultivationID, p.Amount, p.PaidOn, p.PaymentMode, p.Description).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Printf("CreatePayment: insert failed: %v", err)
		return p, err
	}

	if p.CultivationID.Valid {
		_, err = tx.Exec(`
            UPDATE cultivations
            SET amount_received = amount_received + $1,
                amount_pending = GREATEST(0, total_cost - (amount_received + $1)),
                updated_at = NOW()
            WHERE id = $2`, p.Amount, p.CultivationID.Int64)
		if err != nil {
			log.Printf("CreatePayment: failed to fold payment into cultivation %d: %v", p.CultivationID.Int64, err)
			return p, err
		}
	}

	if err = tx.Commit(); err != nil {
		log.Printf("CreatePayment: commit failed: %v", err)
		return p, err
	}
	log.Printf("CreatePayment: payment %d (%s, %.2f) recorded", p.ID, p.Category, p.Amount)
	return p, nil
}

// GetPaymentByID retrieves one payment. Returns sql.ErrNoRows when absent.
func GetPaymentByID(id int64) (models.Payment, error) {
	p, err := scanPayment(DB.QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if err != nil && err != sql.ErrNoRows {
		log.Printf("GetPaymentByID: failed to get payment %d: %v", id, err)
	}
	return p, err
}

// ListPayments returns payments newest first. category, workerID and
// cultivationID are each optional filters (zero value = no filter).
func ListPayments(category string, workerID, cultivationID int64) ([]models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE 1=1`
	args := []interface{}{}
	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	if workerID != 0 {
		args = append(args, workerID)
		query += fmt.Sprintf(` AND worker_id = $%d`, len(args))
	}
	if cultivationID != 0 {
		args = append(args, cultivationID)
		query += fmt.Sprintf(` AND cultivation_id = $%d`, len(args))
	}
	query += ` ORDER BY paid_on DESC, id DESC`

	rows, err := DB.Query(query, args...)
	if err != nil {
		log.Printf("ListPayments: query failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		p, errScan := scanPayment(rows)
		if errScan != nil {
			return nil, errScan
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// UpdatePayment overwrites amount/date/mode/description. Category and the
// worker/cultivation reference are immutable; correcting those means
// deleting and re-recording the payment.
func UpdatePayment(p models.Payment) (models.Payment, error) {
	tx, err := DB.Begin()
	if err != nil {
		return p, err
	}
	defer tx.Rollback()

	var oldAmount float64
	var cultivationID sql.NullInt64
	err = tx.QueryRow(`SELECT amount, cultivation_id FROM payments WHERE id = $1`, p.ID).
		Scan(&oldAmount, &cultivationID)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("UpdatePayment: failed to read payment %d: %v", p.ID, err)
		}
		return p, err
	}

	err = tx.QueryRow(`
        UPDATE payments
        SET amount = $1, paid_on = $2, payment_mode = $3, description = $4, updated_at = NOW()
        WHERE id = $5
        RETURNING category, worker_id, cultivation_id, created_at, updated_at`,
		p.Amount, p.PaidOn, p.PaymentMode, p.Description, p.ID).
		Scan(&p.Category, &p.WorkerID, &p.CultivationID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Printf("UpdatePayment: failed to update payment %d: %v", p.ID, err)
		return p, err
	}

	if cultivationID.Valid && p.Amount != oldAmount {
		_, err = tx.Exec(`
            UPDATE cultivations
            SET amount_received = amount_received + $1,
                amount_pending = GREATEST(0, total_cost - (amount_received + $1)),
                updated_at = NOW()
            WHERE id = $2`, p.Amount-oldAmount, cultivationID.Int64)
		if err != nil {
			log.Printf("UpdatePayment: failed to refold cultivation %d: %v", cultivationID.Int64, err)
			return p, err
		}
	}

	return p, tx.Commit()
}

// DeletePayment removes a payment and, for cultivation payments, reverses
// the received amount it had contributed.
func DeletePayment(id int64) error {
	tx, err := DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var amount float64
	var cultivationID sql.NullInt64
	err = tx.QueryRow(`DELETE FROM payments WHERE id = $1 RETURNING amount, cultivation_id`, id).
		Scan(&amount, &cultivationID)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("DeletePayment: failed to delete payment %d: %v", id, err)
		}
		return err
	}

	if cultivationID.Valid {
		_, err = tx.Exec(`
            UPDATE cultivations
            SET amount_received = GREATEST(0, amount_received - $1),
                amount_pending = GREATEST(0, total_cost - GREATEST(0, amount_received - $1)),
                updated_at = NOW()
            WHERE id = $2`, amount, cultivationID.Int64)
		if err != nil {
			log.Printf("DeletePayment: failed to reverse cultivation %d: %v", cultivationID.Int64, err)
			return err
		}
	}

	return tx.Commit()
}
