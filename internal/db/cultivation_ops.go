package db

import (
	"database/sql"
	"fmt"
	"log"

	"paytrack/internal/models"
)

const cultivationColumns = `c.id, c.person_id, COALESCE(p.name, ''), c.crop_name, c.area_bigha,
       c.rate_per_bigha, c.total_cost, c.amount_received, c.amount_pending, c.payment_mode,
       c.cultivated_on, c.harvested_on, c.notes, c.created_at, c.updated_at`

func scanCultivation(row interface{ Scan(...interface{}) error }) (models.Cultivation, error) {
	var c models.Cultivation
	err := row.Scan(&c.ID, &c.PersonID, &c.PersonName, &c.CropName, &c.AreaBigha,
		&c.RatePerBigha, &c.TotalCost, &c.AmountReceived, &c.AmountPending, &c.PaymentMode,
		&c.CultivatedOn, &c.HarvestedOn, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// CreateCultivation inserts a cultivation. Recalculate must have been called
// by the caller; it is called again here so the stored figures can never
// disagree with the inputs regardless of the call site.
func CreateCultivation(c models.Cultivation) (models.Cultivation, error) {
	c.Recalculate()
	err := DB.QueryRow(`
        INSERT INTO cultivations (person_id, crop_name, area_bigha, rate_per_bigha, total_cost,
                                  amount_received, amount_pending, payment_mode, cultivated_on,
                                  harvested_on, notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
        RETURNING id, created_at, updated_at`,
		c.PersonID, c.CropName, c.AreaBigha, c.RatePerBigha, c.TotalCost,
		c.AmountReceived, c.AmountPending, c.PaymentMode, c.CultivatedOn,
		c.HarvestedOn, c.Notes).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		log.Printf("CreateCultivation: failed to insert '%s': %v", c.CropName, err)
		return c, err
	}
	log.Printf("CreateCultivation: cultivation %d (%s, %.2f bigha) created", c.ID, c.CropName, c.AreaBigha)
	return c, nil
}

// GetCultivationByID retrieves one cultivation with its owner's name.
func GetCultivationByID(id int64) (models.Cultivation, error) {
	c, err := scanCultivation(DB.QueryRow(`
        SELECT `+cultivationColumns+`
        FROM cultivations c LEFT JOIN persons p ON p.id = c.person_id
        WHERE c.id = $1`, id))
	if err != nil && err != sql.ErrNoRows {
		log.Printf("GetCultivationByID: failed to get cultivation %d: %v", id, err)
	}
	return c, err
}

// ListCultivations returns cultivations newest first, optionally filtered by
// person and/or crop name (case-insensitive).
func ListCultivations(personID int64, cropName string) ([]models.Cultivation, error) {
	query := `SELECT ` + cultivationColumns + `
        FROM cultivations c LEFT JOIN persons p ON p.id = c.person_id
        WHERE 1=1`
	args := []interface{}{}
	if personID != 0 {
		args = append(args, personID)
		query += fmt.Sprintf(` AND c.person_id = $%d`, len(args))
	}
	if cropName != "" {
		args = append(args, cropName)
		query += fmt.Sprintf(` AND LOWER(c.crop_name) = LOWER($%d)`, len(args))
	}
	query += ` ORDER BY c.cultivated_on DESC, c.id DESC`

	rows, err := DB.Query(query, args...)
	if err != nil {
		log.Printf("ListCultivations: query failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	cultivations := []models.Cultivation{}
	for rows.Next() {
		c, errScan := scanCultivation(rows)
		if errScan != nil {
			return nil, errScan
		}
		cultivations = append(cultivations, c)
	}
	return cultivations, rows.Err()
}

// UpdateCultivation overwrites the mutable fields, recomputing cost and
// pending server-side.
func UpdateCultivation(c models.Cultivation) (models.Cultivation, error) {
	c.Recalculate()
	err := DB.QueryRow(`
        UPDATE cultivations
        SET person_id = $1, crop_name = $2, area_bigha = $3, rate_per_bigha = $4,
            total_cost = $5, amount_received = $6, amount_pending = $7, payment_mode = $8,
            cultivated_on = $9, harvested_on = $10, notes = $11, updated_at = NOW()
        WHERE id = $12
        RETURNING created_at, updated_at`,
		c.PersonID, c.CropName, c.AreaBigha, c.RatePerBigha,
		c.TotalCost, c.AmountReceived, c.AmountPending, c.PaymentMode,
		c.CultivatedOn, c.HarvestedOn, c.Notes, c.ID).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil && err != sql.ErrNoRows {
		log.Printf("UpdateCultivation: failed to update cultivation %d: %v", c.ID, err)
	}
	return c, err
}

// DeleteCultivation removes a cultivation and its payments in one
// transaction.
func DeleteCultivation(id int64) error {
	tx, err := DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.Exec(`DELETE FROM payments WHERE cultivation_id = $1`, id); err != nil {
		log.Printf("DeleteCultivation: failed to delete payments for cultivation %d: %v", id, err)
		return err
	}
	result, err := tx.Exec(`DELETE FROM cultivations WHERE id = $1`, id)
	if err != nil {
		log.Printf("DeleteCultivation: failed to delete cultivation %d: %v", id, err)
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}
