package db

import (
	"database/sql"
	"log"

	"paytrack/internal/models"
)

const meelColumns = `id, crop_name, transaction_type, transaction_mode, partners,
       total_cost, tag, COALESCE(created_by, 0), created_at, updated_at`

func scanMeel(row interface{ Scan(...interface{}) error }) (models.Meel, error) {
	var m models.Meel
	err := row.Scan(&m.ID, &m.CropName, &m.TransactionType, &m.TransactionMode, &m.Partners,
		&m.TotalCost, &m.Tag, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// CreateMeel inserts a crop-trading ledger entry.
func CreateMeel(m models.Meel) (models.Meel, error) {
	err := DB.QueryRow(`
        INSERT INTO meel_entries (crop_name, transaction_type, transaction_mode, partners, total_cost, tag, created_by, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, 0), NOW(), NOW())
        RETURNING id, created_at, updated_at`,
		m.CropName, m.TransactionType, m.TransactionMode, m.Partners, m.TotalCost, m.Tag, m.CreatedBy).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		log.Printf("CreateMeel: failed to insert entry for '%s': %v", m.CropName, err)
		return m, err
	}
	log.Printf("CreateMeel: entry %d (%s %s) created", m.ID, m.TransactionType, m.CropName)
	return m, nil
}

// GetMeelByID retrieves one ledger entry.
func GetMeelByID(id int64) (models.Meel, error) {
	m, err := scanMeel(DB.QueryRow(`SELECT `+meelColumns+` FROM meel_entries WHERE id = $1`, id))
	if err != nil && err != sql.ErrNoRows {
		log.Printf("GetMeelByID: failed to get entry %d: %v", id, err)
	}
	return m, err
}

// ListMeel returns ledger entries newest first, optionally filtered by
// transaction type.
func ListMeel(transactionType string) ([]models.Meel, error) {
	query := `SELECT ` + meelColumns + ` FROM meel_entries`
	args := []interface{}{}
	if transactionType != "" {
		query += ` WHERE transaction_type = $1`
		args = append(args, transactionType)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := DB.Query(query, args...)
	if err != nil {
		log.Printf("ListMeel: query failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	entries := []models.Meel{}
	for rows.Next() {
		m, errScan := scanMeel(rows)
		if errScan != nil {
			return nil, errScan
		}
		entries = append(entries, m)
	}
	return entries, rows.Err()
}

// UpdateMeel overwrites the mutable fields of a ledger entry.
func UpdateMeel(m models.Meel) (models.Meel, error) {
	err := DB.QueryRow(`
        UPDATE meel_entries
        SET crop_name = $1, transaction_type = $2, transaction_mode = $3, partners = $4,
            total_cost = $5, tag = $6, updated_at = NOW()
        WHERE id = $7
        RETURNING COALESCE(created_by, 0), created_at, updated_at`,
		m.CropName, m.TransactionType, m.TransactionMode, m.Partners, m.TotalCost, m.Tag, m.ID).
		Scan(&m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil && err != sql.ErrNoRows {
		log.Printf("UpdateMeel: failed to update entry %d: %v", m.ID, err)
	}
	return m, err
}

// DeleteMeel removes a ledger entry.
func DeleteMeel(id int64) error {
	result, err := DB.Exec(`DELETE FROM meel_entries WHERE id = $1`, id)
	if err != nil {
		log.Printf("DeleteMeel: failed to delete entry %d: %v", id, err)
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
