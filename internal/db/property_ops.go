package db

import (
	"database/sql"
	"log"

	"paytrack/internal/models"
)

const propertyColumns = `id, property_type, area, area_unit, partner_name, counterparty_name,
       rate_per_unit, total_cost, amount_paid, amount_pending, transacted_on, created_at, updated_at`

func scanProperty(row interface{ Scan(...interface{}) error }) (models.Property, error) {
	var p models.Property
	err := row.Scan(&p.ID, &p.PropertyType, &p.Area, &p.AreaUnit, &p.PartnerName, &p.CounterpartyName,
		&p.RatePerUnit, &p.TotalCost, &p.AmountPaid, &p.AmountPending, &p.TransactedOn, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// CreateProperty inserts a property transaction with pending recomputed.
func CreateProperty(p models.Property) (models.Property, error) {
	p.Recalculate()
	err := DB.QueryRow(`
        INSERT INTO properties (property_type, area, area_unit, partner_name, counterparty_name,
                                rate_per_unit, total_cost, amount_paid, amount_pending, transacted_on,
                                created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
        RETURNING id, created_at, updated_at`,
		p.PropertyType, p.Area, p.AreaUnit, p.PartnerName, p.CounterpartyName,
		p.RatePerUnit, p.TotalCost, p.AmountPaid, p.AmountPending, p.TransactedOn).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Printf("CreateProperty: failed to insert %s transaction: %v", p.PropertyType, err)
		return p, err
	}
	log.Printf("CreateProperty: property %d (%s, %.2f) created", p.ID, p.PropertyType, p.TotalCost)
	return p, nil
}

// GetPropertyByID retrieves one property transaction.
func GetPropertyByID(id int64) (models.Property, error) {
	p, err := scanProperty(DB.QueryRow(`SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id))
	if err != nil && err != sql.ErrNoRows {
		log.Printf("GetPropertyByID: failed to get property %d: %v", id, err)
	}
	return p, err
}

// ListProperties returns property transactions newest first, optionally
// filtered by type (buy/sell).
func ListProperties(propertyType string) ([]models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties`
	args := []interface{}{}
	if propertyType != "" {
		query += ` WHERE property_type = $1`
		args = append(args, propertyType)
	}
	query += ` ORDER BY transacted_on DESC, id DESC`

	rows, err := DB.Query(query, args...)
	if err != nil {
		log.Printf("ListProperties: query failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	properties := []models.Property{}
	for rows.Next() {
		p, errScan := scanProperty(rows)
		if errScan != nil {
			return nil, errScan
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

// UpdateProperty overwrites the mutable fields with pending recomputed.
func UpdateProperty(p models.Property) (models.Property, error) {
	p.Recalculate()
	err := DB.QueryRow(`
        UPDATE properties
        SET property_type = $1, area = $2, area_unit = $3, partner_name = $4, counterparty_name = $5,
            rate_per_unit = $6, total_cost = $7, amount_paid = $8, amount_pending = $9,
            transacted_on = $10, updated_at = NOW()
        WHERE id = $11
        RETURNING created_at, updated_at`,
		p.PropertyType, p.Area, p.AreaUnit, p.PartnerName, p.CounterpartyName,
		p.RatePerUnit, p.TotalCost, p.AmountPaid, p.AmountPending, p.TransactedOn, p.ID).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil && err != sql.ErrNoRows {
		log.Printf("UpdateProperty: failed to update property %d: %v", p.ID, err)
	}
	return p, err
}

// DeleteProperty removes a property transaction.
func DeleteProperty(id int64) error {
	result, err := DB.Exec(`DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		log.Printf("DeleteProperty: failed to delete property %d: %v", id, err)
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
