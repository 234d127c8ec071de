package db

import (
	"database/sql"
	"log"
	"strings"

	"paytrack/internal/models"
)

const personColumns = `id, name, phone, address, notes, created_at, updated_at`

func scanPerson(row interface{ Scan(...interface{}) error }) (models.Person, error) {
	var p models.Person
	err := row.Scan(&p.ID, &p.Name, &p.Phone, &p.Address, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// CreatePerson inserts a new person.
func CreatePerson(p models.Person) (models.Person, error) {
	err := DB.QueryRow(`
        INSERT INTO persons (name, phone, address, notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, NOW(), NOW())
        RETURNING id, created_at, updated_at`,
		p.Name, p.Phone, p.Address, p.Notes).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Printf("CreatePerson: failed to insert person '%s': %v", p.Name, err)
		return p, err
	}
	return p, nil
}

// GetPersonByID retrieves one person.
func GetPersonByID(id int64) (models.Person, error) {
	p, err := scanPerson(DB.QueryRow(`SELECT `+personColumns+` FROM persons WHERE id = $1`, id))
	if err != nil && err != sql.ErrNoRows {
		log.Printf("GetPersonByID: failed to get person %d: %v", id, err)
	}
	return p, err
}

// GetOrCreatePersonByName resolves a free-text name to a person, creating
// one when no case-insensitive exact match exists. Used by the bot's
// buyer-name step so cultivations always carry a canonical person reference.
func GetOrCreatePersonByName(name string) (models.Person, error) {
	name = strings.TrimSpace(name)
	p, err := scanPerson(DB.QueryRow(`SELECT `+personColumns+` FROM persons WHERE LOWER(name) = LOWER($1)`, name))
	if err == nil {
		return p, nil
	}
	if err != sql.ErrNoRows {
		log.Printf("GetOrCreatePersonByName: lookup failed for '%s': %v", name, err)
		return p, err
	}
	return CreatePerson(models.Person{Name: name})
}

// ListPersons returns all persons, newest first.
func ListPersons() ([]models.Person, error) {
	rows, err := DB.Query(`SELECT ` + personColumns + ` FROM persons ORDER BY created_at DESC, id DESC`)
	if err != nil {
		log.Printf("ListPersons: query failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	persons := []models.Person{}
	for rows.Next() {
		p, errScan := scanPerson(rows)
		if errScan != nil {
			return nil, errScan
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

// UpdatePerson overwrites the mutable fields of a person.
func UpdatePerson(p models.Person) (models.Person, error) {
	err := DB.QueryRow(`
        UPDATE persons
        SET name = $1, phone = $2, address = $3, notes = $4, updated_at = NOW()
        WHERE id = $5
        RETURNING created_at, updated_at`,
		p.Name, p.Phone, p.Address, p.Notes, p.ID).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil && err != sql.ErrNoRows {
		log.Printf("UpdatePerson: failed to update person %d: %v", p.ID, err)
	}
	return p, err
}

// DeletePersonCascade deletes a person together with their cultivations and
// the payments recorded against those cultivations, all inside one
// transaction. The original performed these as three independent writes and
// could leave orphans on a crash between them.
func DeletePersonCascade(id int64) error {
	tx, err := DB.Begin()
	if err != nil {
		log.Printf("DeletePersonCascade: failed to begin transaction: %v", err)
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
        DELETE FROM payments
        WHERE cultivation_id IN (SELECT id FROM cultivations WHERE person_id = $1)`, id)
	if err != nil {
		log.Printf("DeletePersonCascade: failed to delete payments for person %d: %v", id, err)
		return err
	}

	_, err = tx.Exec(`DELETE FROM cultivations WHERE person_id = $1`, id)
	if err != nil {
		log.Printf("DeletePersonCascade: failed to delete cultivations for person %d: %v", id, err)
		return err
	}

	result, err := tx.Exec(`DELETE FROM persons WHERE id = $1`, id)
	if err != nil {
		log.Printf("DeletePersonCascade: failed to delete person %d: %v", id, err)
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}

	if err = tx.Commit(); err != nil {
		log.Printf("DeletePersonCascade: commit failed for person %d: %v", id, err)
		return err
	}
	log.Printf("DeletePersonCascade: person %d and dependents deleted", id)
	return nil
}
