package api

import (
	"database/sql"
	"net/http"

	"paytrack/internal/db"
	"paytrack/internal/models"
)

type personRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

func (req personRequest) apply(p *models.Person) {
	p.Name = req.Name
	p.Phone = models.NewNullString(req.Phone)
	p.Address = models.NewNullString(req.Address)
	p.Notes = models.NewNullString(req.Notes)
}

func ListPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := db.ListPersons()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load persons")
		return
	}
	writeJSONSuccess(w, "Persons retrieved", persons)
}

func GetPerson(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	person, err := db.GetPersonByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Person not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to load person")
		return
	}
	writeJSONSuccess(w, "Person retrieved", person)
}

func CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var person models.Person
	req.apply(&person)

	created, err := db.CreatePerson(person)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to create person")
		return
	}
	writeJSONCreated(w, "Person created", created)
}

func UpdatePerson(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	person, err := db.GetPersonByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Person not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to load person")
		return
	}

	var req personRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	req.apply(&person)

	updated, err := db.UpdatePerson(person)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to update person")
		return
	}
	writeJSONSuccess(w, "Person updated", updated)
}

// DeletePerson removes a person and, transactionally, their cultivations and
// those cultivations' payments.
func DeletePerson(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := db.DeletePersonCascade(id); err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "Person not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete person")
		return
	}
	writeJSONSuccess(w, "Person and their cultivations deleted", nil)
}
