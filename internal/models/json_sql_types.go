package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// NullString wraps sql.NullString so it marshals to a plain JSON string or null.
type NullString struct {
	sql.NullString
}

// MarshalJSON implements json.Marshaler for NullString.
func (ns NullString) MarshalJSON() ([]byte, error) {
	if !ns.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ns.String)
}

// UnmarshalJSON implements json.Unmarshaler for NullString.
func (ns *NullString) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s != nil {
		ns.String = *s
		ns.Valid = true
	} else {
		ns.Valid = false
	}
	return nil
}

// NewNullString builds a NullString that is null when s is empty.
func NewNullString(s string) NullString {
	return NullString{sql.NullString{String: s, Valid: s != ""}}
}

// NullTime wraps sql.NullTime so it marshals to an RFC 3339 timestamp or null.
type NullTime struct {
	sql.NullTime
}

// MarshalJSON implements json.Marshaler for NullTime.
func (nt NullTime) MarshalJSON() ([]byte, error) {
	if !nt.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(nt.Time)
}

// UnmarshalJSON implements json.Unmarshaler for NullTime.
func (nt *NullTime) UnmarshalJSON(b []byte) error {
	var t *time.Time
	if err := json.Unmarshal(b, &t); err != nil {
		return err
	}
	if t != nil {
		nt.Time = *t
		nt.Valid = true
	} else {
		nt.Valid = false
	}
	return nil
}

// NewNullTime builds a NullTime that is null when t is the zero time.
func NewNullTime(t time.Time) NullTime {
	return NullTime{sql.NullTime{Time: t, Valid: !t.IsZero()}}
}

// NullInt64 wraps sql.NullInt64 so it marshals to a plain JSON number or null.
type NullInt64 struct {
	sql.NullInt64
}

// MarshalJSON implements json.Marshaler for NullInt64.
func (ni NullInt64) MarshalJSON() ([]byte, error) {
	if !ni.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ni.Int64)
}

// UnmarshalJSON implements json.Unmarshaler for NullInt64.
func (ni *NullInt64) UnmarshalJSON(b []byte) error {
	var v *int64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v != nil {
		ni.Int64 = *v
		ni.Valid = true
	} else {
		ni.Valid = false
	}
	return nil
}

// NewNullInt64 builds a NullInt64 that is null when id is zero.
func NewNullInt64(id int64) NullInt64 {
	return NullInt64{sql.NullInt64{Int64: id, Valid: id != 0}}
}
