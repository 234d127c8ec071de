package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"paytrack/internal/models"
)

func TestValidatePhoneNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "bare 10 digits", input: "9876543210", want: "9876543210"},
		{name: "with +91 prefix", input: "+919876543210", want: "9876543210"},
		{name: "with 91 prefix", input: "919876543210", want: "9876543210"},
		{name: "with leading zero", input: "09876543210", want: "9876543210"},
		{name: "with spaces and dashes", input: "98765 432-10", want: "9876543210"},
		{name: "starts below 6", input: "5876543210", wantErr: true},
		{name: "too short", input: "987654321", wantErr: true},
		{name: "too long", input: "98765432101", wantErr: true},
		{name: "not a number", input: "call me maybe", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePhoneNumber(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePositiveAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "plain integer", input: "500", want: 500},
		{name: "decimal", input: "1250.50", want: 1250.50},
		{name: "with thousands separators", input: "1,25,000", want: 125000},
		{name: "with rupee sign", input: "₹800", want: 800},
		{name: "with surrounding spaces", input: "  42  ", want: 42},
		{name: "zero rejected", input: "0", wantErr: true},
		{name: "negative rejected", input: "-10", wantErr: true},
		{name: "garbage rejected", input: "ten", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePositiveAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNonNegativeAmountAllowsZero(t *testing.T) {
	got, err := ParseNonNegativeAmount("0")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, got)

	_, err = ParseNonNegativeAmount("-1")
	assert.Error(t, err)
}

func TestNormalizeOptionalText(t *testing.T) {
	assert.Equal(t, "", NormalizeOptionalText("none"))
	assert.Equal(t, "", NormalizeOptionalText("  NONE  "))
	assert.Equal(t, "", NormalizeOptionalText("None"))
	assert.Equal(t, "behind the well", NormalizeOptionalText("  behind the well "))
	assert.Equal(t, "nonexistent", NormalizeOptionalText("nonexistent"))
}

func TestParseIntakeDate(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    string
		required bool
		want     time.Time
		wantOK   bool
	}{
		{name: "today keyword", input: "today", required: true, want: today, wantOK: true},
		{name: "today any case", input: "ToDaY", required: false, want: today, wantOK: true},
		{name: "exact date", input: "01/02/2024", required: true,
			want: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), wantOK: true},
		{name: "garbage falls back to today when required", input: "next tuesday", required: true,
			want: today, wantOK: false},
		{name: "garbage falls back to zero when optional", input: "next tuesday", required: false,
			want: time.Time{}, wantOK: false},
		{name: "two-part date rejected", input: "01/02", required: false,
			want: time.Time{}, wantOK: false},
		{name: "dashes not accepted", input: "01-02-2024", required: true,
			want: today, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseIntakeDate(tt.input, tt.required, now)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOptionalIntakeDate(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

	assert.False(t, ParseOptionalIntakeDate("none", now).Valid)
	assert.False(t, ParseOptionalIntakeDate("gibberish", now).Valid)

	parsed := ParseOptionalIntakeDate("20/06/2024", now)
	assert.True(t, parsed.Valid)
	assert.Equal(t, time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC), parsed.Time)

	today := ParseOptionalIntakeDate("today", now)
	assert.True(t, today.Valid)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), today.Time)
}

func TestMatchWorkerByName(t *testing.T) {
	workers := []models.Worker{
		{ID: 1, Name: "Ram Singh"},
		{ID: 2, Name: "Ramesh Kumar"},
		{ID: 3, Name: "Shyam Lal"},
	}

	tests := []struct {
		name     string
		fragment string
		wantID   int64
		wantOK   bool
	}{
		{name: "unique substring", fragment: "shyam", wantID: 3, wantOK: true},
		{name: "exact name wins over substring hits", fragment: "ram singh", wantID: 1, wantOK: true},
		{name: "ambiguous substring", fragment: "ram", wantOK: false},
		{name: "no match", fragment: "mohan", wantOK: false},
		{name: "empty", fragment: "   ", wantOK: false},
		{name: "case-insensitive", fragment: "KUMAR", wantID: 2, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchWorkerByName(workers, tt.fragment)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, got.ID)
			}
		})
	}
}
