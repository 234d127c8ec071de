package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"paytrack/internal/constants"
	"paytrack/internal/models"
)

var indianPhoneRegex = regexp.MustCompile(`^(?:\+91|91|0)?([6-9]\d{9})$`)

// ValidatePhoneNumber checks and normalizes an Indian mobile number.
// Returns the bare 10-digit form or an error.
func ValidatePhoneNumber(phone string) (string, error) {
	digitsOnly := regexp.MustCompile(`[^\d+]`).ReplaceAllString(strings.TrimSpace(phone), "")
	digitsOnly = strings.TrimPrefix(digitsOnly, "+")
	m := indianPhoneRegex.FindStringSubmatch(digitsOnly)
	if m == nil {
		return "", fmt.Errorf("phone number must be a 10-digit mobile number (optionally prefixed with +91)")
	}
	return m[1], nil
}

// ParsePositiveAmount parses a numeric intake answer (salary, area, rate,
// amount). Commas are tolerated as thousands separators. Values that do not
// parse or are not strictly positive are rejected so the calling step can
// re-prompt without advancing.
func ParsePositiveAmount(text string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	cleaned = strings.TrimPrefix(cleaned, "₹")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("'%s' is not a number", text)
	}
	if value <= 0 {
		return 0, fmt.Errorf("amount must be greater than zero")
	}
	return value, nil
}

// ParseNonNegativeAmount is ParsePositiveAmount but allows zero, for
// optional received-amount steps where "0" is a meaningful answer.
func ParseNonNegativeAmount(text string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	cleaned = strings.TrimPrefix(cleaned, "₹")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("'%s' is not a number", text)
	}
	if value < 0 {
		return 0, fmt.Errorf("amount cannot be negative")
	}
	return value, nil
}

// NormalizeOptionalText handles an optional free-text step: the literal
// answer "none" (any case) means the user wants the field left empty.
func NormalizeOptionalText(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.EqualFold(trimmed, constants.INPUT_NONE) {
		return ""
	}
	return trimmed
}

// ParseIntakeDate interprets a date answer from chat. "today" (any case)
// yields the current date; DD/MM/YYYY parses exactly; anything else falls
// back silently: today's date when the field is required, the zero time when
// it is optional. The bool result reports whether the input was actually
// understood (callers never treat false as an error; the fallback policy is
// deliberate chat UX).
func ParseIntakeDate(text string, required bool, now time.Time) (time.Time, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	trimmed := strings.TrimSpace(text)
	if strings.EqualFold(trimmed, constants.INPUT_TODAY) {
		return today, true
	}

	// Only a strict three-part DD/MM/YYYY is accepted; everything else hits
	// the fallback.
	if parts := strings.Split(trimmed, "/"); len(parts) == 3 {
		parsed, err := time.ParseInLocation(constants.INTAKE_DATE_LAYOUT, trimmed, now.Location())
		if err == nil {
			return parsed, true
		}
	}

	if required {
		return today, false
	}
	return time.Time{}, false
}

// ParseOptionalIntakeDate is ParseIntakeDate for optional fields, returning
// a nullable time ("none" and unparsable input both leave it unset).
func ParseOptionalIntakeDate(text string, now time.Time) models.NullTime {
	trimmed := strings.TrimSpace(text)
	if strings.EqualFold(trimmed, constants.INPUT_NONE) {
		return models.NullTime{}
	}
	parsed, ok := ParseIntakeDate(trimmed, false, now)
	if !ok {
		return models.NullTime{}
	}
	return models.NewNullTime(parsed)
}

// MatchWorkerByName resolves a free-text worker name against a candidate
// list: case-insensitive substring match. Exactly one hit resolves; zero or
// several hits return false so the intake step can re-prompt. An exact
// (case-insensitive) full-name match wins outright even when it is also a
// substring of other names.
func MatchWorkerByName(workers []models.Worker, fragment string) (models.Worker, bool) {
	fragment = strings.ToLower(strings.TrimSpace(fragment))
	if fragment == "" {
		return models.Worker{}, false
	}

	var matches []models.Worker
	for _, w := range workers {
		name := strings.ToLower(w.Name)
		if name == fragment {
			return w, true
		}
		if strings.Contains(name, fragment) {
			matches = append(matches, w)
		}
	}
	if len(matches) == 1 {
		return matches[0], true
	}
	return models.Worker{}, false
}
