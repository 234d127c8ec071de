package constants

import "strings"

// User roles
const (
	ROLE_ADMIN = "admin"
	ROLE_STAFF = "staff"
)

// Intake session states. STATE_IDLE means no intake flow is active; every
// other state names the exact field the bot is waiting for.
const (
	STATE_IDLE = "idle"

	// Worker intake flow
	STATE_WORKER_NAME         = "worker_name"
	STATE_WORKER_PHONE        = "worker_phone"
	STATE_WORKER_SALARY       = "worker_salary"
	STATE_WORKER_ADDRESS      = "worker_address"
	STATE_WORKER_JOINING_DATE = "worker_joining_date"
	STATE_WORKER_NOTES        = "worker_notes"

	// Cultivation intake flow
	STATE_CROP_NAME            = "crop_name"
	STATE_CROP_AREA            = "crop_area"
	STATE_CROP_RATE            = "crop_rate"
	STATE_CROP_PAYMENT_MODE    = "crop_payment_mode"
	STATE_CROP_BUYER_NAME      = "crop_buyer_name"
	STATE_CROP_AMOUNT_RECEIVED = "crop_amount_received"
	STATE_CROP_HARVEST_DATE    = "crop_harvest_date"
	STATE_CROP_NOTES           = "crop_notes"

	// Property intake flow
	STATE_PROPERTY_TYPE  = "property_type"
	STATE_PROPERTY_VALUE = "property_value"

	// Attendance intake flow
	STATE_ATTENDANCE_WORKER = "attendance_worker"
	STATE_ATTENDANCE_DATE   = "attendance_date"
	STATE_ATTENDANCE_STATUS = "attendance_status"
	STATE_ATTENDANCE_NOTES  = "attendance_notes"

	// Worker payment intake flow
	STATE_PAYMENT_WORKER = "payment_worker"
	STATE_PAYMENT_AMOUNT = "payment_amount"
	STATE_PAYMENT_MODE   = "payment_mode"
)

// Attendance statuses, canonical (stored) form.
const (
	ATTENDANCE_PRESENT  = "present"
	ATTENDANCE_ABSENT   = "absent"
	ATTENDANCE_HALF_DAY = "half-day"
	ATTENDANCE_LEAVE    = "leave"
)

// Payment modes
const (
	PAYMENT_MODE_CASH = "cash"
	PAYMENT_MODE_UPI  = "upi"
)

// Payment categories for the unified payments table.
const (
	PAYMENT_CATEGORY_WORKER      = "worker"
	PAYMENT_CATEGORY_CULTIVATION = "cultivation"
)

// Property transaction types
const (
	PROPERTY_TYPE_BUY  = "buy"
	PROPERTY_TYPE_SELL = "sell"
)

// Area units for property records.
const (
	AREA_UNIT_BIGHA = "bigha"
	AREA_UNIT_GAJ   = "gaj"
)

// Meel transaction types and modes
const (
	MEEL_TYPE_BUY          = "buy"
	MEEL_TYPE_SELL         = "sell"
	MEEL_MODE_INDIVIDUAL   = "individual"
	MEEL_MODE_WITH_PARTNER = "with-partner"
)

// Input keywords recognized on intake steps regardless of case.
const (
	INPUT_NONE  = "none"
	INPUT_TODAY = "today"
)

// Date layout accepted from chat input (DD/MM/YYYY).
const INTAKE_DATE_LAYOUT = "02/01/2006"

// NormalizeAttendanceStatus maps any accepted spelling of an attendance
// status to its canonical stored form. The original system carried two enum
// spellings (bot vs REST); this is the single normalization point for both.
// Returns "" when the input is not a recognized status.
func NormalizeAttendanceStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "present", "p":
		return ATTENDANCE_PRESENT
	case "absent", "a":
		return ATTENDANCE_ABSENT
	case "halfday", "half-day", "half day", "h":
		return ATTENDANCE_HALF_DAY
	case "leave", "l":
		return ATTENDANCE_LEAVE
	}
	return ""
}

// NormalizePaymentMode maps user input ("Cash", "UPI", ...) to the stored
// payment mode, or "" when unrecognized.
func NormalizePaymentMode(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return PAYMENT_MODE_CASH
	case "upi":
		return PAYMENT_MODE_UPI
	}
	return ""
}

// NormalizePropertyType maps user input to a property transaction type, or
// "" when unrecognized.
func NormalizePropertyType(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "purchase":
		return PROPERTY_TYPE_BUY
	case "sell", "sale":
		return PROPERTY_TYPE_SELL
	}
	return ""
}
