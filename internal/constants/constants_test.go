package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAttendanceStatus(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"present", ATTENDANCE_PRESENT},
		{"Present", ATTENDANCE_PRESENT},
		{"  P ", ATTENDANCE_PRESENT},
		{"absent", ATTENDANCE_ABSENT},
		{"A", ATTENDANCE_ABSENT},
		{"HalfDay", ATTENDANCE_HALF_DAY},
		{"half-day", ATTENDANCE_HALF_DAY},
		{"half day", ATTENDANCE_HALF_DAY},
		{"h", ATTENDANCE_HALF_DAY},
		{"Leave", ATTENDANCE_LEAVE},
		{"l", ATTENDANCE_LEAVE},
		{"vacation", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAttendanceStatus(tt.input))
		})
	}
}

func TestNormalizePaymentMode(t *testing.T) {
	assert.Equal(t, PAYMENT_MODE_CASH, NormalizePaymentMode("Cash"))
	assert.Equal(t, PAYMENT_MODE_UPI, NormalizePaymentMode(" UPI "))
	assert.Equal(t, "", NormalizePaymentMode("cheque"))
}

func TestNormalizePropertyType(t *testing.T) {
	assert.Equal(t, PROPERTY_TYPE_BUY, NormalizePropertyType("Buy"))
	assert.Equal(t, PROPERTY_TYPE_BUY, NormalizePropertyType("purchase"))
	assert.Equal(t, PROPERTY_TYPE_SELL, NormalizePropertyType("SELL"))
	assert.Equal(t, PROPERTY_TYPE_SELL, NormalizePropertyType("sale"))
	assert.Equal(t, "", NormalizePropertyType("rent"))
}
