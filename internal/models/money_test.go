package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"paytrack/internal/constants"
)

func TestComputePending(t *testing.T) {
	tests := []struct {
		name     string
		total    float64
		received float64
		want     float64
	}{
		{name: "partial payment", total: 2000, received: 1500, want: 500},
		{name: "nothing received", total: 2000, received: 0, want: 2000},
		{name: "fully paid", total: 2000, received: 2000, want: 0},
		{name: "overpaid clamps to zero", total: 2000, received: 2500, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputePending(tt.total, tt.received))
		})
	}
}

func TestCultivationRecalculate(t *testing.T) {
	c := Cultivation{AreaBigha: 2, RatePerBigha: 1000, AmountReceived: 1500}
	c.Recalculate()

	assert.Equal(t, 2000.0, c.TotalCost)
	assert.Equal(t, 500.0, c.AmountPending)

	// Changing the inputs and recalculating must overwrite stale figures.
	c.AmountReceived = 3000
	c.Recalculate()
	assert.Equal(t, 0.0, c.AmountPending)
}

func TestPropertyRecalculate(t *testing.T) {
	p := Property{TotalCost: 500000, AmountPaid: 200000}
	p.Recalculate()
	assert.Equal(t, 300000.0, p.AmountPending)

	p.AmountPaid = 600000
	p.Recalculate()
	assert.Equal(t, 0.0, p.AmountPending)
}

func TestAttendanceWorkingDayCredit(t *testing.T) {
	assert.Equal(t, 1.0, Attendance{Status: constants.ATTENDANCE_PRESENT}.WorkingDayCredit())
	assert.Equal(t, 0.5, Attendance{Status: constants.ATTENDANCE_HALF_DAY}.WorkingDayCredit())
	assert.Equal(t, 0.0, Attendance{Status: constants.ATTENDANCE_ABSENT}.WorkingDayCredit())
	assert.Equal(t, 0.0, Attendance{Status: constants.ATTENDANCE_LEAVE}.WorkingDayCredit())
	assert.Equal(t, 0.0, Attendance{Status: "garbage"}.WorkingDayCredit())
}

func TestMeelPartnerListRoundTrip(t *testing.T) {
	partners := MeelPartnerList{
		{Name: "Mohan", Mobile: "9876543210", Contribution: 40000},
		{Name: "Sohan", Contribution: 10000},
	}

	value, err := partners.Value()
	assert.NoError(t, err)

	var scanned MeelPartnerList
	assert.NoError(t, scanned.Scan(value))
	assert.Equal(t, partners, scanned)
}

func TestMeelPartnerListScanNil(t *testing.T) {
	var l MeelPartnerList
	assert.NoError(t, l.Scan(nil))
	assert.Nil(t, l)

	assert.Error(t, l.Scan(42))
}

func TestMeelPartnerListValueEmpty(t *testing.T) {
	var l MeelPartnerList
	value, err := l.Value()
	assert.NoError(t, err)
	assert.Equal(t, "[]", value)
}
