package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"paytrack/internal/constants"
)

func TestAttendanceRollupQueryPlaceholders(t *testing.T) {
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		from     time.Time
		to       time.Time
		wantArgs int
		wantFrom string
		wantTo   string
	}{
		{name: "open window", wantArgs: 4},
		{name: "from only", from: from, wantArgs: 5, wantFrom: "a.attended_on >= $5"},
		{name: "to only", to: to, wantArgs: 5, wantTo: "a.attended_on <= $5"},
		{name: "both bounds", from: from, to: to, wantArgs: 6, wantFrom: "a.attended_on >= $5", wantTo: "a.attended_on <= $6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := attendanceRollupQuery(tt.from, tt.to)

			assert.Len(t, args, tt.wantArgs)
			assert.Equal(t, constants.ATTENDANCE_PRESENT, args[0])
			assert.Equal(t, constants.ATTENDANCE_LEAVE, args[3])
			if tt.wantFrom != "" {
				assert.Contains(t, query, tt.wantFrom)
				assert.Equal(t, tt.from, args[4])
			}
			if tt.wantTo != "" {
				assert.Contains(t, query, tt.wantTo)
				assert.Equal(t, tt.to, args[len(args)-1])
			}

			// Status values travel as parameters, never spliced into the SQL,
			// and window bounds stay on the join condition.
			assert.NotContains(t, query, "'")
			assert.NotContains(t, query, "WHERE a.attended_on")
		})
	}
}
