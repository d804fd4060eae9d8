package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sp(s AvailabilityStatus) *AvailabilityStatus { return &s }

func TestResolveTriState(t *testing.T) {
	tests := []struct {
		name      string
		scheduled bool
		status    *AvailabilityStatus
		want      TriState
	}{
		{"scheduled beats available", true, sp(StatusAvailable), TriScheduled},
		{"scheduled beats unavailable", true, sp(StatusUnavailable), TriScheduled},
		{"scheduled with no record", true, nil, TriScheduled},
		{"available", false, sp(StatusAvailable), TriAvailable},
		{"unavailable", false, sp(StatusUnavailable), TriUnavailable},
		{"maybe is pending", false, sp(StatusMaybe), TriPending},
		{"no record is pending", false, nil, TriPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveTriState(tt.scheduled, tt.status))
		})
	}
}

func TestTimeRangeDisplay(t *testing.T) {
	start, end := "08:00", "12:00"

	assert.Equal(t, "08:00-12:00", TimeRangeDisplay(sp(StatusAvailable), &start, &end))
	assert.Equal(t, "08:00-12:00", TimeRangeDisplay(sp(StatusUnavailable), &start, &end))
	assert.Equal(t, "Dia inteiro", TimeRangeDisplay(sp(StatusAvailable), nil, nil))
	assert.Equal(t, "", TimeRangeDisplay(sp(StatusAvailable), &start, nil))
	assert.Equal(t, "", TimeRangeDisplay(sp(StatusUnavailable), nil, nil))
	assert.Equal(t, "", TimeRangeDisplay(sp(StatusMaybe), nil, nil))
	assert.Equal(t, "", TimeRangeDisplay(nil, nil, nil))

	empty := ""
	assert.Equal(t, "Dia inteiro", TimeRangeDisplay(sp(StatusAvailable), &empty, &empty))
}

func TestValidAvailabilityStatus(t *testing.T) {
	assert.True(t, ValidAvailabilityStatus("available"))
	assert.True(t, ValidAvailabilityStatus("unavailable"))
	assert.True(t, ValidAvailabilityStatus("maybe"))
	assert.False(t, ValidAvailabilityStatus("busy"))
	assert.False(t, ValidAvailabilityStatus(""))
}
