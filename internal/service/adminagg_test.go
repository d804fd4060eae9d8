package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fascinar/eventos-api/internal/model"
)

func statusPtr(s model.AvailabilityStatus) *model.AvailabilityStatus { return &s }

func rolePtr(r model.StaffRole) *model.StaffRole { return &r }

func newAdminFixture(events ...model.Event) (*AdminAgg, *slotStoreMock, *recordStoreMock) {
	evs := newEventStoreMock(events...)
	slots := newSlotStoreMock()
	records := newRecordStoreMock()
	svc := NewAdminAgg(evs, records, slots, zap.NewNop())
	svc.now = func() string { return "2026-09-01" }
	return svc, slots, records
}

func TestClassify_FourWayPartition(t *testing.T) {
	entries := []model.StaffAvailabilityEntry{
		{ProfileID: 1, Status: statusPtr(model.StatusAvailable)},
		{ProfileID: 2, Status: statusPtr(model.StatusAvailable), Scheduled: true}, // lock wins
		{ProfileID: 3, Status: statusPtr(model.StatusUnavailable)},
		{ProfileID: 4, Status: statusPtr(model.StatusMaybe)}, // maybe counts as pending
		{ProfileID: 5},                                       // no record at all
		{ProfileID: 6, Scheduled: true},
	}
	agg := Classify(model.Event{ID: 1}, entries)
	assert.Equal(t, 1, agg.Available)
	assert.Equal(t, 1, agg.Unavailable)
	assert.Equal(t, 2, agg.Pending)
	assert.Equal(t, 2, agg.Scheduled)
}

func TestGetEventStats_Window(t *testing.T) {
	svc, _, records := newAdminFixture(
		testEvent(1, "2026-09-05"),
		testEvent(2, "2026-09-20"),
		testEvent(3, "2026-12-25"), // outside the 30-day window
	)
	records.roster[1] = []model.StaffAvailabilityEntry{
		{ProfileID: 1, Status: statusPtr(model.StatusAvailable)},
		{ProfileID: 2},
	}
	records.roster[2] = []model.StaffAvailabilityEntry{
		{ProfileID: 1, Scheduled: true},
	}

	stats, err := svc.GetEventStats(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, uint64(1), stats[0].Event.ID)
	assert.Equal(t, 1, stats[0].Available)
	assert.Equal(t, 1, stats[0].Pending)
	assert.Equal(t, 1, stats[1].Scheduled)
}

func TestGetEventAvailabilities(t *testing.T) {
	svc, _, records := newAdminFixture(testEvent(1, "2026-09-05"))
	records.roster[1] = []model.StaffAvailabilityEntry{
		{ProfileID: 1, Name: "Ana", Status: statusPtr(model.StatusAvailable)},
		{ProfileID: 2, Name: "Bia"},
	}

	detail, err := svc.GetEventAvailabilities(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, detail.Entries, 2)
	assert.Equal(t, 1, detail.Stats.Available)
	assert.Equal(t, 1, detail.Stats.Pending)

	_, err = svc.GetEventAvailabilities(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAutoScheduleEvent(t *testing.T) {
	svc, slots, records := newAdminFixture(testEvent(1, "2026-09-05"))
	rate := "80.00"
	records.roster[1] = []model.StaffAvailabilityEntry{
		{ProfileID: 1, Status: statusPtr(model.StatusAvailable), DefaultRole: rolePtr(model.RoleCoordinator), DefaultRate: &rate},
		{ProfileID: 2, Status: statusPtr(model.StatusAvailable)}, // no competency: falls back to assistente
		{ProfileID: 3, Status: statusPtr(model.StatusUnavailable)},
		{ProfileID: 4, Status: statusPtr(model.StatusAvailable), Scheduled: true}, // already on the roster
	}

	n, err := svc.AutoScheduleEvent(context.Background(), 1, 10, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, slots.bulkPicks, 2)
	assert.Equal(t, model.RoleCoordinator, slots.bulkPicks[0].Role)
	assert.True(t, slots.bulkPicks[0].HourlyRate.Equal(dec("80")))
	assert.Equal(t, model.RoleAssistant, slots.bulkPicks[1].Role)
	assert.True(t, slots.bulkPicks[1].HourlyRate.IsZero())
}

func TestAutoScheduleEvent_CapsAtMaxStaff(t *testing.T) {
	svc, slots, records := newAdminFixture(testEvent(1, "2026-09-05"))
	records.roster[1] = []model.StaffAvailabilityEntry{
		{ProfileID: 1, Status: statusPtr(model.StatusAvailable)},
		{ProfileID: 2, Status: statusPtr(model.StatusAvailable)},
		{ProfileID: 3, Status: statusPtr(model.StatusAvailable)},
	}

	n, err := svc.AutoScheduleEvent(context.Background(), 1, 2, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, slots.bulkPicks, 2)
}

func TestAutoScheduleEvent_NoCandidates(t *testing.T) {
	svc, slots, records := newAdminFixture(testEvent(1, "2026-09-05"))
	records.roster[1] = []model.StaffAvailabilityEntry{
		{ProfileID: 1, Status: statusPtr(model.StatusUnavailable)},
		{ProfileID: 2}, // pending is not eligible
	}

	_, err := svc.AutoScheduleEvent(context.Background(), 1, 10, 7)
	assert.ErrorIs(t, err, ErrNoCandidates)
	assert.Empty(t, slots.bulkPicks)

	_, err = svc.AutoScheduleEvent(context.Background(), 1, 0, 7)
	assert.True(t, IsValidation(err))
}
