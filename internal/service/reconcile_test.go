package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fascinar/eventos-api/internal/model"
)

func testEvent(id uint64, date string) model.Event {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return model.Event{ID: id, OwnerID: 1, Title: "Casamento", EventDate: d, Status: "PLANNED"}
}

func newReconcileFixture(events ...model.Event) (*Reconcile, *slotStoreMock, *recordStoreMock) {
	evs := newEventStoreMock(events...)
	slots := newSlotStoreMock()
	records := newRecordStoreMock()
	svc := NewReconcile(evs, slots, records, zap.NewNop())
	svc.now = func() string { return "2026-09-01" }
	return svc, slots, records
}

func TestEventView_ScheduledWinsOverRecord(t *testing.T) {
	svc, slots, records := newReconcileFixture(testEvent(1, "2026-09-12"))
	ctx := context.Background()

	// Even an explicit "unavailable" record loses to the scheduling lock.
	require.NoError(t, records.UpsertAvailability(ctx, model.StaffAvailabilityRecord{
		ProfileID: 5, Date: "2026-09-12", Status: model.StatusUnavailable,
	}))
	slots.scheduled[schedKey(1, 5)] = true

	v, err := svc.EventView(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, model.TriScheduled, v.State)
	assert.True(t, v.Locked)
}

func TestEventView_RecordStates(t *testing.T) {
	svc, _, records := newReconcileFixture(testEvent(1, "2026-09-12"))
	ctx := context.Background()

	// No record at all resolves to pending.
	v, err := svc.EventView(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, model.TriPending, v.State)
	assert.False(t, v.Locked)

	// A "maybe" record also reads as pending.
	require.NoError(t, records.UpsertAvailability(ctx, model.StaffAvailabilityRecord{
		ProfileID: 5, Date: "2026-09-12", Status: model.StatusMaybe,
	}))
	v, err = svc.EventView(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, model.TriPending, v.State)

	require.NoError(t, records.UpsertAvailability(ctx, model.StaffAvailabilityRecord{
		ProfileID: 5, Date: "2026-09-12", Status: model.StatusAvailable,
		StartTime: strptr("08:00"), EndTime: strptr("12:00"), Notes: "manhã",
	}))
	v, err = svc.EventView(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, model.TriAvailable, v.State)
	assert.Equal(t, "08:00-12:00", v.TimeRange)
	assert.Equal(t, "manhã", v.Notes)
}

func TestEventView_UnknownEvent(t *testing.T) {
	svc, _, _ := newReconcileFixture()
	_, err := svc.EventView(context.Background(), 404, 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpcomingEvents_HasMoreBoundary(t *testing.T) {
	ctx := context.Background()

	// Exactly limit events: no extra page.
	svc, _, _ := newReconcileFixture(
		testEvent(1, "2026-09-10"),
		testEvent(2, "2026-09-11"),
	)
	views, hasMore, err := svc.UpcomingEventsWithAvailability(ctx, 5, 2, 0)
	require.NoError(t, err)
	assert.Len(t, views, 2)
	assert.False(t, hasMore)

	// One past the limit: page is truncated and has_more flips on.
	svc, _, _ = newReconcileFixture(
		testEvent(1, "2026-09-10"),
		testEvent(2, "2026-09-11"),
		testEvent(3, "2026-09-12"),
	)
	views, hasMore, err = svc.UpcomingEventsWithAvailability(ctx, 5, 2, 0)
	require.NoError(t, err)
	assert.Len(t, views, 2)
	assert.True(t, hasMore)

	views, hasMore, err = svc.UpcomingEventsWithAvailability(ctx, 5, 2, 2)
	require.NoError(t, err)
	assert.Len(t, views, 1)
	assert.False(t, hasMore)
}

func TestUpcomingEvents_ExcludesPastDates(t *testing.T) {
	svc, _, _ := newReconcileFixture(
		testEvent(1, "2026-08-31"), // yesterday relative to the fixed clock
		testEvent(2, "2026-09-01"), // today stays in
		testEvent(3, "2026-09-02"),
	)
	views, _, err := svc.UpcomingEventsWithAvailability(context.Background(), 5, 10, 0)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, uint64(2), views[0].Event.ID)
}

func TestSetEventAvailability_WriteGuard(t *testing.T) {
	svc, slots, records := newReconcileFixture(testEvent(1, "2026-09-12"))
	ctx := context.Background()

	// Seed a record, then schedule the profile onto the event.
	require.NoError(t, svc.SetEventAvailability(ctx, 5, 1, true, strptr("08:00"), strptr("12:00"), "antes"))
	slots.scheduled[schedKey(1, 5)] = true

	err := svc.SetEventAvailability(ctx, 5, 1, false, nil, nil, "depois")
	assert.ErrorIs(t, err, ErrAlreadyScheduled)

	// The guarded write must leave the stored record untouched.
	rec := records.records[recKey(5, "2026-09-12")]
	assert.Equal(t, model.StatusAvailable, rec.Status)
	assert.Equal(t, "antes", rec.Notes)
	assert.Equal(t, 1, records.upserts)
}

func TestSetEventAvailability_WritesEventDate(t *testing.T) {
	svc, _, records := newReconcileFixture(testEvent(1, "2026-09-12"))
	ctx := context.Background()

	require.NoError(t, svc.SetEventAvailability(ctx, 5, 1, false, nil, nil, "viagem"))
	rec, ok := records.records[recKey(5, "2026-09-12")]
	require.True(t, ok, "record should be keyed on the event's date")
	assert.Equal(t, model.StatusUnavailable, rec.Status)

	err := svc.SetEventAvailability(ctx, 5, 404, true, nil, nil, "")
	assert.ErrorIs(t, err, ErrNotFound)
}
