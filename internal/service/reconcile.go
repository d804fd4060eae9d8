package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fascinar/eventos-api/internal/model"
	"github.com/fascinar/eventos-api/internal/repository"
)

// EventSource resolves events for the reconciliation sweep.
// *repository.EventRepo satisfies it.
type EventSource interface {
	EventByID(ctx context.Context, id uint64) (model.Event, error)
	UpcomingEvents(ctx context.Context, fromDate string, limit, offset int) ([]model.Event, error)
}

// ScheduleSource exposes the scheduling-lock fact.
// *repository.StaffSlotRepo satisfies it.
type ScheduleSource interface {
	IsScheduled(ctx context.Context, eventID, profileID uint64) (bool, error)
}

// RecordSource reads and writes per-date availability records.
// *repository.AvailabilityRepo satisfies it.
type RecordSource interface {
	AvailabilityOn(ctx context.Context, profileID uint64, date string) (*model.StaffAvailabilityRecord, error)
	UpsertAvailability(ctx context.Context, rec model.StaffAvailabilityRecord) error
}

// Reconcile merges an event's date against a staff member's per-date
// availability record and the "already scheduled" fact, producing the
// derived tri-state view, and enforces the write-guard that keeps a
// scheduled staff member from overriding their lock.
type Reconcile struct {
	errSlot
	events  EventSource
	slots   ScheduleSource
	records RecordSource
	log     *zap.Logger
	now     func() string // today's date, "2006-01-02"; swappable in tests
}

func NewReconcile(events EventSource, slots ScheduleSource, records RecordSource, log *zap.Logger) *Reconcile {
	return &Reconcile{events: events, slots: slots, records: records, log: log, now: todayUTC}
}

func todayUTC() string {
	return nowUTC().Format("2006-01-02")
}

// view computes the derived state for one already-resolved event.
func (s *Reconcile) view(ctx context.Context, ev model.Event, profileID uint64) (model.EventAvailabilityView, error) {
	date := ev.DateOnly()
	scheduled, err := s.slots.IsScheduled(ctx, ev.ID, profileID)
	if err != nil {
		return model.EventAvailabilityView{}, storeErr("event view", err)
	}
	rec, err := s.records.AvailabilityOn(ctx, profileID, date)
	if err != nil {
		return model.EventAvailabilityView{}, storeErr("event view", err)
	}
	var (
		status *model.AvailabilityStatus
		start  *string
		end    *string
		notes  string
	)
	if rec != nil {
		status = &rec.Status
		start, end = rec.StartTime, rec.EndTime
		notes = rec.Notes
	}
	return model.EventAvailabilityView{
		Event:     ev,
		State:     model.ResolveTriState(scheduled, status),
		TimeRange: model.TimeRangeDisplay(status, start, end),
		Notes:     notes,
		Locked:    scheduled,
	}, nil
}

// EventView computes the derived tri-state view for one (event, profile)
// pair: scheduled wins over everything, then the record's
// available/unavailable, else pending.
func (s *Reconcile) EventView(ctx context.Context, eventID, profileID uint64) (model.EventAvailabilityView, error) {
	ev, err := s.events.EventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.EventAvailabilityView{}, s.record(ErrNotFound)
		}
		return model.EventAvailabilityView{}, s.record(storeErr("event view", err))
	}
	v, err := s.view(ctx, ev, profileID)
	if err != nil {
		return model.EventAvailabilityView{}, s.record(err)
	}
	return v, s.record(nil)
}

// UpcomingEventsWithAvailability returns the views for events strictly on
// or after today (date-only), ascending by date, windowed by
// [offset, offset+limit), plus a hasMore flag computed by probing one row
// beyond the window.  Pages already fetched stay stable under concurrent
// inserts; no stronger consistency is promised.
func (s *Reconcile) UpcomingEventsWithAvailability(ctx context.Context, profileID uint64, limit, offset int) ([]model.EventAvailabilityView, bool, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	events, err := s.events.UpcomingEvents(ctx, s.now(), limit+1, offset)
	if err != nil {
		return nil, false, s.record(storeErr("upcoming events", err))
	}
	hasMore := len(events) > limit
	if hasMore {
		events = events[:limit]
	}
	views := make([]model.EventAvailabilityView, 0, len(events))
	for _, ev := range events {
		v, err := s.view(ctx, ev, profileID)
		if err != nil {
			return nil, false, s.record(err)
		}
		views = append(views, v)
	}
	return views, hasMore, s.record(nil)
}

// SetEventAvailability upserts the caller's availability record for the
// event's date.  The scheduling lock is re-checked at write time, not
// trusted from an earlier read: a profile already scheduled onto the event
// gets ErrAlreadyScheduled and the record is left untouched.  A slot
// created between this check and the upsert can still race it; that window
// is an accepted property of the design, not something this layer locks
// around.
func (s *Reconcile) SetEventAvailability(ctx context.Context, profileID, eventID uint64, isAvailable bool, from, until *string, notes string) error {
	if profileID == 0 {
		return s.record(validationf("profile", "profile id is required"))
	}
	ev, err := s.events.EventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.record(ErrNotFound)
		}
		return s.record(storeErr("set event availability", err))
	}
	scheduled, err := s.slots.IsScheduled(ctx, eventID, profileID)
	if err != nil {
		return s.record(storeErr("set event availability", err))
	}
	if scheduled {
		s.log.Info("availability write rejected by scheduling lock",
			zap.Uint64("event_id", eventID), zap.Uint64("profile_id", profileID))
		return s.record(ErrAlreadyScheduled)
	}
	date := ev.DateOnly()
	if err := validateDayInput(date, from, until); err != nil {
		return s.record(err)
	}
	status := model.StatusUnavailable
	if isAvailable {
		status = model.StatusAvailable
	}
	rec := model.StaffAvailabilityRecord{
		ProfileID: profileID,
		Date:      date,
		Status:    status,
		StartTime: from,
		EndTime:   until,
		Notes:     notes,
	}
	if err := s.records.UpsertAvailability(ctx, rec); err != nil {
		return s.record(storeErr("set event availability", err))
	}
	return s.record(nil)
}
