package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fascinar/eventos-api/internal/model"
	"github.com/fascinar/eventos-api/internal/repository"
)

// AdminEventSource resolves the events of the aggregation window.
// *repository.EventRepo satisfies it.
type AdminEventSource interface {
	EventByID(ctx context.Context, id uint64) (model.Event, error)
	EventsBetween(ctx context.Context, fromDate, toDate string) ([]model.Event, error)
}

// RosterSource materializes the per-staff breakdown of one event.
// *repository.AvailabilityRepo satisfies it.
type RosterSource interface {
	EventRoster(ctx context.Context, eventID uint64, date string) ([]model.StaffAvailabilityEntry, error)
}

// BulkScheduler inserts schedule rows in one batch.
// *repository.StaffSlotRepo satisfies it.
type BulkScheduler interface {
	BulkSchedule(ctx context.Context, eventID uint64, picks []repository.SchedulePick, createdBy uint64) (int, error)
}

// AdminAgg fans the per-(event, profile) reconciliation out across all
// profiles of one event or all events of a date window, reducing to
// counts, and drives bulk auto-scheduling.  Counts are recomputed from raw
// rows on every read; nothing here is cached.
type AdminAgg struct {
	errSlot
	events    AdminEventSource
	roster    RosterSource
	scheduler BulkScheduler
	log       *zap.Logger
	now       func() string // today's date, "2006-01-02"; swappable in tests
}

func NewAdminAgg(events AdminEventSource, roster RosterSource, scheduler BulkScheduler, log *zap.Logger) *AdminAgg {
	return &AdminAgg{events: events, roster: roster, scheduler: scheduler, log: log, now: todayUTC}
}

// Classify partitions an event's roster rows four ways: available and not
// scheduled, unavailable and not scheduled, pending (no usable record, not
// scheduled), and scheduled.  This is the bucketed twin of the tri-state
// resolution: every row lands in exactly one bucket.
func Classify(ev model.Event, entries []model.StaffAvailabilityEntry) model.AdminEventAggregate {
	agg := model.AdminEventAggregate{Event: ev}
	for _, e := range entries {
		switch model.ResolveTriState(e.Scheduled, e.Status) {
		case model.TriScheduled:
			agg.Scheduled++
		case model.TriAvailable:
			agg.Available++
		case model.TriUnavailable:
			agg.Unavailable++
		default:
			agg.Pending++
		}
	}
	return agg
}

// GetEventStats aggregates the four-way partition for every event whose
// date falls within [today, today+windowDays].
func (s *AdminAgg) GetEventStats(ctx context.Context, windowDays int) ([]model.AdminEventAggregate, error) {
	if windowDays <= 0 {
		windowDays = 30
	}
	from := s.now()
	to := addDays(from, windowDays)
	events, err := s.events.EventsBetween(ctx, from, to)
	if err != nil {
		return nil, s.record(storeErr("event stats", err))
	}
	out := make([]model.AdminEventAggregate, 0, len(events))
	for _, ev := range events {
		entries, err := s.roster.EventRoster(ctx, ev.ID, ev.DateOnly())
		if err != nil {
			return nil, s.record(storeErr("event stats", err))
		}
		out = append(out, Classify(ev, entries))
	}
	return out, s.record(nil)
}

// EventAvailabilityDetail is the single-event deep fetch: the event, the
// full per-staff breakdown and its four-way stats.
type EventAvailabilityDetail struct {
	Event   model.Event                    `json:"event"`
	Entries []model.StaffAvailabilityEntry `json:"entries"`
	Stats   model.AdminEventAggregate      `json:"stats"`
}

// GetEventAvailabilities fetches one event's full breakdown.
func (s *AdminAgg) GetEventAvailabilities(ctx context.Context, eventID uint64) (EventAvailabilityDetail, error) {
	ev, err := s.events.EventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return EventAvailabilityDetail{}, s.record(ErrNotFound)
		}
		return EventAvailabilityDetail{}, s.record(storeErr("event availabilities", err))
	}
	entries, err := s.roster.EventRoster(ctx, eventID, ev.DateOnly())
	if err != nil {
		return EventAvailabilityDetail{}, s.record(storeErr("event availabilities", err))
	}
	return EventAvailabilityDetail{
		Event:   ev,
		Entries: entries,
		Stats:   Classify(ev, entries),
	}, s.record(nil)
}

// AutoScheduleEvent selects up to maxStaff profiles that are available and
// not yet scheduled for the event's date and bulk-inserts schedule rows
// for all of them in one batch.  Zero eligible profiles is the
// ErrNoCandidates outcome, informational rather than a system error.  The
// slot role is the candidate's highest-experience default competency,
// falling back to assistant.
func (s *AdminAgg) AutoScheduleEvent(ctx context.Context, eventID uint64, maxStaff int, createdBy uint64) (int, error) {
	if maxStaff <= 0 {
		return 0, s.record(validationf("max_staff", "must be positive"))
	}
	ev, err := s.events.EventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, s.record(ErrNotFound)
		}
		return 0, s.record(storeErr("auto schedule", err))
	}
	entries, err := s.roster.EventRoster(ctx, eventID, ev.DateOnly())
	if err != nil {
		return 0, s.record(storeErr("auto schedule", err))
	}
	var picks []repository.SchedulePick
	for _, e := range entries {
		if len(picks) == maxStaff {
			break
		}
		if model.ResolveTriState(e.Scheduled, e.Status) != model.TriAvailable {
			continue
		}
		pick := repository.SchedulePick{
			ProfileID:  e.ProfileID,
			Role:       model.RoleAssistant,
			HourlyRate: decimal.Zero,
		}
		if e.DefaultRole != nil {
			pick.Role = *e.DefaultRole
		}
		if e.DefaultRate != nil {
			if rate, err := decimal.NewFromString(*e.DefaultRate); err == nil {
				pick.HourlyRate = rate
			}
		}
		picks = append(picks, pick)
	}
	if len(picks) == 0 {
		return 0, s.record(ErrNoCandidates)
	}
	n, err := s.scheduler.BulkSchedule(ctx, eventID, picks, createdBy)
	if err != nil {
		return 0, s.record(storeErr("auto schedule", err))
	}
	s.log.Info("auto-scheduled staff", zap.Uint64("event_id", eventID), zap.Int("count", n))
	return n, s.record(nil)
}

// addDays shifts a "2006-01-02" date forward by n days.
func addDays(date string, n int) string {
	t, err := parseDate(date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format("2006-01-02")
}
