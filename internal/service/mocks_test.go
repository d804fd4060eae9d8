package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fascinar/eventos-api/internal/model"
	"github.com/fascinar/eventos-api/internal/repository"
)

// slotStoreMock is an in-memory StaffingStore / ScheduleSource /
// BulkScheduler double.
type slotStoreMock struct {
	slots      map[uint64]model.EventStaffSlot
	nextID     uint64
	saves      int
	deletes    []uint64
	candidates []model.Candidate
	cost       decimal.Decimal
	scheduled  map[string]bool // "eventID/profileID"
	bulkPicks  []repository.SchedulePick
	err        error
}

func newSlotStoreMock() *slotStoreMock {
	return &slotStoreMock{
		slots:     make(map[uint64]model.EventStaffSlot),
		scheduled: make(map[string]bool),
	}
}

func schedKey(eventID, profileID uint64) string {
	return fmt.Sprintf("%d/%d", eventID, profileID)
}

func (m *slotStoreMock) InsertSlot(ctx context.Context, s *model.EventStaffSlot) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	s.ID = m.nextID
	m.slots[s.ID] = *s
	return nil
}

func (m *slotStoreMock) SlotByID(ctx context.Context, id uint64) (model.EventStaffSlot, error) {
	if m.err != nil {
		return model.EventStaffSlot{}, m.err
	}
	s, ok := m.slots[id]
	if !ok {
		return model.EventStaffSlot{}, repository.ErrNotFound
	}
	return s, nil
}

func (m *slotStoreMock) SaveSlot(ctx context.Context, s model.EventStaffSlot) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.slots[s.ID]; !ok {
		return repository.ErrNotFound
	}
	m.slots[s.ID] = s
	m.saves++
	return nil
}

func (m *slotStoreMock) DeleteSlot(ctx context.Context, id uint64) error {
	if m.err != nil {
		return m.err
	}
	delete(m.slots, id)
	m.deletes = append(m.deletes, id)
	return nil
}

func (m *slotStoreMock) SlotsByEvent(ctx context.Context, eventID uint64) ([]model.EventStaffSlot, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []model.EventStaffSlot
	for id := uint64(1); id <= m.nextID; id++ {
		if s, ok := m.slots[id]; ok && s.EventID == eventID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *slotStoreMock) RankCandidates(ctx context.Context, eventID uint64, roles []model.StaffRole) ([]model.Candidate, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.candidates, nil
}

func (m *slotStoreMock) EventStaffCost(ctx context.Context, eventID uint64) (decimal.Decimal, error) {
	if m.err != nil {
		return decimal.Zero, m.err
	}
	total := decimal.Zero
	found := false
	for _, s := range m.slots {
		if s.EventID == eventID {
			total = total.Add(s.ActualCost())
			found = true
		}
	}
	if !found {
		return m.cost, nil
	}
	return total, nil
}

func (m *slotStoreMock) IsScheduled(ctx context.Context, eventID, profileID uint64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.scheduled[schedKey(eventID, profileID)], nil
}

func (m *slotStoreMock) BulkSchedule(ctx context.Context, eventID uint64, picks []repository.SchedulePick, createdBy uint64) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.bulkPicks = append(m.bulkPicks, picks...)
	for _, p := range picks {
		m.scheduled[schedKey(eventID, p.ProfileID)] = true
	}
	return len(picks), nil
}

// eventStoreMock is an in-memory EventSource / AdminEventSource double.
type eventStoreMock struct {
	events map[uint64]model.Event
	err    error
}

func newEventStoreMock(events ...model.Event) *eventStoreMock {
	m := &eventStoreMock{events: make(map[uint64]model.Event)}
	for _, ev := range events {
		m.events[ev.ID] = ev
	}
	return m
}

func (m *eventStoreMock) EventByID(ctx context.Context, id uint64) (model.Event, error) {
	if m.err != nil {
		return model.Event{}, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return model.Event{}, repository.ErrNotFound
	}
	return ev, nil
}

func (m *eventStoreMock) sorted() []model.Event {
	var out []model.Event
	for id := uint64(1); id <= 1000; id++ {
		if ev, ok := m.events[id]; ok {
			out = append(out, ev)
		}
	}
	return out
}

func (m *eventStoreMock) UpcomingEvents(ctx context.Context, fromDate string, limit, offset int) ([]model.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	var window []model.Event
	for _, ev := range m.sorted() {
		if ev.DateOnly() >= fromDate {
			window = append(window, ev)
		}
	}
	if offset >= len(window) {
		return nil, nil
	}
	window = window[offset:]
	if len(window) > limit {
		window = window[:limit]
	}
	return window, nil
}

func (m *eventStoreMock) EventsBetween(ctx context.Context, fromDate, toDate string) ([]model.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []model.Event
	for _, ev := range m.sorted() {
		if d := ev.DateOnly(); d >= fromDate && d <= toDate {
			out = append(out, ev)
		}
	}
	return out, nil
}

// recordStoreMock is an in-memory AvailabilityStore / RecordSource /
// RosterSource double keyed on (profile, date).
type recordStoreMock struct {
	records  map[string]model.StaffAvailabilityRecord
	defaults map[uint64][]model.DefaultRole
	roster   map[uint64][]model.StaffAvailabilityEntry // by event id
	upserts  int
	err      error
}

func newRecordStoreMock() *recordStoreMock {
	return &recordStoreMock{
		records:  make(map[string]model.StaffAvailabilityRecord),
		defaults: make(map[uint64][]model.DefaultRole),
		roster:   make(map[uint64][]model.StaffAvailabilityEntry),
	}
}

func recKey(profileID uint64, date string) string {
	return fmt.Sprintf("%d/%s", profileID, date)
}

func (m *recordStoreMock) UpsertAvailability(ctx context.Context, rec model.StaffAvailabilityRecord) error {
	if m.err != nil {
		return m.err
	}
	m.records[recKey(rec.ProfileID, rec.Date)] = rec
	m.upserts++
	return nil
}

func (m *recordStoreMock) AvailabilityOn(ctx context.Context, profileID uint64, date string) (*model.StaffAvailabilityRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	rec, ok := m.records[recKey(profileID, date)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *recordStoreMock) DayRoster(ctx context.Context, date string) ([]model.DayAvailability, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []model.DayAvailability
	for _, rec := range m.records {
		if rec.Date == date {
			out = append(out, model.DayAvailability{StaffAvailabilityRecord: rec})
		}
	}
	return out, nil
}

func (m *recordStoreMock) DefaultRoles(ctx context.Context, profileID uint64) ([]model.DefaultRole, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.defaults[profileID], nil
}

func (m *recordStoreMock) UpsertDefaultRole(ctx context.Context, d model.DefaultRole) error {
	if m.err != nil {
		return m.err
	}
	for i, existing := range m.defaults[d.ProfileID] {
		if existing.Role == d.Role {
			m.defaults[d.ProfileID][i] = d
			return nil
		}
	}
	m.defaults[d.ProfileID] = append(m.defaults[d.ProfileID], d)
	return nil
}

func (m *recordStoreMock) EventRoster(ctx context.Context, eventID uint64, date string) ([]model.StaffAvailabilityEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.roster[eventID], nil
}
