package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fascinar/eventos-api/internal/model"
	"github.com/fascinar/eventos-api/internal/repository"
)

// StaffingStore is the persistence surface the staffing service needs.
// *repository.StaffSlotRepo satisfies it; tests substitute an in-memory
// implementation.
type StaffingStore interface {
	InsertSlot(ctx context.Context, s *model.EventStaffSlot) error
	SlotByID(ctx context.Context, id uint64) (model.EventStaffSlot, error)
	SaveSlot(ctx context.Context, s model.EventStaffSlot) error
	DeleteSlot(ctx context.Context, id uint64) error
	SlotsByEvent(ctx context.Context, eventID uint64) ([]model.EventStaffSlot, error)
	RankCandidates(ctx context.Context, eventID uint64, requiredRoles []model.StaffRole) ([]model.Candidate, error)
	EventStaffCost(ctx context.Context, eventID uint64) (decimal.Decimal, error)
}

// Staffing manages the roster of role-slots for events: slot CRUD,
// assignment, confirmation, candidate suggestion and cost aggregation.
type Staffing struct {
	errSlot
	store StaffingStore
	log   *zap.Logger
}

func NewStaffing(store StaffingStore, log *zap.Logger) *Staffing {
	return &Staffing{store: store, log: log}
}

// AddRoleSlot creates an empty (unassigned) slot for the event.  Multiple
// slots of the same role are permitted.
func (s *Staffing) AddRoleSlot(ctx context.Context, eventID uint64, role model.StaffRole, notes string, createdBy uint64) (model.EventStaffSlot, error) {
	if !model.ValidRole(string(role)) {
		return model.EventStaffSlot{}, s.record(validationf("role", "unknown role %q", role))
	}
	slot := model.EventStaffSlot{
		EventID:      eventID,
		Role:         role,
		Assignee:     model.Unassigned(),
		HourlyRate:   decimal.Zero,
		HoursPlanned: decimal.Zero,
		Notes:        notes,
		CreatedBy:    createdBy,
	}
	if err := s.store.InsertSlot(ctx, &slot); err != nil {
		return model.EventStaffSlot{}, s.record(storeErr("add role slot", err))
	}
	s.log.Info("slot created", zap.Uint64("event_id", eventID), zap.String("role", string(role)))
	return slot, s.record(nil)
}

// AssignPersonInput carries the optional attributes of an assignment.  A
// nil pointer leaves the slot's current value alone.
type AssignPersonInput struct {
	PersonName   string
	ProfileID    *uint64
	ArrivalTime  *string
	HourlyRate   *decimal.Decimal
	HoursPlanned *decimal.Decimal
	Notes        *string
}

// AssignPerson sets the slot's identity to exactly one of profile or
// free-text name (profile takes precedence when both are supplied) and
// unconditionally resets the confirmation flag and timestamp.  Every
// reassignment path goes through here, so a confirmed slot can never keep
// its confirmation across a change of person.
func (s *Staffing) AssignPerson(ctx context.Context, slotID uint64, in AssignPersonInput) (model.EventStaffSlot, error) {
	if in.ProfileID == nil && in.PersonName == "" {
		return model.EventStaffSlot{}, s.record(validationf("person", "a profile or a name is required"))
	}
	if in.ArrivalTime != nil && *in.ArrivalTime != "" {
		if _, err := time.Parse("15:04", *in.ArrivalTime); err != nil {
			return model.EventStaffSlot{}, s.record(validationf("arrival_time", "must be HH:MM"))
		}
	}
	slot, err := s.store.SlotByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.EventStaffSlot{}, s.record(ErrNotFound)
		}
		return model.EventStaffSlot{}, s.record(storeErr("assign person", err))
	}
	if in.ProfileID != nil {
		slot.Assignee = model.Registered(*in.ProfileID, in.PersonName)
	} else {
		slot.Assignee = model.Freeform(in.PersonName)
	}
	slot.Confirmed = false
	slot.ConfirmedAt = nil
	if in.ArrivalTime != nil {
		slot.ArrivalTime = in.ArrivalTime
	}
	if in.HourlyRate != nil {
		slot.HourlyRate = *in.HourlyRate
	}
	if in.HoursPlanned != nil {
		slot.HoursPlanned = *in.HoursPlanned
	}
	if in.Notes != nil {
		slot.Notes = *in.Notes
	}
	if err := s.store.SaveSlot(ctx, slot); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.EventStaffSlot{}, s.record(ErrNotFound)
		}
		return model.EventStaffSlot{}, s.record(storeErr("assign person", err))
	}
	s.log.Info("slot assigned",
		zap.Uint64("slot_id", slotID),
		zap.Bool("registered", in.ProfileID != nil))
	return slot, s.record(nil)
}

// ConfirmAssignment marks the slot confirmed now.  Confirmation is only
// meaningful on an assigned slot; the UI hides the action otherwise, and
// the service does not hard-block the call.
func (s *Staffing) ConfirmAssignment(ctx context.Context, slotID uint64) (model.EventStaffSlot, error) {
	slot, err := s.store.SlotByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.EventStaffSlot{}, s.record(ErrNotFound)
		}
		return model.EventStaffSlot{}, s.record(storeErr("confirm assignment", err))
	}
	if !slot.Assignee.Assigned() {
		s.log.Warn("confirming an unassigned slot", zap.Uint64("slot_id", slotID))
	}
	now := time.Now().UTC()
	slot.Confirmed = true
	slot.ConfirmedAt = &now
	if err := s.store.SaveSlot(ctx, slot); err != nil {
		return model.EventStaffSlot{}, s.record(storeErr("confirm assignment", err))
	}
	return slot, s.record(nil)
}

// RemoveSlot permanently deletes the slot.  Removing an id that was
// already removed is not an error.
func (s *Staffing) RemoveSlot(ctx context.Context, slotID uint64) error {
	if err := s.store.DeleteSlot(ctx, slotID); err != nil {
		return s.record(storeErr("remove slot", err))
	}
	return s.record(nil)
}

// SlotByID fetches one slot by id.
func (s *Staffing) SlotByID(ctx context.Context, slotID uint64) (model.EventStaffSlot, error) {
	slot, err := s.store.SlotByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.EventStaffSlot{}, s.record(ErrNotFound)
		}
		return model.EventStaffSlot{}, s.record(storeErr("get slot", err))
	}
	return slot, s.record(nil)
}

// SlotsForEvent lists the event's roster.
func (s *Staffing) SlotsForEvent(ctx context.Context, eventID uint64) ([]model.EventStaffSlot, error) {
	slots, err := s.store.SlotsByEvent(ctx, eventID)
	if err != nil {
		return nil, s.record(storeErr("list slots", err))
	}
	return slots, s.record(nil)
}

// SuggestCandidates returns the store-side ranking for the event,
// filtered to requiredRoles when non-empty.  The store's ordering is
// passed through unmodified.
func (s *Staffing) SuggestCandidates(ctx context.Context, eventID uint64, requiredRoles []model.StaffRole) ([]model.Candidate, error) {
	for _, role := range requiredRoles {
		if !model.ValidRole(string(role)) {
			return nil, s.record(validationf("roles", "unknown role %q", role))
		}
	}
	out, err := s.store.RankCandidates(ctx, eventID, requiredRoles)
	if err != nil {
		return nil, s.record(storeErr("suggest candidates", err))
	}
	return out, s.record(nil)
}

// EventStaffCost returns the store-side cost aggregation for the event.
// An event with no slots costs zero.
func (s *Staffing) EventStaffCost(ctx context.Context, eventID uint64) (decimal.Decimal, error) {
	total, err := s.store.EventStaffCost(ctx, eventID)
	if err != nil {
		return decimal.Zero, s.record(storeErr("event staff cost", err))
	}
	return total, s.record(nil)
}

// BuildSummary combines the slot list and the cost aggregation into the
// derived roster summary.  The two reads are sequential; a failure in
// either surfaces as a single error.
func (s *Staffing) BuildSummary(ctx context.Context, eventID uint64) (model.EventStaffSummary, error) {
	slots, err := s.store.SlotsByEvent(ctx, eventID)
	if err != nil {
		return model.EventStaffSummary{}, s.record(storeErr("build summary", err))
	}
	cost, err := s.store.EventStaffCost(ctx, eventID)
	if err != nil {
		return model.EventStaffSummary{}, s.record(storeErr("build summary", err))
	}
	sum := model.EventStaffSummary{
		EventID:     eventID,
		TotalSlots:  len(slots),
		PlannedCost: decimal.Zero,
		ActualCost:  cost,
		ByRole:      make(map[model.StaffRole]int),
	}
	for _, slot := range slots {
		sum.ByRole[slot.Role]++
		sum.PlannedCost = sum.PlannedCost.Add(slot.PlannedCost())
		if slot.Assignee.Assigned() {
			sum.Assigned++
			if slot.Confirmed {
				sum.Confirmed++
			} else {
				sum.PendingConfirmation++
			}
		}
	}
	return sum, s.record(nil)
}
