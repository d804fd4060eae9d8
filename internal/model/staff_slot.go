package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventStaffSlot represents one staffing need for one event.  A slot is
// created with a role and may later receive a person, a confirmation and
// worked hours.  There is no uniqueness constraint on (event, role): an
// event may need two monitors.  This struct corresponds to a row in the
// `event_staff` table.
//
// Fields:
//  ID           – primary key identifier.
//  EventID      – owning event.
//  Role         – the role this slot fills.
//  Assignee     – tagged identity of the person, if any.
//  Confirmed    – whether the assignment was confirmed.
//  ConfirmedAt  – when it was confirmed (nil while unconfirmed).
//  HourlyRate   – planned hourly rate.
//  HoursPlanned – planned hours for the event.
//  HoursWorked  – actual hours, filled after the event (nil until then).
//  Notes        – free-text notes.
//  ArrivalTime  – "HH:MM" arrival time for the person (nil if unset).
//  CreatedBy    – profile id of the user who created the assignment.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type EventStaffSlot struct {
	ID           uint64
	EventID      uint64
	Role         StaffRole
	Assignee     Assignee
	Confirmed    bool
	ConfirmedAt  *time.Time
	HourlyRate   decimal.Decimal
	HoursPlanned decimal.Decimal
	HoursWorked  *decimal.Decimal
	Notes        string
	ArrivalTime  *string
	CreatedBy    uint64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PlannedCost is hourly rate times planned hours.
func (s EventStaffSlot) PlannedCost() decimal.Decimal {
	return s.HourlyRate.Mul(s.HoursPlanned)
}

// ActualCost is hourly rate times worked hours, falling back to planned
// hours while worked hours are not filled in.
func (s EventStaffSlot) ActualCost() decimal.Decimal {
	hours := s.HoursPlanned
	if s.HoursWorked != nil {
		hours = *s.HoursWorked
	}
	return s.HourlyRate.Mul(hours)
}

// EventStaffSummary is the derived per-event roster summary.  It is computed
// from the slot list plus the store-side cost aggregation on every read and
// is never persisted.
type EventStaffSummary struct {
	EventID             uint64                `json:"event_id"`
	TotalSlots          int                   `json:"total_slots"`
	Assigned            int                   `json:"assigned"`
	Confirmed           int                   `json:"confirmed"`
	PendingConfirmation int                   `json:"pending_confirmation"`
	PlannedCost         decimal.Decimal       `json:"planned_cost"`
	ActualCost          decimal.Decimal       `json:"actual_cost"`
	ByRole              map[StaffRole]int     `json:"by_role"`
}

// Candidate is one row of the store-side staff ranking for an event: a
// registered profile with a matching default role, annotated with its
// availability status for the event's date.  The ordering of a candidate
// list is decided by the store and passed through unmodified.
type Candidate struct {
	ProfileID       uint64          `json:"profile_id"`
	Name            string          `json:"name"`
	Role            StaffRole       `json:"role"`
	ExperienceLevel int             `json:"experience_level"`
	HourlyRate      decimal.Decimal `json:"hourly_rate"`
	Availability    *string         `json:"availability"` // status for the event date, nil when unstated
	Priority        int             `json:"priority"`
}

// DefaultRole is a profile's standing competency for a role, independent of
// any date.  Upserted keyed on (profile, role).
type DefaultRole struct {
	ID              uint64          `json:"id"`
	ProfileID       uint64          `json:"profile_id"`
	Role            StaffRole       `json:"role"`
	ExperienceLevel int             `json:"experience_level"` // 1..5
	HourlyRate      decimal.Decimal `json:"hourly_rate"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
