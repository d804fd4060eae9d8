package model

import "time"

// AvailabilityStatus is the stated status of a staff member for one
// calendar date.  These are the raw stored values; the derived tri-state
// shown next to an event is computed by ResolveTriState.
type AvailabilityStatus string

const (
	StatusAvailable   AvailabilityStatus = "available"
	StatusUnavailable AvailabilityStatus = "unavailable"
	StatusMaybe       AvailabilityStatus = "maybe"
)

// ValidAvailabilityStatus reports whether s is a storable status value.
func ValidAvailabilityStatus(s string) bool {
	switch AvailabilityStatus(s) {
	case StatusAvailable, StatusUnavailable, StatusMaybe:
		return true
	}
	return false
}

// StaffAvailabilityRecord is one profile's stated availability for one
// calendar date, independent of any event.  At most one record exists per
// (profile, date); writes are last-write-wins upserts and no history is
// kept.  Corresponds to a row in `staff_availability`.
type StaffAvailabilityRecord struct {
	ID        uint64
	ProfileID uint64
	Date      string // date-only, "2006-01-02"
	Status    AvailabilityStatus
	StartTime *string // "HH:MM", nil when unset
	EndTime   *string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DayAvailability is an availability record joined with the owning
// profile's identity, as returned by the per-date roster lookup.
type DayAvailability struct {
	StaffAvailabilityRecord
	ProfileName  string
	ProfileEmail string
}

// TriState is the derived availability outcome shown to users for one
// (event, profile) pair.
type TriState string

const (
	TriScheduled   TriState = "scheduled"
	TriAvailable   TriState = "available"
	TriUnavailable TriState = "unavailable"
	TriPending     TriState = "pending"
)

// ResolveTriState computes the derived state for an (event, profile) pair.
// A scheduling lock wins over everything the availability record says; a
// "maybe" or absent record resolves to pending.
func ResolveTriState(scheduled bool, status *AvailabilityStatus) TriState {
	if scheduled {
		return TriScheduled
	}
	if status != nil {
		switch *status {
		case StatusAvailable:
			return TriAvailable
		case StatusUnavailable:
			return TriUnavailable
		}
	}
	return TriPending
}

// TimeRangeDisplay formats the availability time range for display.  With
// both times present it is "HH:MM-HH:MM"; an available record with no times
// means the whole day; anything else displays nothing.
func TimeRangeDisplay(status *AvailabilityStatus, start, end *string) string {
	if start != nil && end != nil && *start != "" && *end != "" {
		return *start + "-" + *end
	}
	if status != nil && *status == StatusAvailable {
		return "Dia inteiro"
	}
	return ""
}

// EventAvailabilityView is the derived per-(event, profile) view: the
// event, the resolved tri-state, the display time range and the record's
// notes.  Recomputed on every read, never persisted.
type EventAvailabilityView struct {
	Event     Event    `json:"event"`
	State     TriState `json:"state"`
	TimeRange string   `json:"time_range"`
	Notes     string   `json:"notes"`
	Locked    bool     `json:"locked"` // true when scheduled: the record is read-only for the staff member
}

// StaffAvailabilityEntry is one row of an event's full per-staff breakdown:
// every relevant profile joined with its availability record for the
// event's date and the "already scheduled" fact.  Status and the time
// fields are nil when no record exists for that date.
type StaffAvailabilityEntry struct {
	ProfileID   uint64              `json:"profile_id"`
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Status      *AvailabilityStatus `json:"status"`
	StartTime   *string             `json:"start_time"`
	EndTime     *string             `json:"end_time"`
	Notes       string              `json:"notes"`
	Scheduled   bool                `json:"scheduled"`
	DefaultRole *StaffRole          `json:"default_role"` // highest-experience competency, for auto-schedule
	DefaultRate *string             `json:"default_rate"` // hourly rate of that competency, decimal string
}

// AdminEventAggregate is the per-event four-way partition of the staff
// population, produced by the admin aggregation sweep.
type AdminEventAggregate struct {
	Event       Event `json:"event"`
	Available   int   `json:"available"`   // available and not scheduled
	Unavailable int   `json:"unavailable"` // unavailable and not scheduled
	Pending     int   `json:"pending"`     // no usable record and not scheduled
	Scheduled   int   `json:"scheduled"`
}
