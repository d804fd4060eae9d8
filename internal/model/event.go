package model

import "time"

// Event represents a client event managed by the company.  Staffing and
// availability both hang off the event's date; the date is truncated to a
// day when matched against availability records because availability is
// tracked per-day, not per-event-time-slot.  Corresponds to a row in the
// `events` table.
type Event struct {
	ID         uint64    `json:"id"`
	OwnerID    uint64    `json:"owner_id"` // profile that manages this event
	Title      string    `json:"title"`
	ClientName string    `json:"client_name"`
	EventDate  time.Time `json:"event_date"` // UTC
	Venue      string    `json:"venue"`
	Status     string    `json:"status"` // PLANNED, CONFIRMED, DONE, CANCELLED
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DateOnly returns the event's calendar date in "2006-01-02" form, the key
// used to match staff availability records.
func (e Event) DateOnly() string {
	return e.EventDate.UTC().Format("2006-01-02")
}
