// Package queue defines the change-notification messages exchanged over
// the message broker and the background consumer that reacts to them.
package queue

// ChangedQueueName is the durable queue carrying row-change notifications
// for events and their staffing rosters.
const ChangedQueueName = "events.changed"

// EventChangedMessage is published after a mutation of an event or of its
// staffing roster.  Consumers use it to trigger the same re-fetch path a
// manual refresh would; the core works without the broker (polling is an
// acceptable substitute), so publishing is always best-effort.
type EventChangedMessage struct {
	MessageID  string `json:"message_id"` // uuid, for correlation and dedup
	Entity     string `json:"entity"`     // "event" or "event_staff"
	Action     string `json:"action"`     // "created", "updated", "deleted"
	EventID    uint64 `json:"event_id"`
	ActorID    uint64 `json:"actor_id"` // profile that performed the mutation
	OccurredAt string `json:"occurred_at"`
}
