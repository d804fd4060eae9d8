package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fascinar/eventos-api/internal/model"
)

// EventRepo manages persistence for events.  Event dates are stored as UTC
// DATETIME; availability matching always works on the date-only part.
type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle for callers that need to begin
// transactions spanning multiple repositories.
func (r *EventRepo) DB() *sql.DB { return r.db }

const eventCols = `id, owner_id, title, client_name, event_date, venue, status, notes, created_at, updated_at`

// Create inserts a new event and populates the generated ID and DB-default
// fields on the given struct.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	const q = `INSERT INTO events (owner_id, title, client_name, event_date, venue, status, notes) VALUES (?, ?, ?, ?, ?, ?, ?)`
	status := e.Status
	if status == "" {
		status = "PLANNED"
	}
	res, err := r.db.ExecContext(ctx, q, e.OwnerID, e.Title, e.ClientName, e.EventDate.UTC(), e.Venue, status, e.Notes)
	if err != nil {
		return ClassifyStoreError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	const sel = `SELECT ` + eventCols + ` FROM events WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, e.ID).Scan(
		&e.ID, &e.OwnerID, &e.Title, &e.ClientName, &e.EventDate,
		&e.Venue, &e.Status, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
	)
}

// EventByID retrieves an event, mapping an absent row to ErrNotFound.
func (r *EventRepo) EventByID(ctx context.Context, id uint64) (model.Event, error) {
	const q = `SELECT ` + eventCols + ` FROM events WHERE id = ?`
	var e model.Event
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&e.ID, &e.OwnerID, &e.Title, &e.ClientName, &e.EventDate,
		&e.Venue, &e.Status, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Event{}, ErrNotFound
	}
	return e, ClassifyStoreError(err)
}

// Update overwrites the mutable columns of an event.
func (r *EventRepo) Update(ctx context.Context, e model.Event) error {
	const q = `UPDATE events SET title=?, client_name=?, event_date=?, venue=?, status=?, notes=? WHERE id=?`
	res, err := r.db.ExecContext(ctx, q, e.Title, e.ClientName, e.EventDate.UTC(), e.Venue, e.Status, e.Notes, e.ID)
	if err != nil {
		return ClassifyStoreError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either missing or unchanged; distinguish by existence.
		var one int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM events WHERE id=?", e.ID).Scan(&one); errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
	}
	return nil
}

// Delete removes an event.  event_staff rows cascade at the store layer.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	return ClassifyStoreError(err)
}

// UpcomingEvents returns events on or after the given date (date-only
// comparison), ordered by ascending event date, windowed by limit/offset.
// Callers implement the hasMore probe by asking for one row beyond their
// window.
func (r *EventRepo) UpcomingEvents(ctx context.Context, fromDate string, limit, offset int) ([]model.Event, error) {
	const q = `SELECT ` + eventCols + ` FROM events
	           WHERE DATE(event_date) >= ? AND status <> 'CANCELLED'
	           ORDER BY event_date ASC, id ASC
	           LIMIT ? OFFSET ?`
	return r.queryEvents(ctx, q, fromDate, limit, offset)
}

// EventsBetween returns events whose date falls inside [from, to]
// inclusive, date-only comparison, ascending by date.
func (r *EventRepo) EventsBetween(ctx context.Context, fromDate, toDate string) ([]model.Event, error) {
	const q = `SELECT ` + eventCols + ` FROM events
	           WHERE DATE(event_date) BETWEEN ? AND ? AND status <> 'CANCELLED'
	           ORDER BY event_date ASC, id ASC`
	return r.queryEvents(ctx, q, fromDate, toDate)
}

// ListByOwner returns all events managed by a profile, most recent first.
func (r *EventRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Event, error) {
	const q = `SELECT ` + eventCols + ` FROM events WHERE owner_id = ? ORDER BY event_date DESC, id DESC`
	return r.queryEvents(ctx, q, ownerID)
}

func (r *EventRepo) queryEvents(ctx context.Context, q string, args ...any) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, ClassifyStoreError(err)
	}
	defer rows.Close()
	var out []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Title, &e.ClientName, &e.EventDate,
			&e.Venue, &e.Status, &e.Notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
