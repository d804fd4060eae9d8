package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fascinar/eventos-api/internal/model"
)

// AvailabilityRepo provides data access to `staff_availability` (per-date
// status records, unique per profile and date) and `staff_default_roles`
// (standing role competencies, unique per profile and role).  Both tables
// are written exclusively through last-write-wins upserts; no history is
// kept.
type AvailabilityRepo struct{ db *sql.DB }

func NewAvailabilityRepo(db *sql.DB) *AvailabilityRepo { return &AvailabilityRepo{db: db} }

// UpsertAvailability writes the record for (profile, date), overwriting any
// prior value for that date unconditionally.
func (r *AvailabilityRepo) UpsertAvailability(ctx context.Context, rec model.StaffAvailabilityRecord) error {
	const q = `INSERT INTO staff_availability (profile_id, date, status, start_time, end_time, notes)
	           VALUES (?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE status=VALUES(status), start_time=VALUES(start_time),
	                                   end_time=VALUES(end_time), notes=VALUES(notes)`
	_, err := r.db.ExecContext(ctx, q, rec.ProfileID, rec.Date, rec.Status,
		rec.StartTime, rec.EndTime, rec.Notes)
	return ClassifyStoreError(err)
}

// AvailabilityOn returns the record for (profile, date), or nil when the
// profile has not stated anything for that date.
func (r *AvailabilityRepo) AvailabilityOn(ctx context.Context, profileID uint64, date string) (*model.StaffAvailabilityRecord, error) {
	// DATE_FORMAT keeps the date a plain "YYYY-MM-DD" string; parseTime=true
	// would otherwise scan the DATE column as a timestamp.
	const q = `SELECT id, profile_id, DATE_FORMAT(date, '%Y-%m-%d'), status, start_time, end_time, notes, created_at, updated_at
	           FROM staff_availability WHERE profile_id = ? AND date = ? LIMIT 1`
	var (
		rec        model.StaffAvailabilityRecord
		start, end sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, profileID, date).Scan(
		&rec.ID, &rec.ProfileID, &rec.Date, &rec.Status, &start, &end,
		&rec.Notes, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, ClassifyStoreError(err)
	}
	if start.Valid {
		rec.StartTime = &start.String
	}
	if end.Valid {
		rec.EndTime = &end.String
	}
	return &rec, nil
}

// DayRoster returns every availability record for one calendar date joined
// with the owning profile's identity, ordered by name.
func (r *AvailabilityRepo) DayRoster(ctx context.Context, date string) ([]model.DayAvailability, error) {
	const q = `SELECT sa.id, sa.profile_id, DATE_FORMAT(sa.date, '%Y-%m-%d'), sa.status, sa.start_time, sa.end_time,
	                  sa.notes, sa.created_at, sa.updated_at, p.full_name, p.email
	             FROM staff_availability sa
	             JOIN profiles p ON p.id = sa.profile_id
	            WHERE sa.date = ?
	            ORDER BY p.full_name`
	rows, err := r.db.QueryContext(ctx, q, date)
	if err != nil {
		return nil, ClassifyStoreError(err)
	}
	defer rows.Close()
	var out []model.DayAvailability
	for rows.Next() {
		var (
			d          model.DayAvailability
			start, end sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.ProfileID, &d.Date, &d.Status, &start, &end,
			&d.Notes, &d.CreatedAt, &d.UpdatedAt, &d.ProfileName, &d.ProfileEmail); err != nil {
			return nil, err
		}
		if start.Valid {
			d.StartTime = &start.String
		}
		if end.Valid {
			d.EndTime = &end.String
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// EventRoster materializes the full staff population against one event:
// every active STAFF profile, left-joined with its availability record for
// the event's date, the scheduling-lock fact for the event, and its
// highest-experience default competency.  This is the row set the
// reconciliation and admin aggregation layers classify; no classification
// happens in SQL.
func (r *AvailabilityRepo) EventRoster(ctx context.Context, eventID uint64, date string) ([]model.StaffAvailabilityEntry, error) {
	const q = `SELECT p.id, p.full_name, p.email,
	                  sa.status, sa.start_time, sa.end_time, COALESCE(sa.notes, ''),
	                  EXISTS(SELECT 1 FROM event_staff es WHERE es.event_id = ? AND es.profile_id = p.id),
	                  (SELECT sdr.role FROM staff_default_roles sdr
	                    WHERE sdr.profile_id = p.id
	                    ORDER BY sdr.experience_level DESC, sdr.id ASC LIMIT 1),
	                  (SELECT sdr.hourly_rate FROM staff_default_roles sdr
	                    WHERE sdr.profile_id = p.id
	                    ORDER BY sdr.experience_level DESC, sdr.id ASC LIMIT 1)
	             FROM profiles p
	             LEFT JOIN staff_availability sa ON sa.profile_id = p.id AND sa.date = ?
	            WHERE p.role = 'STAFF' AND p.is_active = 1
	            ORDER BY p.full_name`
	rows, err := r.db.QueryContext(ctx, q, eventID, date)
	if err != nil {
		return nil, ClassifyStoreError(err)
	}
	defer rows.Close()
	var out []model.StaffAvailabilityEntry
	for rows.Next() {
		var (
			e           model.StaffAvailabilityEntry
			status      sql.NullString
			start, end  sql.NullString
			defRole     sql.NullString
			defRate     sql.NullString
		)
		if err := rows.Scan(&e.ProfileID, &e.Name, &e.Email, &status, &start, &end,
			&e.Notes, &e.Scheduled, &defRole, &defRate); err != nil {
			return nil, err
		}
		if status.Valid {
			s := model.AvailabilityStatus(status.String)
			e.Status = &s
		}
		if start.Valid {
			e.StartTime = &start.String
		}
		if end.Valid {
			e.EndTime = &end.String
		}
		if defRole.Valid {
			role := model.StaffRole(defRole.String)
			e.DefaultRole = &role
		}
		if defRate.Valid {
			e.DefaultRate = &defRate.String
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// DefaultRoles lists a profile's standing competencies.
func (r *AvailabilityRepo) DefaultRoles(ctx context.Context, profileID uint64) ([]model.DefaultRole, error) {
	const q = `SELECT id, profile_id, role, experience_level, hourly_rate, created_at, updated_at
	           FROM staff_default_roles WHERE profile_id = ? ORDER BY experience_level DESC, role`
	rows, err := r.db.QueryContext(ctx, q, profileID)
	if err != nil {
		return nil, ClassifyStoreError(err)
	}
	defer rows.Close()
	var out []model.DefaultRole
	for rows.Next() {
		var d model.DefaultRole
		if err := rows.Scan(&d.ID, &d.ProfileID, &d.Role, &d.ExperienceLevel,
			&d.HourlyRate, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpsertDefaultRole writes a competency keyed on (profile, role).
func (r *AvailabilityRepo) UpsertDefaultRole(ctx context.Context, d model.DefaultRole) error {
	const q = `INSERT INTO staff_default_roles (profile_id, role, experience_level, hourly_rate)
	           VALUES (?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE experience_level=VALUES(experience_level), hourly_rate=VALUES(hourly_rate)`
	_, err := r.db.ExecContext(ctx, q, d.ProfileID, d.Role, d.ExperienceLevel, d.HourlyRate)
	return ClassifyStoreError(err)
}
