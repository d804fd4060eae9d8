package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fascinar/eventos-api/internal/model"
)

// This file holds the two store-side callables the staffing service treats
// as black boxes: the candidate ranking and the cost aggregation.  Both are
// expressed as single queries so that their output contract (a ranked list,
// a number) is all the service layer ever sees; the heuristic below can be
// tuned without touching any caller.

// RankCandidates returns registered staff with a default competency,
// annotated with their availability status for the event's date and a
// priority score.  Higher priority first; an already scheduled profile is
// pushed to the bottom.  When requiredRoles is non-empty only those roles
// are considered.  The caller must not reorder the result.
func (r *StaffSlotRepo) RankCandidates(ctx context.Context, eventID uint64, requiredRoles []model.StaffRole) ([]model.Candidate, error) {
	q := `SELECT p.id, p.full_name, sdr.role, sdr.experience_level, sdr.hourly_rate, sa.status,
	             (sdr.experience_level * 10
	              + CASE sa.status
	                  WHEN 'available'   THEN 30
	                  WHEN 'maybe'       THEN 10
	                  WHEN 'unavailable' THEN -50
	                  ELSE 0
	                END
	              - CASE WHEN EXISTS(SELECT 1 FROM event_staff es
	                                  WHERE es.event_id = e.id AND es.profile_id = p.id)
	                     THEN 100 ELSE 0 END) AS priority
	        FROM staff_default_roles sdr
	        JOIN profiles p ON p.id = sdr.profile_id AND p.role = 'STAFF' AND p.is_active = 1
	        JOIN events e ON e.id = ?
	        LEFT JOIN staff_availability sa ON sa.profile_id = p.id AND sa.date = DATE(e.event_date)`
	args := []any{eventID}
	if len(requiredRoles) > 0 {
		q += ` WHERE sdr.role IN (?` + strings.Repeat(",?", len(requiredRoles)-1) + `)`
		for _, role := range requiredRoles {
			args = append(args, role)
		}
	}
	q += ` ORDER BY priority DESC, sdr.hourly_rate ASC, p.full_name ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, ClassifyStoreError(err)
	}
	defer rows.Close()
	var out []model.Candidate
	for rows.Next() {
		var (
			c      model.Candidate
			status sql.NullString
		)
		if err := rows.Scan(&c.ProfileID, &c.Name, &c.Role, &c.ExperienceLevel,
			&c.HourlyRate, &status, &c.Priority); err != nil {
			return nil, err
		}
		if status.Valid {
			c.Availability = &status.String
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// EventStaffCost sums hourly_rate times worked-or-planned hours across the
// event's slots.  An event with no slots costs zero; that is a value, not
// an error.
func (r *StaffSlotRepo) EventStaffCost(ctx context.Context, eventID uint64) (decimal.Decimal, error) {
	const q = `SELECT COALESCE(SUM(hourly_rate * COALESCE(hours_worked, hours_planned)), 0)
	           FROM event_staff WHERE event_id = ?`
	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, q, eventID).Scan(&total); err != nil {
		return decimal.Zero, ClassifyStoreError(err)
	}
	return total, nil
}
