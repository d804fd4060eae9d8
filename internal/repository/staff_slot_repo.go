package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/fascinar/eventos-api/internal/model"
)

// StaffSlotRepo provides data access to the `event_staff` table: the
// role-slots of an event's staffing roster.  The tagged Assignee of the
// model maps onto the two nullable columns profile_id / staff_name; exactly
// one is ever non-NULL for an assigned slot.
type StaffSlotRepo struct{ db *sql.DB }

func NewStaffSlotRepo(db *sql.DB) *StaffSlotRepo { return &StaffSlotRepo{db: db} }

// DB exposes the underlying handle for multi-repository transactions.
func (r *StaffSlotRepo) DB() *sql.DB { return r.db }

// assigneeColumns flattens the tagged identity into the nullable column
// pair.  Registered wins when both could be derived; the repository is the
// only place the two-column shape exists.
func assigneeColumns(a model.Assignee) (profileID *uint64, staffName *string) {
	switch a.Kind {
	case model.AssigneeRegistered:
		id := a.ProfileID
		return &id, nil
	case model.AssigneeFreeform:
		n := a.Name
		return nil, &n
	}
	return nil, nil
}

// scanAssignee rebuilds the tagged identity from the column pair plus the
// joined profile name.
func scanAssignee(profileID *uint64, staffName *string, profileName *string) model.Assignee {
	if profileID != nil {
		name := ""
		if profileName != nil {
			name = *profileName
		}
		return model.Registered(*profileID, name)
	}
	if staffName != nil && *staffName != "" {
		return model.Freeform(*staffName)
	}
	return model.Unassigned()
}

const slotSelect = `SELECT es.id, es.event_id, es.role, es.profile_id, es.staff_name,
       es.confirmed, es.confirmed_at, es.hourly_rate, es.hours_planned, es.hours_worked,
       es.notes, es.arrival_time, es.created_by, es.created_at, es.updated_at, p.full_name
  FROM event_staff es
  LEFT JOIN profiles p ON p.id = es.profile_id`

func scanSlot(scan func(dest ...any) error) (model.EventStaffSlot, error) {
	var (
		s           model.EventStaffSlot
		profileID   sql.Null[uint64]
		staffName   sql.NullString
		confirmedAt sql.NullTime
		worked      decimal.NullDecimal
		arrival     sql.NullString
		profileName sql.NullString
	)
	err := scan(&s.ID, &s.EventID, &s.Role, &profileID, &staffName,
		&s.Confirmed, &confirmedAt, &s.HourlyRate, &s.HoursPlanned, &worked,
		&s.Notes, &arrival, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt, &profileName)
	if err != nil {
		return model.EventStaffSlot{}, err
	}
	var pid *uint64
	if profileID.Valid {
		pid = &profileID.V
	}
	var sn *string
	if staffName.Valid {
		sn = &staffName.String
	}
	var pn *string
	if profileName.Valid {
		pn = &profileName.String
	}
	s.Assignee = scanAssignee(pid, sn, pn)
	if confirmedAt.Valid {
		t := confirmedAt.Time
		s.ConfirmedAt = &t
	}
	if worked.Valid {
		w := worked.Decimal
		s.HoursWorked = &w
	}
	if arrival.Valid {
		a := arrival.String
		s.ArrivalTime = &a
	}
	return s, nil
}

// InsertSlot creates a slot row and populates the generated ID and
// timestamps back on the struct.
func (r *StaffSlotRepo) InsertSlot(ctx context.Context, s *model.EventStaffSlot) error {
	pid, sn := assigneeColumns(s.Assignee)
	const q = `INSERT INTO event_staff
	    (event_id, role, profile_id, staff_name, confirmed, confirmed_at,
	     hourly_rate, hours_planned, hours_worked, notes, arrival_time, created_by)
	    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var worked any
	if s.HoursWorked != nil {
		worked = *s.HoursWorked
	}
	res, err := r.db.ExecContext(ctx, q, s.EventID, s.Role, pid, sn,
		s.Confirmed, s.ConfirmedAt, s.HourlyRate, s.HoursPlanned, worked,
		s.Notes, s.ArrivalTime, s.CreatedBy)
	if err != nil {
		return ClassifyStoreError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	got, err := r.SlotByID(ctx, s.ID)
	if err != nil {
		return err
	}
	*s = got
	return nil
}

// SlotByID fetches one slot joined with its profile name, mapping an
// absent row to ErrNotFound.
func (r *StaffSlotRepo) SlotByID(ctx context.Context, id uint64) (model.EventStaffSlot, error) {
	s, err := scanSlot(r.db.QueryRowContext(ctx, slotSelect+` WHERE es.id = ?`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.EventStaffSlot{}, ErrNotFound
	}
	if err != nil {
		return model.EventStaffSlot{}, ClassifyStoreError(err)
	}
	return s, nil
}

// SaveSlot overwrites every mutable column of a slot.  The caller is
// expected to have loaded the slot, applied its changes (including the
// confirmation reset on reassignment) and to hand the full struct back.
func (r *StaffSlotRepo) SaveSlot(ctx context.Context, s model.EventStaffSlot) error {
	pid, sn := assigneeColumns(s.Assignee)
	var worked any
	if s.HoursWorked != nil {
		worked = *s.HoursWorked
	}
	const q = `UPDATE event_staff SET role=?, profile_id=?, staff_name=?, confirmed=?, confirmed_at=?,
	           hourly_rate=?, hours_planned=?, hours_worked=?, notes=?, arrival_time=? WHERE id=?`
	res, err := r.db.ExecContext(ctx, q, s.Role, pid, sn, s.Confirmed, s.ConfirmedAt,
		s.HourlyRate, s.HoursPlanned, worked, s.Notes, s.ArrivalTime, s.ID)
	if err != nil {
		return ClassifyStoreError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM event_staff WHERE id=?", s.ID).Scan(&one); errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
	}
	return nil
}

// DeleteSlot removes a slot permanently.  Deleting an id that no longer
// exists is not an error; removal is idempotent from the caller's side.
func (r *StaffSlotRepo) DeleteSlot(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM event_staff WHERE id = ?`, id)
	return ClassifyStoreError(err)
}

// SlotsByEvent lists every slot of an event joined with profile names,
// ordered by role then creation.
func (r *StaffSlotRepo) SlotsByEvent(ctx context.Context, eventID uint64) ([]model.EventStaffSlot, error) {
	rows, err := r.db.QueryContext(ctx, slotSelect+` WHERE es.event_id = ? ORDER BY es.role, es.id`, eventID)
	if err != nil {
		return nil, ClassifyStoreError(err)
	}
	defer rows.Close()
	var out []model.EventStaffSlot
	for rows.Next() {
		s, err := scanSlot(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// IsScheduled reports whether any slot of the event references the
// profile.  This is the scheduling-lock fact the reconciliation write-guard
// re-checks at write time.
func (r *StaffSlotRepo) IsScheduled(ctx context.Context, eventID, profileID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM event_staff WHERE event_id = ? AND profile_id = ? LIMIT 1`,
		eventID, profileID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, ClassifyStoreError(err)
	}
	return true, nil
}

// SchedulePick is one profile chosen by auto-schedule together with the
// role and rate its slot should carry.
type SchedulePick struct {
	ProfileID  uint64
	Role       model.StaffRole
	HourlyRate decimal.Decimal
}

// BulkSchedule inserts one slot per pick in a single statement, all
// attributed to createdBy.  Returns the number of rows inserted.  An empty
// pick list is a no-op.
func (r *StaffSlotRepo) BulkSchedule(ctx context.Context, eventID uint64, picks []SchedulePick, createdBy uint64) (int, error) {
	if len(picks) == 0 {
		return 0, nil
	}
	query := `INSERT INTO event_staff (event_id, role, profile_id, hourly_rate, hours_planned, created_by) VALUES `
	args := make([]any, 0, len(picks)*6)
	for i, p := range picks {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?)"
		args = append(args, eventID, p.Role, p.ProfileID, p.HourlyRate, decimal.Zero, createdBy)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, ClassifyStoreError(err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
