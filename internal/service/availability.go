package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fascinar/eventos-api/internal/model"
)

// AvailabilityStore is the persistence surface of the availability
// service.  *repository.AvailabilityRepo satisfies it.
type AvailabilityStore interface {
	UpsertAvailability(ctx context.Context, rec model.StaffAvailabilityRecord) error
	DayRoster(ctx context.Context, date string) ([]model.DayAvailability, error)
	DefaultRoles(ctx context.Context, profileID uint64) ([]model.DefaultRole, error)
	UpsertDefaultRole(ctx context.Context, d model.DefaultRole) error
}

// Availability records per-date staff availability and standing role
// competencies.  Setting availability is a best-effort, retry-friendly
// action: failures are reported through the last-error slot and a false
// result rather than propagated as faults.
type Availability struct {
	errSlot
	store AvailabilityStore
	log   *zap.Logger
}

func NewAvailability(store AvailabilityStore, log *zap.Logger) *Availability {
	return &Availability{store: store, log: log}
}

// validateDayInput checks the date and optional time range shared by the
// availability writes.
func validateDayInput(date string, start, end *string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return validationf("date", "must be YYYY-MM-DD")
	}
	for _, t := range []*string{start, end} {
		if t != nil && *t != "" {
			if _, err := time.Parse("15:04", *t); err != nil {
				return validationf("time", "must be HH:MM")
			}
		}
	}
	if start != nil && end != nil && *start != "" && *end != "" && *end <= *start {
		return validationf("time", "end must be after start")
	}
	return nil
}

// GetAvailability returns every staff availability record for one calendar
// date, each joined with the profile's identity.
func (s *Availability) GetAvailability(ctx context.Context, date string) ([]model.DayAvailability, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, s.record(validationf("date", "must be YYYY-MM-DD"))
	}
	out, err := s.store.DayRoster(ctx, date)
	if err != nil {
		return nil, s.record(storeErr("get availability", err))
	}
	return out, s.record(nil)
}

// SetAvailability upserts the record keyed on (profile, date),
// overwriting any prior value for that date unconditionally.  Returns
// false (with the error recorded) instead of failing hard.
func (s *Availability) SetAvailability(ctx context.Context, profileID uint64, date string, status model.AvailabilityStatus, start, end *string, notes string) bool {
	if profileID == 0 {
		s.record(validationf("profile", "profile id is required"))
		return false
	}
	if !model.ValidAvailabilityStatus(string(status)) {
		s.record(validationf("status", "must be available, unavailable or maybe"))
		return false
	}
	if err := validateDayInput(date, start, end); err != nil {
		s.record(err)
		return false
	}
	rec := model.StaffAvailabilityRecord{
		ProfileID: profileID,
		Date:      date,
		Status:    status,
		StartTime: start,
		EndTime:   end,
		Notes:     notes,
	}
	if err := s.store.UpsertAvailability(ctx, rec); err != nil {
		s.log.Warn("set availability failed",
			zap.Uint64("profile_id", profileID), zap.String("date", date), zap.Error(err))
		s.record(storeErr("set availability", err))
		return false
	}
	s.record(nil)
	return true
}

// GetDefaultRoles lists a profile's standing competencies.
func (s *Availability) GetDefaultRoles(ctx context.Context, profileID uint64) ([]model.DefaultRole, error) {
	out, err := s.store.DefaultRoles(ctx, profileID)
	if err != nil {
		return nil, s.record(storeErr("get default roles", err))
	}
	return out, s.record(nil)
}

// SetDefaultRole upserts a competency keyed on (profile, role).  Returns
// false on failure, matching the soft semantics of SetAvailability.
func (s *Availability) SetDefaultRole(ctx context.Context, d model.DefaultRole) bool {
	if d.ProfileID == 0 {
		s.record(validationf("profile", "profile id is required"))
		return false
	}
	if !model.ValidRole(string(d.Role)) {
		s.record(validationf("role", "unknown role %q", d.Role))
		return false
	}
	if d.ExperienceLevel < 1 || d.ExperienceLevel > 5 {
		s.record(validationf("experience_level", "must be between 1 and 5"))
		return false
	}
	if err := s.store.UpsertDefaultRole(ctx, d); err != nil {
		s.record(storeErr("set default role", err))
		return false
	}
	s.record(nil)
	return true
}
