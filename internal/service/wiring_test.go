package service

import (
	"github.com/fascinar/eventos-api/internal/repository"
)

// The production repositories must keep satisfying the store interfaces
// the services are constructed with in cmd/server and cmd/eventosctl.
var (
	_ EventSource       = (*repository.EventRepo)(nil)
	_ AdminEventSource  = (*repository.EventRepo)(nil)
	_ ScheduleSource    = (*repository.StaffSlotRepo)(nil)
	_ StaffingStore     = (*repository.StaffSlotRepo)(nil)
	_ BulkScheduler     = (*repository.StaffSlotRepo)(nil)
	_ RecordSource      = (*repository.AvailabilityRepo)(nil)
	_ RosterSource      = (*repository.AvailabilityRepo)(nil)
	_ AvailabilityStore = (*repository.AvailabilityRepo)(nil)
)
