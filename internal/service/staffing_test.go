package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fascinar/eventos-api/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAddRoleSlot(t *testing.T) {
	store := newSlotStoreMock()
	svc := NewStaffing(store, zap.NewNop())

	slot, err := svc.AddRoleSlot(context.Background(), 7, model.RoleMonitor, "entrada", 1)
	require.NoError(t, err)
	assert.NotZero(t, slot.ID)
	assert.Equal(t, uint64(7), slot.EventID)
	assert.False(t, slot.Assignee.Assigned())
	assert.Equal(t, "entrada", slot.Notes)

	// Two slots of the same role on one event are allowed.
	_, err = svc.AddRoleSlot(context.Background(), 7, model.RoleMonitor, "", 1)
	require.NoError(t, err)
	slots, err := svc.SlotsForEvent(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestAddRoleSlot_UnknownRole(t *testing.T) {
	svc := NewStaffing(newSlotStoreMock(), zap.NewNop())
	_, err := svc.AddRoleSlot(context.Background(), 7, model.StaffRole("dj"), "", 1)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Same(t, err, svc.LastError())
}

func TestAssignPerson_ClearsConfirmation(t *testing.T) {
	store := newSlotStoreMock()
	svc := NewStaffing(store, zap.NewNop())
	ctx := context.Background()

	slot, err := svc.AddRoleSlot(ctx, 7, model.RoleCoordinator, "", 1)
	require.NoError(t, err)

	_, err = svc.AssignPerson(ctx, slot.ID, AssignPersonInput{PersonName: "Maria"})
	require.NoError(t, err)
	confirmed, err := svc.ConfirmAssignment(ctx, slot.ID)
	require.NoError(t, err)
	require.True(t, confirmed.Confirmed)
	require.NotNil(t, confirmed.ConfirmedAt)

	// Reassigning to someone else must drop the previous confirmation.
	pid := uint64(42)
	reassigned, err := svc.AssignPerson(ctx, slot.ID, AssignPersonInput{PersonName: "João", ProfileID: &pid})
	require.NoError(t, err)
	assert.False(t, reassigned.Confirmed)
	assert.Nil(t, reassigned.ConfirmedAt)
	assert.Equal(t, model.AssigneeRegistered, reassigned.Assignee.Kind)
	assert.Equal(t, pid, reassigned.Assignee.ProfileID)
}

func TestAssignPerson_ProfileTakesPrecedence(t *testing.T) {
	store := newSlotStoreMock()
	svc := NewStaffing(store, zap.NewNop())
	ctx := context.Background()

	slot, err := svc.AddRoleSlot(ctx, 7, model.RoleSecurity, "", 1)
	require.NoError(t, err)

	pid := uint64(9)
	got, err := svc.AssignPerson(ctx, slot.ID, AssignPersonInput{PersonName: "Carlos", ProfileID: &pid})
	require.NoError(t, err)
	assert.Equal(t, model.AssigneeRegistered, got.Assignee.Kind)

	// Name-only assignment is free-form.
	got, err = svc.AssignPerson(ctx, slot.ID, AssignPersonInput{PersonName: "Carlos"})
	require.NoError(t, err)
	assert.Equal(t, model.AssigneeFreeform, got.Assignee.Kind)
	assert.Equal(t, "Carlos", got.Assignee.DisplayName())
}

func TestAssignPerson_Validation(t *testing.T) {
	store := newSlotStoreMock()
	svc := NewStaffing(store, zap.NewNop())
	ctx := context.Background()

	slot, err := svc.AddRoleSlot(ctx, 7, model.RoleReceptionist, "", 1)
	require.NoError(t, err)

	_, err = svc.AssignPerson(ctx, slot.ID, AssignPersonInput{})
	assert.True(t, IsValidation(err))

	bad := "25:99"
	_, err = svc.AssignPerson(ctx, slot.ID, AssignPersonInput{PersonName: "Ana", ArrivalTime: &bad})
	assert.True(t, IsValidation(err))

	_, err = svc.AssignPerson(ctx, 999, AssignPersonInput{PersonName: "Ana"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConfirmAssignment_SetsTimestamp(t *testing.T) {
	store := newSlotStoreMock()
	svc := NewStaffing(store, zap.NewNop())
	ctx := context.Background()

	slot, err := svc.AddRoleSlot(ctx, 7, model.RolePlanner, "", 1)
	require.NoError(t, err)
	_, err = svc.AssignPerson(ctx, slot.ID, AssignPersonInput{PersonName: "Bia"})
	require.NoError(t, err)

	before := time.Now().UTC().Add(-time.Second)
	got, err := svc.ConfirmAssignment(ctx, slot.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ConfirmedAt)
	assert.True(t, got.ConfirmedAt.After(before))
}

func TestBuildSummary_EmptyEventCostsZero(t *testing.T) {
	store := newSlotStoreMock()
	svc := NewStaffing(store, zap.NewNop())

	sum, err := svc.BuildSummary(context.Background(), 99)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.TotalSlots)
	assert.True(t, sum.PlannedCost.IsZero())
	assert.True(t, sum.ActualCost.IsZero())

	cost, err := svc.EventStaffCost(context.Background(), 99)
	require.NoError(t, err)
	assert.True(t, cost.IsZero())
}

func TestBuildSummary_Counts(t *testing.T) {
	store := newSlotStoreMock()
	svc := NewStaffing(store, zap.NewNop())
	ctx := context.Background()

	rate := dec("50")
	hours := dec("6")

	a, _ := svc.AddRoleSlot(ctx, 7, model.RoleMonitor, "", 1)
	b, _ := svc.AddRoleSlot(ctx, 7, model.RoleMonitor, "", 1)
	_, _ = svc.AddRoleSlot(ctx, 7, model.RoleCoordinator, "", 1)

	_, err := svc.AssignPerson(ctx, a.ID, AssignPersonInput{PersonName: "Ana", HourlyRate: &rate, HoursPlanned: &hours})
	require.NoError(t, err)
	_, err = svc.AssignPerson(ctx, b.ID, AssignPersonInput{PersonName: "Bia", HourlyRate: &rate, HoursPlanned: &hours})
	require.NoError(t, err)
	_, err = svc.ConfirmAssignment(ctx, a.ID)
	require.NoError(t, err)

	sum, err := svc.BuildSummary(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.TotalSlots)
	assert.Equal(t, 2, sum.Assigned)
	assert.Equal(t, 1, sum.Confirmed)
	assert.Equal(t, 1, sum.PendingConfirmation)
	assert.Equal(t, 2, sum.ByRole[model.RoleMonitor])
	assert.Equal(t, 1, sum.ByRole[model.RoleCoordinator])
	// 2 slots x 50 x 6h planned; worked hours unset so actual matches.
	assert.True(t, sum.PlannedCost.Equal(dec("600")), "planned cost %s", sum.PlannedCost)
	assert.True(t, sum.ActualCost.Equal(dec("600")), "actual cost %s", sum.ActualCost)
}

func TestRemoveSlot_Idempotent(t *testing.T) {
	store := newSlotStoreMock()
	svc := NewStaffing(store, zap.NewNop())
	ctx := context.Background()

	slot, _ := svc.AddRoleSlot(ctx, 7, model.RoleMonitor, "", 1)
	require.NoError(t, svc.RemoveSlot(ctx, slot.ID))
	require.NoError(t, svc.RemoveSlot(ctx, slot.ID))
	assert.Nil(t, svc.LastError())
}

func TestSuggestCandidates_RejectsUnknownRole(t *testing.T) {
	store := newSlotStoreMock()
	store.candidates = []model.Candidate{{ProfileID: 1, Name: "Ana"}}
	svc := NewStaffing(store, zap.NewNop())

	_, err := svc.SuggestCandidates(context.Background(), 7, []model.StaffRole{"dj"})
	assert.True(t, IsValidation(err))

	got, err := svc.SuggestCandidates(context.Background(), 7, []model.StaffRole{model.RoleMonitor})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
