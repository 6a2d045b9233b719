package delivery

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/delivery"
	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/fleet"
	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/payroll"
	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/staff"
	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/validator"
	"github.com/mwendo-logistics/payroll-backend-go/internal/repository/memory"
	payrollsvc "github.com/mwendo-logistics/payroll-backend-go/internal/service/payroll"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fixture struct {
	svc         *Service
	staffRepo   *memory.StaffRepository
	vehicleRepo *memory.VehicleRepository
	ledgerRepo  *memory.LedgerRepository
	vehicleID   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	staffRepo := memory.NewStaffRepository()
	vehicleRepo := memory.NewVehicleRepository()
	assignmentRepo := memory.NewAssignmentRepository()
	ledgerRepo := memory.NewLedgerRepository()
	deliveryRepo := memory.NewDeliveryRepository(assignmentRepo, ledgerRepo)
	ledgerRepo.BindDeliveries(deliveryRepo)

	tx := memory.NewTxManager()
	trigger := payrollsvc.NewService(tx, deliveryRepo, assignmentRepo, ledgerRepo, payrollsvc.NewEngine(false))
	svc := NewService(tx, deliveryRepo, assignmentRepo, staffRepo, vehicleRepo, trigger, dec("200.00"))

	v, err := vehicleRepo.Create(ctx, fleet.Vehicle{
		ID:          uuid.New().String(),
		PlateNumber: "KBZ 123A",
		VehicleType: fleet.VehicleTypeTruck,
		IsActive:    true,
	})
	require.NoError(t, err)

	return &fixture{
		svc:         svc,
		staffRepo:   staffRepo,
		vehicleRepo: vehicleRepo,
		ledgerRepo:  ledgerRepo,
		vehicleID:   v.ID,
	}
}

func (f *fixture) createStaff(t *testing.T, name string, role staff.Role, isLoader bool) staff.Staff {
	t.Helper()
	member := staff.Staff{
		ID:       uuid.New().String(),
		Name:     name,
		Role:     role,
		IsLoader: isLoader,
		IsActive: true,
	}
	member.Normalize()
	created, err := f.staffRepo.Create(context.Background(), member)
	require.NoError(t, err)
	return created
}

func (f *fixture) createDelivery(t *testing.T, loadingAmount string) delivery.Delivery {
	t.Helper()
	d, err := f.svc.Create(context.Background(), delivery.CreateDeliveryRequest{
		Date:          "2026-08-15",
		VehicleID:     f.vehicleID,
		Destination:   "Nakuru",
		LoadingAmount: dec(loadingAmount),
		ItemsCarried:  "cement",
	})
	require.NoError(t, err)
	return d
}

func (f *fixture) lines(t *testing.T, deliveryID string) []payroll.LedgerLine {
	t.Helper()
	lines, err := f.ledgerRepo.ListLines(context.Background(), payroll.LedgerFilter{DeliveryID: &deliveryID})
	require.NoError(t, err)
	return lines
}

func TestCreateAppliesDefaultTurnboyRate(t *testing.T) {
	f := newFixture(t)
	d := f.createDelivery(t, "500.00")
	assert.True(t, d.TurnboyPaymentRate.Equal(dec("200.00")))
}

func TestCreateHonorsExplicitRate(t *testing.T) {
	f := newFixture(t)
	rate := dec("350.00")
	d, err := f.svc.Create(context.Background(), delivery.CreateDeliveryRequest{
		Date:               "2026-08-15",
		VehicleID:          f.vehicleID,
		Destination:        "Nakuru",
		LoadingAmount:      dec("0.00"),
		TurnboyPaymentRate: &rate,
	})
	require.NoError(t, err)
	assert.True(t, d.TurnboyPaymentRate.Equal(rate))
}

func TestCreateRejectsUnknownVehicle(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), delivery.CreateDeliveryRequest{
		Date:        "2026-08-15",
		VehicleID:   uuid.New().String(),
		Destination: "Nakuru",
	})
	assert.ErrorIs(t, err, fleet.ErrVehicleNotFound)
}

func TestAssignStaffProducesLedgerLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	member := f.createStaff(t, "Juma", staff.RoleTurnboy, false)
	d := f.createDelivery(t, "0.00")

	_, err := f.svc.AssignStaff(ctx, delivery.AssignStaffRequest{
		DeliveryID: d.ID,
		StaffID:    member.ID,
		Role:       string(staff.RoleTurnboy),
	})
	require.NoError(t, err)

	lines := f.lines(t, d.ID)
	require.Len(t, lines, 1)
	assert.Equal(t, member.ID, lines[0].StaffID)
	assert.True(t, lines[0].RolePay.Equal(dec("200.00")))
}

func TestAssignStaffRejectsIncapableRole(t *testing.T) {
	f := newFixture(t)

	// Plain turnboy without the loader capability.
	member := f.createStaff(t, "Juma", staff.RoleTurnboy, false)
	d := f.createDelivery(t, "100.00")

	_, err := f.svc.AssignStaff(context.Background(), delivery.AssignStaffRequest{
		DeliveryID: d.ID,
		StaffID:    member.ID,
		Role:       string(staff.RoleLoader),
	})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "role", errs[0].Field)
}

func TestAssignStaffAllowsCapableTurnboyAsLoader(t *testing.T) {
	f := newFixture(t)
	member := f.createStaff(t, "Juma", staff.RoleTurnboy, true)
	d := f.createDelivery(t, "100.00")

	a, err := f.svc.AssignStaff(context.Background(), delivery.AssignStaffRequest{
		DeliveryID: d.ID,
		StaffID:    member.ID,
		Role:       string(staff.RoleLoader),
	})
	require.NoError(t, err)
	// Loader assignments always count as having helped.
	assert.True(t, a.HelpedLoading)

	lines := f.lines(t, d.ID)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].LoaderPay.Equal(dec("100.00")))
}

func TestListDeliveriesFiltersByStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createDelivery(t, "100.00")
	pending := "pending"
	_, err := f.svc.Create(ctx, delivery.CreateDeliveryRequest{
		Date:          "2026-08-16",
		VehicleID:     f.vehicleID,
		Destination:   "Eldoret",
		LoadingAmount: dec("0.00"),
		Status:        &pending,
	})
	require.NoError(t, err)

	completed := string(delivery.StatusCompleted)
	list, err := f.svc.List(ctx, delivery.ListDeliveriesFilter{Status: &completed})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, delivery.StatusCompleted, list[0].Status)
}

func TestRemoveAssignmentRecomputesShares(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.createStaff(t, "Juma", staff.RoleLoader, true)
	b := f.createStaff(t, "Otieno", staff.RoleLoader, true)
	d := f.createDelivery(t, "400.00")

	_, err := f.svc.AssignStaff(ctx, delivery.AssignStaffRequest{DeliveryID: d.ID, StaffID: a.ID, Role: string(staff.RoleLoader)})
	require.NoError(t, err)
	removable, err := f.svc.AssignStaff(ctx, delivery.AssignStaffRequest{DeliveryID: d.ID, StaffID: b.ID, Role: string(staff.RoleLoader)})
	require.NoError(t, err)

	for _, line := range f.lines(t, d.ID) {
		assert.True(t, line.LoaderPay.Equal(dec("200.00")))
	}

	require.NoError(t, f.svc.RemoveAssignment(ctx, removable.ID))

	lines := f.lines(t, d.ID)
	require.Len(t, lines, 1)
	assert.Equal(t, a.ID, lines[0].StaffID)
	assert.True(t, lines[0].LoaderPay.Equal(dec("400.00")))
}

func TestUpdateDeliveryRecomputesLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	member := f.createStaff(t, "Juma", staff.RoleLoader, true)
	d := f.createDelivery(t, "100.00")
	_, err := f.svc.AssignStaff(ctx, delivery.AssignStaffRequest{DeliveryID: d.ID, StaffID: member.ID, Role: string(staff.RoleLoader)})
	require.NoError(t, err)

	newAmount := dec("700.00")
	_, err = f.svc.Update(ctx, delivery.UpdateDeliveryRequest{ID: d.ID, LoadingAmount: &newAmount})
	require.NoError(t, err)

	lines := f.lines(t, d.ID)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].LoaderPay.Equal(newAmount))
}

func TestDeleteDeliveryRemovesLedgerLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	member := f.createStaff(t, "Juma", staff.RoleTurnboy, false)
	d := f.createDelivery(t, "0.00")
	_, err := f.svc.AssignStaff(ctx, delivery.AssignStaffRequest{DeliveryID: d.ID, StaffID: member.ID, Role: string(staff.RoleTurnboy)})
	require.NoError(t, err)
	require.Len(t, f.lines(t, d.ID), 1)

	require.NoError(t, f.svc.Delete(ctx, d.ID))
	assert.Empty(t, f.lines(t, d.ID))

	_, err = f.svc.Get(ctx, d.ID)
	assert.ErrorIs(t, err, delivery.ErrDeliveryNotFound)
}

func TestUpdateAssignmentForcesLoaderHelped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	member := f.createStaff(t, "Juma", staff.RoleTurnboy, true)
	d := f.createDelivery(t, "100.00")
	a, err := f.svc.AssignStaff(ctx, delivery.AssignStaffRequest{DeliveryID: d.ID, StaffID: member.ID, Role: string(staff.RoleTurnboy)})
	require.NoError(t, err)
	assert.False(t, a.HelpedLoading)

	loaderRole := string(staff.RoleLoader)
	updated, err := f.svc.UpdateAssignment(ctx, delivery.UpdateAssignmentRequest{ID: a.ID, Role: &loaderRole})
	require.NoError(t, err)
	assert.True(t, updated.HelpedLoading)
}
