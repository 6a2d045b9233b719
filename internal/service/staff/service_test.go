package staff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/staff"
	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/validator"
	"github.com/mwendo-logistics/payroll-backend-go/internal/repository/memory"
)

func newStaffService() *Service {
	return NewService(memory.NewStaffRepository())
}

func TestCreateStaff(t *testing.T) {
	svc := newStaffService()

	member, err := svc.Create(context.Background(), staff.CreateStaffRequest{
		Name: "Juma Mwangi",
		Role: string(staff.RoleTurnboy),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, member.ID)
	assert.Equal(t, staff.RoleTurnboy, member.Role)
	assert.False(t, member.IsLoader)
	assert.True(t, member.IsActive)
}

func TestCreateStaffLoaderRoleNormalizesCapability(t *testing.T) {
	svc := newStaffService()

	// is_loader omitted; the loader role implies the capability.
	member, err := svc.Create(context.Background(), staff.CreateStaffRequest{
		Name: "Otieno",
		Role: string(staff.RoleLoader),
	})
	require.NoError(t, err)
	assert.True(t, member.IsLoader)
}

func TestCreateStaffValidation(t *testing.T) {
	svc := newStaffService()

	_, err := svc.Create(context.Background(), staff.CreateStaffRequest{
		Name: "",
		Role: "driver",
	})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 2)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "role", errs[1].Field)
}

func TestCreateStaffDuplicateName(t *testing.T) {
	svc := newStaffService()
	ctx := context.Background()

	_, err := svc.Create(ctx, staff.CreateStaffRequest{Name: "Juma", Role: string(staff.RoleTurnboy)})
	require.NoError(t, err)

	_, err = svc.Create(ctx, staff.CreateStaffRequest{Name: "Juma", Role: string(staff.RoleLoader)})
	assert.ErrorIs(t, err, staff.ErrStaffNameExists)
}

func TestUpdateStaffToLoaderSetsCapability(t *testing.T) {
	svc := newStaffService()
	ctx := context.Background()

	member, err := svc.Create(ctx, staff.CreateStaffRequest{Name: "Juma", Role: string(staff.RoleTurnboy)})
	require.NoError(t, err)
	require.False(t, member.IsLoader)

	loaderRole := string(staff.RoleLoader)
	updated, err := svc.Update(ctx, staff.UpdateStaffRequest{ID: member.ID, Role: &loaderRole})
	require.NoError(t, err)
	assert.True(t, updated.IsLoader)
}

func TestUpdateStaffUnknownID(t *testing.T) {
	svc := newStaffService()
	name := "Juma"
	_, err := svc.Update(context.Background(), staff.UpdateStaffRequest{ID: "missing", Name: &name})
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}

func TestDeactivateStaffHidesFromActiveList(t *testing.T) {
	svc := newStaffService()
	ctx := context.Background()

	member, err := svc.Create(ctx, staff.CreateStaffRequest{Name: "Juma", Role: string(staff.RoleTurnboy)})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, member.ID))

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCanWorkAs(t *testing.T) {
	turnboy := staff.Staff{Role: staff.RoleTurnboy}
	assert.True(t, turnboy.CanWorkAs(staff.RoleTurnboy))
	assert.False(t, turnboy.CanWorkAs(staff.RoleLoader))

	versatile := staff.Staff{Role: staff.RoleTurnboy, IsLoader: true}
	assert.True(t, versatile.CanWorkAs(staff.RoleLoader))

	loader := staff.Staff{Role: staff.RoleLoader, IsLoader: true}
	assert.True(t, loader.CanWorkAs(staff.RoleLoader))
	assert.False(t, loader.CanWorkAs(staff.RoleTurnboy))
}
