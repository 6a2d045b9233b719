package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/delivery"
	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/staff"
	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/validator"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testDelivery(loadingAmount, turnboyRate string) delivery.Delivery {
	return delivery.Delivery{
		ID:                 "delivery-1",
		LoadingAmount:      dec(loadingAmount),
		TurnboyPaymentRate: dec(turnboyRate),
	}
}

func assignment(staffID string, role staff.Role, helped bool) delivery.Assignment {
	return delivery.Assignment{
		ID:            "assignment-" + staffID,
		DeliveryID:    "delivery-1",
		StaffID:       staffID,
		Role:          role,
		HelpedLoading: helped,
	}
}

func TestComputeLinesTurnboyOnly(t *testing.T) {
	engine := NewEngine(false)
	d := testDelivery("1000.00", "250.00")

	lines, err := engine.ComputeLines(d, []delivery.Assignment{
		assignment("staff-a", staff.RoleTurnboy, false),
	})
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.True(t, lines[0].RolePay.Equal(dec("250.00")))
	assert.True(t, lines[0].LoaderPay.IsZero())
	assert.True(t, lines[0].TotalPay.Equal(dec("250.00")))
}

func TestComputeLinesEvenSplit(t *testing.T) {
	engine := NewEngine(false)
	d := testDelivery("1000.00", "200.00")

	lines, err := engine.ComputeLines(d, []delivery.Assignment{
		assignment("staff-a", staff.RoleLoader, true),
		assignment("staff-b", staff.RoleLoader, true),
		assignment("staff-c", staff.RoleLoader, true),
		assignment("staff-d", staff.RoleLoader, true),
	})
	require.NoError(t, err)
	require.Len(t, lines, 4)

	for _, line := range lines {
		assert.True(t, line.LoaderPay.Equal(dec("250.00")), "staff %s got %s", line.StaffID, line.LoaderPay)
		assert.True(t, line.RolePay.IsZero())
	}
}

func TestComputeLinesScenarios(t *testing.T) {
	engine := NewEngine(false)

	cases := []struct {
		name          string
		loadingAmount string
		assignments   []delivery.Assignment
		want          map[string][3]string // staffID -> role_pay, loader_pay, total_pay
	}{
		{
			name:          "single turnboy loading",
			loadingAmount: "1000.00",
			assignments: []delivery.Assignment{
				assignment("staff-a", staff.RoleTurnboy, true),
			},
			want: map[string][3]string{
				"staff-a": {"200.00", "1000.00", "1200.00"},
			},
		},
		{
			name:          "two turnboys both loading",
			loadingAmount: "1000.00",
			assignments: []delivery.Assignment{
				assignment("staff-a", staff.RoleTurnboy, true),
				assignment("staff-b", staff.RoleTurnboy, true),
			},
			want: map[string][3]string{
				"staff-a": {"200.00", "500.00", "700.00"},
				"staff-b": {"200.00", "500.00", "700.00"},
			},
		},
		{
			name:          "two turnboys only one loading",
			loadingAmount: "1000.00",
			assignments: []delivery.Assignment{
				assignment("staff-a", staff.RoleTurnboy, true),
				assignment("staff-b", staff.RoleTurnboy, false),
			},
			want: map[string][3]string{
				"staff-a": {"200.00", "1000.00", "1200.00"},
				"staff-b": {"200.00", "0.00", "200.00"},
			},
		},
		{
			name:          "turnboy plus two dedicated loaders",
			loadingAmount: "900.00",
			assignments: []delivery.Assignment{
				assignment("staff-a", staff.RoleTurnboy, false),
				assignment("staff-b", staff.RoleLoader, true),
				assignment("staff-c", staff.RoleLoader, true),
			},
			want: map[string][3]string{
				"staff-a": {"200.00", "0.00", "200.00"},
				"staff-b": {"0.00", "450.00", "450.00"},
				"staff-c": {"0.00", "450.00", "450.00"},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := testDelivery(c.loadingAmount, "200.00")
			lines, err := engine.ComputeLines(d, c.assignments)
			require.NoError(t, err)
			require.Len(t, lines, len(c.want))

			for _, line := range lines {
				want, ok := c.want[line.StaffID]
				require.True(t, ok, "unexpected line for %s", line.StaffID)
				assert.True(t, line.RolePay.Equal(dec(want[0])), "%s role_pay = %s, want %s", line.StaffID, line.RolePay, want[0])
				assert.True(t, line.LoaderPay.Equal(dec(want[1])), "%s loader_pay = %s, want %s", line.StaffID, line.LoaderPay, want[1])
				assert.True(t, line.TotalPay.Equal(dec(want[2])), "%s total_pay = %s, want %s", line.StaffID, line.TotalPay, want[2])
			}
		})
	}
}

func TestComputeLinesRoundingResidual(t *testing.T) {
	engine := NewEngine(false)
	d := testDelivery("1000.00", "0.00")

	lines, err := engine.ComputeLines(d, []delivery.Assignment{
		assignment("staff-c", staff.RoleLoader, true),
		assignment("staff-a", staff.RoleLoader, true),
		assignment("staff-b", staff.RoleLoader, true),
	})
	require.NoError(t, err)
	require.Len(t, lines, 3)

	// Lines are ordered by staff ID; the leftover cent goes to the first helper.
	assert.Equal(t, "staff-a", lines[0].StaffID)
	assert.True(t, lines[0].LoaderPay.Equal(dec("333.34")), "got %s", lines[0].LoaderPay)
	assert.True(t, lines[1].LoaderPay.Equal(dec("333.33")))
	assert.True(t, lines[2].LoaderPay.Equal(dec("333.33")))

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LoaderPay)
	}
	assert.True(t, total.Equal(d.LoadingAmount), "shares must sum to the pool, got %s", total)
}

func TestComputeLinesMixedCrew(t *testing.T) {
	engine := NewEngine(false)
	d := testDelivery("600.00", "300.00")

	lines, err := engine.ComputeLines(d, []delivery.Assignment{
		assignment("staff-a", staff.RoleTurnboy, true),
		assignment("staff-b", staff.RoleLoader, true),
		assignment("staff-c", staff.RoleTurnboy, false),
	})
	require.NoError(t, err)
	require.Len(t, lines, 3)

	byStaff := make(map[string]decimal.Decimal)
	for _, line := range lines {
		byStaff[line.StaffID] = line.TotalPay
	}

	// Turnboy who helped loading: rate + share.
	assert.True(t, byStaff["staff-a"].Equal(dec("600.00")))
	// Loader: share only.
	assert.True(t, byStaff["staff-b"].Equal(dec("300.00")))
	// Turnboy who did not help: rate only.
	assert.True(t, byStaff["staff-c"].Equal(dec("300.00")))
}

func TestComputeLinesDualRoleMergesToOneLine(t *testing.T) {
	engine := NewEngine(false)
	d := testDelivery("400.00", "250.00")

	lines, err := engine.ComputeLines(d, []delivery.Assignment{
		assignment("staff-a", staff.RoleTurnboy, false),
		assignment("staff-a", staff.RoleLoader, true),
	})
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.True(t, lines[0].RolePay.Equal(dec("250.00")))
	assert.True(t, lines[0].LoaderPay.Equal(dec("400.00")))
	assert.True(t, lines[0].TotalPay.Equal(dec("650.00")))
}

func TestComputeLinesNoHelpersPoolUnpaid(t *testing.T) {
	engine := NewEngine(false)
	d := testDelivery("500.00", "200.00")

	lines, err := engine.ComputeLines(d, []delivery.Assignment{
		assignment("staff-a", staff.RoleTurnboy, false),
		assignment("staff-b", staff.RoleTurnboy, false),
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)

	for _, line := range lines {
		assert.True(t, line.LoaderPay.IsZero())
		assert.True(t, line.RolePay.Equal(dec("200.00")))
	}
}

func TestComputeLinesFallbackTurnboyPool(t *testing.T) {
	engine := NewEngine(true)
	d := testDelivery("500.00", "200.00")

	lines, err := engine.ComputeLines(d, []delivery.Assignment{
		assignment("staff-a", staff.RoleTurnboy, false),
		assignment("staff-b", staff.RoleTurnboy, false),
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)

	for _, line := range lines {
		assert.True(t, line.LoaderPay.Equal(dec("250.00")), "got %s", line.LoaderPay)
		assert.True(t, line.TotalPay.Equal(dec("450.00")))
	}
}

func TestComputeLinesFallbackSkipsZeroPool(t *testing.T) {
	engine := NewEngine(true)
	d := testDelivery("0.00", "200.00")

	lines, err := engine.ComputeLines(d, []delivery.Assignment{
		assignment("staff-a", staff.RoleTurnboy, false),
	})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].LoaderPay.IsZero())
}

func TestComputeLinesZeroAmountWithHelpers(t *testing.T) {
	engine := NewEngine(false)
	d := testDelivery("0.00", "0.00")

	lines, err := engine.ComputeLines(d, []delivery.Assignment{
		assignment("staff-a", staff.RoleLoader, true),
		assignment("staff-b", staff.RoleLoader, true),
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)

	for _, line := range lines {
		assert.True(t, line.TotalPay.IsZero())
	}
}

func TestComputeLinesDeterministic(t *testing.T) {
	engine := NewEngine(false)
	d := testDelivery("1000.00", "150.00")
	assignments := []delivery.Assignment{
		assignment("staff-b", staff.RoleTurnboy, true),
		assignment("staff-a", staff.RoleLoader, true),
		assignment("staff-c", staff.RoleLoader, true),
	}

	first, err := engine.ComputeLines(d, assignments)
	require.NoError(t, err)
	second, err := engine.ComputeLines(d, assignments)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].StaffID, second[i].StaffID)
		assert.True(t, first[i].TotalPay.Equal(second[i].TotalPay))
	}
}

func TestComputeLinesValidation(t *testing.T) {
	engine := NewEngine(false)

	t.Run("negative loading amount", func(t *testing.T) {
		d := testDelivery("0.00", "0.00")
		d.LoadingAmount = dec("-1.00")
		_, err := engine.ComputeLines(d, nil)
		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "loading_amount", errs[0].Field)
	})

	t.Run("negative turnboy rate", func(t *testing.T) {
		d := testDelivery("0.00", "0.00")
		d.TurnboyPaymentRate = dec("-5.00")
		_, err := engine.ComputeLines(d, nil)
		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "turnboy_payment_rate", errs[0].Field)
	})

	t.Run("loader without helped_loading", func(t *testing.T) {
		d := testDelivery("100.00", "0.00")
		a := assignment("staff-a", staff.RoleLoader, false)
		_, err := engine.ComputeLines(d, []delivery.Assignment{a})
		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "helped_loading", errs[0].Field)
	})

	t.Run("foreign assignment", func(t *testing.T) {
		d := testDelivery("100.00", "0.00")
		a := assignment("staff-a", staff.RoleTurnboy, false)
		a.DeliveryID = "delivery-2"
		_, err := engine.ComputeLines(d, []delivery.Assignment{a})
		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "delivery_id", errs[0].Field)
	})
}

func TestSplitLoadingAmountConservation(t *testing.T) {
	cases := []struct {
		amount  string
		helpers []string
	}{
		{"1000.00", []string{"a", "b", "c"}},
		{"100.00", []string{"a", "b", "c", "d", "e", "f", "g"}},
		{"0.01", []string{"a", "b"}},
		{"999.99", []string{"a", "b", "c", "d"}},
		{"10.00", []string{"a"}},
		// Tiny pool, many helpers: the per-head division rounds to a cent
		// while the pool holds fewer cents than helpers.
		{"0.05", []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}},
		{"0.02", []string{"a", "b", "c"}},
	}

	for _, c := range cases {
		amount := dec(c.amount)
		shares := splitLoadingAmount(amount, c.helpers)
		require.Len(t, shares, len(c.helpers))

		total := decimal.Zero
		for id, share := range shares {
			assert.False(t, share.IsNegative(), "%s split %d ways gave %s a negative share %s", c.amount, len(c.helpers), id, share)
			total = total.Add(share)
		}
		assert.True(t, total.Equal(amount), "%s split %d ways sums to %s", c.amount, len(c.helpers), total)
	}
}

func TestSplitLoadingAmountLeftoverCentsInStaffOrder(t *testing.T) {
	// 0.05 over 9 helpers: five helpers get a cent, the rest get zero.
	shares := splitLoadingAmount(dec("0.05"), []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"})

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		assert.True(t, shares[id].Equal(dec("0.01")), "helper %s got %s", id, shares[id])
	}
	for _, id := range []string{"f", "g", "h", "i"} {
		assert.True(t, shares[id].IsZero(), "helper %s got %s", id, shares[id])
	}
}
