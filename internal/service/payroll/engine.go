package payroll

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/delivery"
	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/payroll"
	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/staff"
	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/validator"
)

// Engine derives ledger lines from a delivery and its assignment set. It is
// a pure computation: no storage access, safe to run any number of times.
type Engine struct {
	// fallbackTurnboyPool splits the loading amount across the delivery's
	// turnboys when nobody is marked as having helped loading. Off by
	// default: the loading amount then goes unpaid.
	fallbackTurnboyPool bool
}

func NewEngine(fallbackTurnboyPool bool) Engine {
	return Engine{fallbackTurnboyPool: fallbackTurnboyPool}
}

// crewEntry is the per-staff view of possibly multiple assignments. The
// ledger is keyed by (staff, delivery), so a staff member assigned both as
// turnboy and loader still yields a single line.
type crewEntry struct {
	staffID   string
	isTurnboy bool
	helped    bool
}

// ComputeLines returns the complete ledger line set for the delivery, one
// line per assigned staff member, ordered by staff ID. Validation failures
// reject the whole computation; nothing is partially produced.
func (e Engine) ComputeLines(d delivery.Delivery, assignments []delivery.Assignment) ([]payroll.LedgerLine, error) {
	if err := e.validate(d, assignments); err != nil {
		return nil, err
	}

	crew := make(map[string]*crewEntry)
	order := make([]string, 0, len(assignments))
	for _, a := range assignments {
		entry, ok := crew[a.StaffID]
		if !ok {
			entry = &crewEntry{staffID: a.StaffID}
			crew[a.StaffID] = entry
			order = append(order, a.StaffID)
		}
		if a.Role == staff.RoleTurnboy {
			entry.isTurnboy = true
		}
		if a.HelpedLoading {
			entry.helped = true
		}
	}
	sort.Strings(order)

	helpers := make([]string, 0, len(order))
	for _, id := range order {
		if crew[id].helped {
			helpers = append(helpers, id)
		}
	}

	// Zero-helper fallback: two revisions of the business rules disagreed on
	// whether an unclaimed loading pool falls to the turnboys; configurable.
	if len(helpers) == 0 && e.fallbackTurnboyPool && d.LoadingAmount.IsPositive() {
		for _, id := range order {
			if crew[id].isTurnboy {
				crew[id].helped = true
				helpers = append(helpers, id)
			}
		}
	}

	shares := splitLoadingAmount(d.LoadingAmount, helpers)

	lines := make([]payroll.LedgerLine, 0, len(order))
	for _, id := range order {
		entry := crew[id]

		rolePay := decimal.Zero
		if entry.isTurnboy {
			rolePay = d.TurnboyPaymentRate
		}
		loaderPay := decimal.Zero
		if entry.helped {
			loaderPay = shares[id]
		}

		lines = append(lines, payroll.LedgerLine{
			StaffID:    id,
			DeliveryID: d.ID,
			RolePay:    rolePay,
			LoaderPay:  loaderPay,
			TotalPay:   rolePay.Add(loaderPay),
		})
	}

	return lines, nil
}

// splitLoadingAmount divides the pool equally among helpers using a
// largest-remainder split: every share is the pool over n rounded down to two
// decimal places, and the leftover cents go one each to the first helpers in
// stable staff-ID order. Shares sum to the pool exactly and are never
// negative.
func splitLoadingAmount(amount decimal.Decimal, helpers []string) map[string]decimal.Decimal {
	shares := make(map[string]decimal.Decimal, len(helpers))
	n := len(helpers)
	if n == 0 {
		return shares
	}

	count := decimal.NewFromInt(int64(n))
	base := amount.Div(count).RoundDown(2)
	leftover := amount.Sub(base.Mul(count))

	cent := decimal.New(1, -2)
	extraCents := leftover.Div(cent).IntPart()

	for i, id := range helpers {
		share := base
		if int64(i) < extraCents {
			share = share.Add(cent)
		}
		shares[id] = share
	}

	// Sub-cent dust can only appear if the pool itself carries more than two
	// decimal places; park it on the first helper so the sum stays exact.
	dust := leftover.Sub(cent.Mul(decimal.NewFromInt(extraCents)))
	if !dust.IsZero() {
		shares[helpers[0]] = shares[helpers[0]].Add(dust)
	}
	return shares
}

func (e Engine) validate(d delivery.Delivery, assignments []delivery.Assignment) error {
	var errs validator.ValidationErrors

	if d.LoadingAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "loading_amount", Message: "must be non-negative"})
	}
	if d.TurnboyPaymentRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "turnboy_payment_rate", Message: "must be non-negative"})
	}
	for _, a := range assignments {
		if a.DeliveryID != d.ID {
			errs = append(errs, validator.ValidationError{Field: "delivery_id", Message: "assignment does not belong to the delivery"})
		}
		if a.Role == staff.RoleLoader && !a.HelpedLoading {
			errs = append(errs, validator.ValidationError{Field: "helped_loading", Message: "must be true for loader assignments"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
