package payroll

import "errors"

var (
	ErrLedgerLineNotFound     = errors.New("ledger line not found")
	ErrMonthlyPaymentNotFound = errors.New("monthly payment not found")
	ErrPaymentPeriodNotFound  = errors.New("payment period not found")
	// ErrLedgerInconsistent - the ledger diverged from the assignment set.
	// Unreachable under the atomic recompute contract; the corrective action
	// is a Reconcile pass, not a crash.
	ErrLedgerInconsistent = errors.New("ledger lines diverged from assignment set")
)
