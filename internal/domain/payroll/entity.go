package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerLine is one materialized pay record per (staff, delivery). Lines are
// owned by the payroll engine: they are derived from the delivery's
// assignment set and are never edited directly.
type LedgerLine struct {
	ID         string
	StaffID    string
	DeliveryID string
	RolePay    decimal.Decimal
	LoaderPay  decimal.Decimal
	// TotalPay is always recomputed as RolePay + LoaderPay, never trusted
	// from a caller.
	TotalPay     decimal.Decimal
	DateRecorded time.Time

	// Joined fields
	StaffName    *string
	DeliveryDate *time.Time
}

// PayTotals is the aggregate of ledger lines over a date window.
type PayTotals struct {
	RolePayment   decimal.Decimal
	LoaderPayment decimal.Decimal
	TotalPayment  decimal.Decimal
}

// ZeroTotals returns an all-zero aggregate; aggregation over an empty window
// yields zeros, never absence.
func ZeroTotals() PayTotals {
	return PayTotals{
		RolePayment:   decimal.Zero,
		LoaderPayment: decimal.Zero,
		TotalPayment:  decimal.Zero,
	}
}

// MonthlyPayment is the materialized calendar-month summary for one staff
// member. Amounts are recomputed on demand; payment status is operator-owned
// and survives rematerialization.
type MonthlyPayment struct {
	ID            string
	StaffID       string
	Year          int
	Month         int
	RolePayment   decimal.Decimal
	LoaderPayment decimal.Decimal
	TotalPayment  decimal.Decimal
	IsPaid        bool
	PaymentDate   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	StaffName *string
}

// PaymentPeriod is the same summary over an arbitrary [start, end] range.
// Overlapping periods for the same staff member are permitted.
type PaymentPeriod struct {
	ID            string
	StaffID       string
	PeriodStart   time.Time
	PeriodEnd     time.Time
	RolePayment   decimal.Decimal
	LoaderPayment decimal.Decimal
	TotalPayment  decimal.Decimal
	IsPaid        bool
	PaymentDate   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	StaffName *string
}

// LedgerFilter narrows ledger line listings. All fields optional; date
// bounds are inclusive and apply to the delivery date.
type LedgerFilter struct {
	StaffID    *string
	DeliveryID *string
	From       *time.Time
	To         *time.Time
}

// MonthlySummary is the company-wide paid/unpaid breakdown for one month.
type MonthlySummary struct {
	Year         int
	Month        int
	TotalPaid    decimal.Decimal
	TotalUnpaid  decimal.Decimal
	TotalPayment decimal.Decimal
	PaidCount    int
	UnpaidCount  int
	StaffCount   int
}
