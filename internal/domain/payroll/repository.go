package payroll

import (
	"context"
	"time"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/delivery"
)

type LedgerRepository interface {
	// UpsertLine inserts or replaces the line keyed by (staff, delivery).
	// TotalPay is recomputed from RolePay + LoaderPay regardless of input.
	UpsertLine(ctx context.Context, line LedgerLine) (LedgerLine, error)
	ListLines(ctx context.Context, filter LedgerFilter) ([]LedgerLine, error)
	// DeleteByDeliveryExcept prunes lines for staff no longer assigned.
	DeleteByDeliveryExcept(ctx context.Context, deliveryID string, keepStaffIDs []string) error
	DeleteByDelivery(ctx context.Context, deliveryID string) error
	// SumByStaffAndDateRange aggregates lines whose delivery date falls in
	// [from, to] inclusive. Returns zero totals when no lines exist.
	SumByStaffAndDateRange(ctx context.Context, staffID string, from, to time.Time) (PayTotals, error)
}

type PaymentRepository interface {
	// UpsertMonthly updates amounts only; an existing row keeps its IsPaid
	// and PaymentDate.
	UpsertMonthly(ctx context.Context, p MonthlyPayment) (MonthlyPayment, error)
	GetMonthly(ctx context.Context, staffID string, year, month int) (MonthlyPayment, error)
	GetMonthlyByID(ctx context.Context, id string) (MonthlyPayment, error)
	ListMonthly(ctx context.Context, year, month int) ([]MonthlyPayment, error)
	SetMonthlyPaid(ctx context.Context, id string, isPaid bool, paymentDate *time.Time) error

	UpsertPeriod(ctx context.Context, p PaymentPeriod) (PaymentPeriod, error)
	GetPeriod(ctx context.Context, staffID string, start, end time.Time) (PaymentPeriod, error)
	GetPeriodByID(ctx context.Context, id string) (PaymentPeriod, error)
	ListPeriodsByStaff(ctx context.Context, staffID string) ([]PaymentPeriod, error)
	SetPeriodPaid(ctx context.Context, id string, isPaid bool, paymentDate *time.Time) error
}

// Trigger is the recompute contract the data-mutation services call
// synchronously after each successful write, replacing implicit persistence
// hooks with an explicit collaborator.
type Trigger interface {
	OnDeliverySaved(ctx context.Context, deliveryID string) error
	OnDeliveryDeleted(ctx context.Context, deliveryID string) error
	OnAssignmentSaved(ctx context.Context, a delivery.Assignment) error
	OnAssignmentDeleted(ctx context.Context, a delivery.Assignment) error
}
