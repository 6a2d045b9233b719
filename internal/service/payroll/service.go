package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/delivery"
	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/payroll"
	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/database"
)

// Service keeps the ledger an exact image of the current delivery and
// assignment state. Every recompute runs in one transaction per delivery
// with the delivery row locked, so two recomputes of the same delivery
// cannot interleave; deliveries are independent units.
type Service struct {
	tx             database.Transactor
	deliveryRepo   delivery.DeliveryRepository
	assignmentRepo delivery.AssignmentRepository
	ledgerRepo     payroll.LedgerRepository
	engine         Engine
}

func NewService(
	tx database.Transactor,
	deliveryRepo delivery.DeliveryRepository,
	assignmentRepo delivery.AssignmentRepository,
	ledgerRepo payroll.LedgerRepository,
	engine Engine,
) *Service {
	return &Service{
		tx:             tx,
		deliveryRepo:   deliveryRepo,
		assignmentRepo: assignmentRepo,
		ledgerRepo:     ledgerRepo,
		engine:         engine,
	}
}

var _ payroll.Trigger = (*Service)(nil)

// Recompute rebuilds the full ledger line set for one delivery: upserts a
// line per assigned staff member and prunes lines for staff no longer
// assigned. Idempotent; applied atomically or not at all.
func (s *Service) Recompute(ctx context.Context, deliveryID string) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		d, err := s.deliveryRepo.GetByIDForUpdate(ctx, deliveryID)
		if err != nil {
			return err
		}

		assignments, err := s.assignmentRepo.ListByDelivery(ctx, deliveryID)
		if err != nil {
			return fmt.Errorf("failed to list assignments for delivery %s: %w", deliveryID, err)
		}

		// Nobody assigned: the delivery keeps no ledger lines at all.
		if len(assignments) == 0 {
			return s.ledgerRepo.DeleteByDelivery(ctx, deliveryID)
		}

		lines, err := s.engine.ComputeLines(d, assignments)
		if err != nil {
			return err
		}

		keep := make([]string, 0, len(lines))
		for _, line := range lines {
			if _, err := s.ledgerRepo.UpsertLine(ctx, line); err != nil {
				return fmt.Errorf("failed to upsert ledger line for staff %s: %w", line.StaffID, err)
			}
			keep = append(keep, line.StaffID)
		}

		return s.ledgerRepo.DeleteByDeliveryExcept(ctx, deliveryID, keep)
	})
}

// OnDeliverySaved implements payroll.Trigger.
func (s *Service) OnDeliverySaved(ctx context.Context, deliveryID string) error {
	return s.Recompute(ctx, deliveryID)
}

// OnDeliveryDeleted implements payroll.Trigger. No lines survive a deleted
// delivery.
func (s *Service) OnDeliveryDeleted(ctx context.Context, deliveryID string) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.ledgerRepo.DeleteByDelivery(ctx, deliveryID)
	})
}

// OnAssignmentSaved implements payroll.Trigger. Any assignment change can
// move the per-helper share, so the whole delivery is recomputed.
func (s *Service) OnAssignmentSaved(ctx context.Context, a delivery.Assignment) error {
	return s.Recompute(ctx, a.DeliveryID)
}

// OnAssignmentDeleted implements payroll.Trigger.
func (s *Service) OnAssignmentDeleted(ctx context.Context, a delivery.Assignment) error {
	return s.Recompute(ctx, a.DeliveryID)
}

// GetLedgerLines is the read path for reporting and export callers.
func (s *Service) GetLedgerLines(ctx context.Context, filter payroll.LedgerFilter) ([]payroll.LedgerLine, error) {
	return s.ledgerRepo.ListLines(ctx, filter)
}

// CheckConsistency reports whether the ledger staff set for a delivery
// matches its assignment set. Divergence should be unreachable given the
// atomic recompute contract.
func (s *Service) CheckConsistency(ctx context.Context, deliveryID string) error {
	assignments, err := s.assignmentRepo.ListByDelivery(ctx, deliveryID)
	if err != nil {
		return err
	}
	lines, err := s.ledgerRepo.ListLines(ctx, payroll.LedgerFilter{DeliveryID: &deliveryID})
	if err != nil {
		return err
	}

	assigned := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		assigned[a.StaffID] = true
	}
	ledgered := make(map[string]bool, len(lines))
	for _, l := range lines {
		ledgered[l.StaffID] = true
	}

	if len(assigned) != len(ledgered) {
		return payroll.ErrLedgerInconsistent
	}
	for id := range assigned {
		if !ledgered[id] {
			return payroll.ErrLedgerInconsistent
		}
	}
	return nil
}

// Reconcile is the corrective pass for a detected divergence: a full
// recompute, or a teardown when the delivery itself is gone.
func (s *Service) Reconcile(ctx context.Context, deliveryID string) error {
	err := s.Recompute(ctx, deliveryID)
	if errors.Is(err, delivery.ErrDeliveryNotFound) {
		return s.OnDeliveryDeleted(ctx, deliveryID)
	}
	return err
}
