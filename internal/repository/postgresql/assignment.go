package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/delivery"
	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/database"
)

type assignmentRepository struct {
	db *database.DB
}

func NewAssignmentRepository(db *database.DB) delivery.AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, a delivery.Assignment) (delivery.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO staff_assignments (id, delivery_id, staff_id, role, helped_loading)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, delivery_id, staff_id, role, helped_loading, created_at
	`

	var created delivery.Assignment
	err := q.QueryRow(ctx, query,
		a.ID, a.DeliveryID, a.StaffID, a.Role, a.HelpedLoading,
	).Scan(
		&created.ID, &created.DeliveryID, &created.StaffID,
		&created.Role, &created.HelpedLoading, &created.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_assignment_delivery_staff_role") {
			return delivery.Assignment{}, delivery.ErrAssignmentExists
		}
		return delivery.Assignment{}, fmt.Errorf("failed to create assignment: %w", err)
	}

	return created, nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id string) (delivery.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.delivery_id, a.staff_id, a.role, a.helped_loading, a.created_at, s.name
		FROM staff_assignments a
		JOIN staff s ON s.id = a.staff_id
		WHERE a.id = $1
	`

	var a delivery.Assignment
	err := q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.DeliveryID, &a.StaffID, &a.Role, &a.HelpedLoading, &a.CreatedAt, &a.StaffName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return delivery.Assignment{}, delivery.ErrAssignmentNotFound
		}
		return delivery.Assignment{}, fmt.Errorf("failed to get assignment: %w", err)
	}

	return a, nil
}

func (r *assignmentRepository) ListByDelivery(ctx context.Context, deliveryID string) ([]delivery.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.delivery_id, a.staff_id, a.role, a.helped_loading, a.created_at, s.name
		FROM staff_assignments a
		JOIN staff s ON s.id = a.staff_id
		WHERE a.delivery_id = $1
		ORDER BY a.staff_id
	`

	rows, err := q.Query(ctx, query, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []delivery.Assignment
	for rows.Next() {
		var a delivery.Assignment
		if err := rows.Scan(
			&a.ID, &a.DeliveryID, &a.StaffID, &a.Role, &a.HelpedLoading, &a.CreatedAt, &a.StaffName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *assignmentRepository) Update(ctx context.Context, a delivery.Assignment) (delivery.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE staff_assignments
		SET role = $2, helped_loading = $3
		WHERE id = $1
		RETURNING id, delivery_id, staff_id, role, helped_loading, created_at
	`

	var updated delivery.Assignment
	err := q.QueryRow(ctx, query, a.ID, a.Role, a.HelpedLoading).Scan(
		&updated.ID, &updated.DeliveryID, &updated.StaffID,
		&updated.Role, &updated.HelpedLoading, &updated.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return delivery.Assignment{}, delivery.ErrAssignmentNotFound
		}
		if strings.Contains(err.Error(), "uk_assignment_delivery_staff_role") {
			return delivery.Assignment{}, delivery.ErrAssignmentExists
		}
		return delivery.Assignment{}, fmt.Errorf("failed to update assignment: %w", err)
	}

	return updated, nil
}

func (r *assignmentRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM staff_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return delivery.ErrAssignmentNotFound
	}

	return nil
}
