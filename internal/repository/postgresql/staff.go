package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/staff"
	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/database"
)

type staffRepository struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, s staff.Staff) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO staff (id, name, phone_number, role, is_loader, date_joined, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, phone_number, role, is_loader, date_joined, is_active, created_at, updated_at
	`

	var created staff.Staff
	err := q.QueryRow(ctx, query,
		s.ID, s.Name, s.PhoneNumber, s.Role, s.IsLoader, s.DateJoined, s.IsActive,
	).Scan(
		&created.ID, &created.Name, &created.PhoneNumber, &created.Role,
		&created.IsLoader, &created.DateJoined, &created.IsActive,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_staff_name") {
			return staff.Staff{}, staff.ErrStaffNameExists
		}
		return staff.Staff{}, fmt.Errorf("failed to create staff member: %w", err)
	}

	return created, nil
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, phone_number, role, is_loader, date_joined, is_active, created_at, updated_at
		FROM staff
		WHERE id = $1
	`

	var s staff.Staff
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.PhoneNumber, &s.Role, &s.IsLoader,
		&s.DateJoined, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, fmt.Errorf("failed to get staff member: %w", err)
	}

	return s, nil
}

func (r *staffRepository) GetByName(ctx context.Context, name string) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, phone_number, role, is_loader, date_joined, is_active, created_at, updated_at
		FROM staff
		WHERE name = $1
	`

	var s staff.Staff
	err := q.QueryRow(ctx, query, name).Scan(
		&s.ID, &s.Name, &s.PhoneNumber, &s.Role, &s.IsLoader,
		&s.DateJoined, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, fmt.Errorf("failed to get staff member by name: %w", err)
	}

	return s, nil
}

func (r *staffRepository) List(ctx context.Context, activeOnly bool) ([]staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, phone_number, role, is_loader, date_joined, is_active, created_at, updated_at
		FROM staff
	`
	if activeOnly {
		query += " WHERE is_active = true"
	}
	query += " ORDER BY name"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	var members []staff.Staff
	for rows.Next() {
		var s staff.Staff
		if err := rows.Scan(
			&s.ID, &s.Name, &s.PhoneNumber, &s.Role, &s.IsLoader,
			&s.DateJoined, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan staff member: %w", err)
		}
		members = append(members, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}

func (r *staffRepository) Update(ctx context.Context, s staff.Staff) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE staff
		SET name = $2, phone_number = $3, role = $4, is_loader = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, phone_number, role, is_loader, date_joined, is_active, created_at, updated_at
	`

	var updated staff.Staff
	err := q.QueryRow(ctx, query,
		s.ID, s.Name, s.PhoneNumber, s.Role, s.IsLoader, s.IsActive,
	).Scan(
		&updated.ID, &updated.Name, &updated.PhoneNumber, &updated.Role,
		&updated.IsLoader, &updated.DateJoined, &updated.IsActive,
		&updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		if strings.Contains(err.Error(), "uk_staff_name") {
			return staff.Staff{}, staff.ErrStaffNameExists
		}
		return staff.Staff{}, fmt.Errorf("failed to update staff member: %w", err)
	}

	return updated, nil
}

func (r *staffRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE staff
		SET is_active = false, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return staff.ErrStaffNotFound
		}
		return fmt.Errorf("failed to deactivate staff member: %w", err)
	}

	return nil
}
