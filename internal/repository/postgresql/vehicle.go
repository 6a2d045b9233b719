package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/fleet"
	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/database"
)

type vehicleRepository struct {
	db *database.DB
}

func NewVehicleRepository(db *database.DB) fleet.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, v fleet.Vehicle) (fleet.Vehicle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO vehicles (id, plate_number, vehicle_type, capacity, driver_name, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, plate_number, vehicle_type, capacity, driver_name, is_active, created_at, updated_at
	`

	var created fleet.Vehicle
	err := q.QueryRow(ctx, query,
		v.ID, v.PlateNumber, v.VehicleType, v.Capacity, v.DriverName, v.IsActive,
	).Scan(
		&created.ID, &created.PlateNumber, &created.VehicleType, &created.Capacity,
		&created.DriverName, &created.IsActive, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_vehicle_plate_number") {
			return fleet.Vehicle{}, fleet.ErrPlateNumberExists
		}
		return fleet.Vehicle{}, fmt.Errorf("failed to create vehicle: %w", err)
	}

	return created, nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (fleet.Vehicle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, plate_number, vehicle_type, capacity, driver_name, is_active, created_at, updated_at
		FROM vehicles
		WHERE id = $1
	`

	var v fleet.Vehicle
	err := q.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.PlateNumber, &v.VehicleType, &v.Capacity,
		&v.DriverName, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return fleet.Vehicle{}, fleet.ErrVehicleNotFound
		}
		return fleet.Vehicle{}, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return v, nil
}

func (r *vehicleRepository) List(ctx context.Context, activeOnly bool) ([]fleet.Vehicle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, plate_number, vehicle_type, capacity, driver_name, is_active, created_at, updated_at
		FROM vehicles
	`
	if activeOnly {
		query += " WHERE is_active = true"
	}
	query += " ORDER BY plate_number"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []fleet.Vehicle
	for rows.Next() {
		var v fleet.Vehicle
		if err := rows.Scan(
			&v.ID, &v.PlateNumber, &v.VehicleType, &v.Capacity,
			&v.DriverName, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return vehicles, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v fleet.Vehicle) (fleet.Vehicle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE vehicles
		SET plate_number = $2, vehicle_type = $3, capacity = $4, driver_name = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING id, plate_number, vehicle_type, capacity, driver_name, is_active, created_at, updated_at
	`

	var updated fleet.Vehicle
	err := q.QueryRow(ctx, query,
		v.ID, v.PlateNumber, v.VehicleType, v.Capacity, v.DriverName, v.IsActive,
	).Scan(
		&updated.ID, &updated.PlateNumber, &updated.VehicleType, &updated.Capacity,
		&updated.DriverName, &updated.IsActive, &updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return fleet.Vehicle{}, fleet.ErrVehicleNotFound
		}
		if strings.Contains(err.Error(), "uk_vehicle_plate_number") {
			return fleet.Vehicle{}, fleet.ErrPlateNumberExists
		}
		return fleet.Vehicle{}, fmt.Errorf("failed to update vehicle: %w", err)
	}

	return updated, nil
}

func (r *vehicleRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE vehicles
		SET is_active = false, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return fleet.ErrVehicleNotFound
		}
		return fmt.Errorf("failed to deactivate vehicle: %w", err)
	}

	return nil
}
