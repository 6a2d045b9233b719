package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mwendo-logistics/payroll-backend-go/internal/domain/delivery"
	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/database"
)

type deliveryRepository struct {
	db *database.DB
}

func NewDeliveryRepository(db *database.DB) delivery.DeliveryRepository {
	return &deliveryRepository{db: db}
}

const deliveryColumns = `
	d.id, d.date, d.vehicle_id, d.destination, d.loading_amount,
	d.turnboy_payment_rate, d.items_carried, d.notes, d.status,
	d.created_at, d.updated_at, v.plate_number
`

func scanDelivery(row pgx.Row) (delivery.Delivery, error) {
	var d delivery.Delivery
	err := row.Scan(
		&d.ID, &d.Date, &d.VehicleID, &d.Destination, &d.LoadingAmount,
		&d.TurnboyPaymentRate, &d.ItemsCarried, &d.Notes, &d.Status,
		&d.CreatedAt, &d.UpdatedAt, &d.PlateNumber,
	)
	return d, err
}

func (r *deliveryRepository) Create(ctx context.Context, d delivery.Delivery) (delivery.Delivery, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO deliveries (id, date, vehicle_id, destination, loading_amount,
			turnboy_payment_rate, items_carried, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, date, vehicle_id, destination, loading_amount,
			turnboy_payment_rate, items_carried, notes, status,
			created_at, updated_at, NULL::text AS plate_number
	`

	created, err := scanDelivery(q.QueryRow(ctx, query,
		d.ID, d.Date, d.VehicleID, d.Destination, d.LoadingAmount,
		d.TurnboyPaymentRate, d.ItemsCarried, d.Notes, d.Status,
	))
	if err != nil {
		return delivery.Delivery{}, fmt.Errorf("failed to create delivery: %w", err)
	}

	return created, nil
}

func (r *deliveryRepository) GetByID(ctx context.Context, id string) (delivery.Delivery, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries d
		JOIN vehicles v ON v.id = d.vehicle_id
		WHERE d.id = $1
	`

	d, err := scanDelivery(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return delivery.Delivery{}, delivery.ErrDeliveryNotFound
		}
		return delivery.Delivery{}, fmt.Errorf("failed to get delivery: %w", err)
	}

	return d, nil
}

// GetByIDForUpdate locks the delivery row until the surrounding transaction
// ends, serializing recomputes of the same delivery.
func (r *deliveryRepository) GetByIDForUpdate(ctx context.Context, id string) (delivery.Delivery, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, date, vehicle_id, destination, loading_amount,
			turnboy_payment_rate, items_carried, notes, status,
			created_at, updated_at, NULL::text AS plate_number
		FROM deliveries
		WHERE id = $1
		FOR UPDATE
	`

	d, err := scanDelivery(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return delivery.Delivery{}, delivery.ErrDeliveryNotFound
		}
		return delivery.Delivery{}, fmt.Errorf("failed to lock delivery: %w", err)
	}

	return d, nil
}

func (r *deliveryRepository) List(ctx context.Context, filter delivery.ListDeliveriesFilter) ([]delivery.Delivery, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries d
		JOIN vehicles v ON v.id = d.vehicle_id
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.From != nil {
		query += fmt.Sprintf(" AND d.date >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND d.date <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}
	if filter.VehicleID != nil {
		query += fmt.Sprintf(" AND d.vehicle_id = $%d", argIdx)
		args = append(args, *filter.VehicleID)
		argIdx++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND d.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	query += " ORDER BY d.date DESC, d.created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []delivery.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delivery: %w", err)
		}
		deliveries = append(deliveries, d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}

func (r *deliveryRepository) Update(ctx context.Context, d delivery.Delivery) (delivery.Delivery, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE deliveries
		SET date = $2, vehicle_id = $3, destination = $4, loading_amount = $5,
			turnboy_payment_rate = $6, items_carried = $7, notes = $8, status = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, date, vehicle_id, destination, loading_amount,
			turnboy_payment_rate, items_carried, notes, status,
			created_at, updated_at, NULL::text AS plate_number
	`

	updated, err := scanDelivery(q.QueryRow(ctx, query,
		d.ID, d.Date, d.VehicleID, d.Destination, d.LoadingAmount,
		d.TurnboyPaymentRate, d.ItemsCarried, d.Notes, d.Status,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return delivery.Delivery{}, delivery.ErrDeliveryNotFound
		}
		return delivery.Delivery{}, fmt.Errorf("failed to update delivery: %w", err)
	}

	return updated, nil
}

// Delete removes the delivery; assignments and ledger lines go with it via
// ON DELETE CASCADE.
func (r *deliveryRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM deliveries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete delivery: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return delivery.ErrDeliveryNotFound
	}

	return nil
}
