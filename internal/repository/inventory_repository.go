package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bloodbridge/internal/domain"
)

// InventoryUpsert is the input for stocking a hospital's inventory row.
type InventoryUpsert struct {
	HospitalID     int64
	BloodGroup     string
	UnitsAvailable int
	UnitsReserved  int
	ExpiryDate     *time.Time
}

// InventoryRepository defines persistence access for blood inventory.
type InventoryRepository interface {
	ListByHospital(ctx context.Context, hospitalID int64) ([]domain.InventoryItem, error)
	Upsert(ctx context.Context, input InventoryUpsert) error
	Summary(ctx context.Context) ([]domain.InventorySummary, error)
}

type inventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository returns a Postgres-backed implementation.
func NewInventoryRepository(pool *pgxpool.Pool) InventoryRepository {
	return &inventoryRepository{pool: pool}
}

func (r *inventoryRepository) ListByHospital(ctx context.Context, hospitalID int64) ([]domain.InventoryItem, error) {
	const query = `
        SELECT id, hospital_id, blood_group, units_available, units_reserved, expiry_date, updated_at
        FROM blood_inventory
        WHERE hospital_id=$1
        ORDER BY blood_group`

	rows, err := r.pool.Query(ctx, query, hospitalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		var item domain.InventoryItem
		if err := rows.Scan(
			&item.ID, &item.HospitalID, &item.BloodGroup,
			&item.UnitsAvailable, &item.UnitsReserved, &item.ExpiryDate, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *inventoryRepository) Upsert(ctx context.Context, input InventoryUpsert) error {
	const query = `
        INSERT INTO blood_inventory (hospital_id, blood_group, units_available, units_reserved, expiry_date)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (hospital_id, blood_group) DO UPDATE SET
            units_available = EXCLUDED.units_available,
            units_reserved = EXCLUDED.units_reserved,
            expiry_date = EXCLUDED.expiry_date,
            updated_at = NOW()`

	_, err := r.pool.Exec(ctx, query,
		input.HospitalID,
		input.BloodGroup,
		input.UnitsAvailable,
		input.UnitsReserved,
		input.ExpiryDate,
	)
	return err
}

func (r *inventoryRepository) Summary(ctx context.Context) ([]domain.InventorySummary, error) {
	const query = `
        SELECT blood_group,
               COALESCE(SUM(units_available), 0),
               COALESCE(SUM(units_reserved), 0),
               COUNT(DISTINCT hospital_id)
        FROM blood_inventory
        GROUP BY blood_group
        ORDER BY blood_group`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := []domain.InventorySummary{}
	for rows.Next() {
		var s domain.InventorySummary
		if err := rows.Scan(&s.BloodGroup, &s.TotalAvailable, &s.TotalReserved, &s.HospitalCount); err != nil {
			return nil, err
		}
		summary = append(summary, s)
	}
	return summary, rows.Err()
}
