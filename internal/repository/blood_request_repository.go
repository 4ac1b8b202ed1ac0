package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bloodbridge/internal/domain"
)

// RequestUpdate carries the partially updatable request fields. Nil means
// leave unchanged.
type RequestUpdate struct {
	Status      *domain.RequestStatus
	Description *string
}

// BloodRequestRepository defines persistence access for blood requests.
type BloodRequestRepository interface {
	Create(ctx context.Context, req *domain.BloodRequest) error
	ListByHospital(ctx context.Context, hospitalID int64) ([]domain.BloodRequest, error)
	Update(ctx context.Context, requestID, hospitalID int64, update RequestUpdate) error
	ListOpen(ctx context.Context, filter domain.RequestFilter) ([]domain.OpenRequest, error)
	ListEmergency(ctx context.Context) ([]domain.OpenRequest, error)
}

type bloodRequestRepository struct {
	pool *pgxpool.Pool
}

// NewBloodRequestRepository returns a Postgres-backed implementation.
func NewBloodRequestRepository(pool *pgxpool.Pool) BloodRequestRepository {
	return &bloodRequestRepository{pool: pool}
}

func (r *bloodRequestRepository) Create(ctx context.Context, req *domain.BloodRequest) error {
	const query = `
        INSERT INTO blood_requests
            (public_id, hospital_id, blood_group, units_required, urgency, description, status)
        VALUES ($1, $2, $3, $4, $5, $6, 'active')
        RETURNING id, status, created_at, updated_at`

	req.PublicID = uuid.NewString()
	return r.pool.QueryRow(ctx, query,
		req.PublicID,
		req.HospitalID,
		req.BloodGroup,
		req.UnitsRequired,
		req.Urgency,
		req.Description,
	).Scan(&req.ID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
}

func (r *bloodRequestRepository) ListByHospital(ctx context.Context, hospitalID int64) ([]domain.BloodRequest, error) {
	const query = `
        SELECT id, public_id, hospital_id, blood_group, units_required, urgency,
               description, status, fulfilled_date, created_at, updated_at
        FROM blood_requests
        WHERE hospital_id=$1
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, hospitalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

// Update applies a partial update after confirming ownership.
func (r *bloodRequestRepository) Update(ctx context.Context, requestID, hospitalID int64, update RequestUpdate) error {
	query := `UPDATE blood_requests SET updated_at=NOW()`
	args := []any{}

	if update.Status != nil {
		args = append(args, *update.Status)
		query += `, status=$` + itoa(len(args))
	}
	if update.Description != nil {
		args = append(args, *update.Description)
		query += `, description=$` + itoa(len(args))
	}

	args = append(args, requestID)
	query += ` WHERE id=$` + itoa(len(args))
	args = append(args, hospitalID)
	query += ` AND hospital_id=$` + itoa(len(args))

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bloodRequestRepository) ListOpen(ctx context.Context, filter domain.RequestFilter) ([]domain.OpenRequest, error) {
	query := openRequestSelect + `
        WHERE br.status = 'active' AND u.status = 'active' AND hd.verification_status = 'verified'`

	args := []any{}
	if filter.BloodGroup != "" {
		args = append(args, filter.BloodGroup)
		query += ` AND br.blood_group = $` + itoa(len(args))
	}
	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		query += ` AND hd.location ILIKE $` + itoa(len(args))
	}
	if filter.Urgency != "" {
		args = append(args, filter.Urgency)
		query += ` AND br.urgency = $` + itoa(len(args))
	}
	query += ` ORDER BY ` + urgencyRankExpr + ` DESC, br.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOpenRequests(rows)
}

func (r *bloodRequestRepository) ListEmergency(ctx context.Context) ([]domain.OpenRequest, error) {
	const query = openRequestSelect + `
        WHERE br.status = 'active' AND br.urgency = 'high'
          AND u.status = 'active' AND hd.verification_status = 'verified'
          AND br.created_at >= NOW() - INTERVAL '24 hours'
        ORDER BY br.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOpenRequests(rows)
}

// urgency is a TEXT column, so a bare ORDER BY would sort alphabetically
// and put 'medium' above 'high'. The rank expression mirrors
// domain.RequestUrgency.Rank.
var urgencyRankExpr = fmt.Sprintf(
	`CASE br.urgency WHEN '%s' THEN %d WHEN '%s' THEN %d ELSE %d END`,
	domain.UrgencyHigh, domain.UrgencyHigh.Rank(),
	domain.UrgencyMedium, domain.UrgencyMedium.Rank(),
	domain.UrgencyLow.Rank(),
)

const openRequestSelect = `
        SELECT br.id, br.public_id, br.hospital_id, br.blood_group, br.units_required,
               br.urgency, br.description, br.status, br.fulfilled_date, br.created_at, br.updated_at,
               hd.hospital_name, hd.location, hd.contact_phone, hd.contact_email
        FROM blood_requests br
        JOIN hospital_details hd ON br.hospital_id = hd.user_id
        JOIN users u ON br.hospital_id = u.id`

func scanRequests(rows pgx.Rows) ([]domain.BloodRequest, error) {
	requests := []domain.BloodRequest{}
	for rows.Next() {
		var req domain.BloodRequest
		if err := rows.Scan(
			&req.ID, &req.PublicID, &req.HospitalID, &req.BloodGroup, &req.UnitsRequired,
			&req.Urgency, &req.Description, &req.Status, &req.FulfilledDate,
			&req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func scanOpenRequests(rows pgx.Rows) ([]domain.OpenRequest, error) {
	requests := []domain.OpenRequest{}
	for rows.Next() {
		var req domain.OpenRequest
		if err := rows.Scan(
			&req.ID, &req.PublicID, &req.HospitalID, &req.BloodGroup, &req.UnitsRequired,
			&req.Urgency, &req.BloodRequest.Description, &req.Status, &req.FulfilledDate,
			&req.CreatedAt, &req.UpdatedAt,
			&req.HospitalName, &req.HospitalLocation, &req.ContactPhone, &req.ContactEmail,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
