package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bloodbridge/internal/domain"
)

// donorCooldownDays is the minimum gap between whole-blood donations.
const donorCooldownDays = 56

// DonationRepository defines persistence access for donation records.
type DonationRepository interface {
	Record(ctx context.Context, input domain.NewDonation) (int64, error)
	ListByHospital(ctx context.Context, hospitalID int64) ([]domain.DonationRecord, error)
	ListByDonor(ctx context.Context, donorID int64) ([]domain.DonationRecord, error)
	ListRecentByDonor(ctx context.Context, donorID int64, limit int) ([]domain.DonationRecord, error)
	ListRecent(ctx context.Context, limit int) ([]domain.DonationRecord, error)
	ListAll(ctx context.Context) ([]domain.DonationRecord, error)
	GetByID(ctx context.Context, id int64) (*domain.DonationRecord, error)
	Search(ctx context.Context, filter domain.DonationFilter) ([]domain.DonationRecord, error)
}

type donationRepository struct {
	pool *pgxpool.Pool
}

// NewDonationRepository returns a Postgres-backed implementation.
func NewDonationRepository(pool *pgxpool.Pool) DonationRepository {
	return &donationRepository{pool: pool}
}

// Record inserts the donation, its credit transaction, the donor profile
// update and the optional request decrement as one transaction. Either all
// four writes land or none do.
func (r *donationRepository) Record(ctx context.Context, input domain.NewDonation) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	const insertDonation = `
        INSERT INTO donations
            (public_id, donor_id, hospital_id, blood_request_id, blood_group,
             units_donated, donation_date, status, credits_awarded, notes,
             verified_by, verification_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, 'completed', $8, $9, $10, NOW())
        RETURNING id`

	var donationID int64
	if err := tx.QueryRow(ctx, insertDonation,
		uuid.NewString(),
		input.DonorID,
		input.HospitalID,
		input.BloodRequestID,
		input.BloodGroup,
		input.UnitsDonated,
		input.DonationDate,
		input.CreditsAwarded,
		input.Notes,
		input.HospitalID,
	).Scan(&donationID); err != nil {
		return 0, err
	}

	const insertCredit = `
        INSERT INTO credits (user_id, transaction_type, amount, description, reference_id, reference_type)
        VALUES ($1, 'earned', $2, 'Blood donation', $3, 'donation')`
	if _, err := tx.Exec(ctx, insertCredit, input.DonorID, input.CreditsAwarded, donationID); err != nil {
		return 0, err
	}

	const updateProfile = `
        UPDATE donor_profiles SET
            total_donations = total_donations + 1,
            total_credits = total_credits + $1,
            last_donation_date = $2,
            next_eligible_date = $2::date + $3
        WHERE user_id = $4`
	if _, err := tx.Exec(ctx, updateProfile,
		input.CreditsAwarded, input.DonationDate, donorCooldownDays, input.DonorID,
	); err != nil {
		return 0, err
	}

	if input.BloodRequestID != nil {
		const updateRequest = `
            UPDATE blood_requests SET
                units_required = units_required - $1,
                status = CASE WHEN units_required - $1 <= 0 THEN 'fulfilled' ELSE status END,
                fulfilled_date = CASE WHEN units_required - $1 <= 0 THEN NOW() ELSE fulfilled_date END,
                updated_at = NOW()
            WHERE id = $2`
		if _, err := tx.Exec(ctx, updateRequest, input.UnitsDonated, *input.BloodRequestID); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return donationID, nil
}

const donationRecordSelect = `
        SELECT d.id, d.public_id, d.donor_id, d.hospital_id, d.blood_request_id,
               d.blood_group, d.units_donated, d.donation_date, d.status,
               d.credits_awarded, d.notes, d.verified_by, d.verification_date, d.created_at,
               u1.name, u1.email, u1.phone,
               COALESCE(hd.hospital_name, u2.name),
               br.blood_group, br.units_required
        FROM donations d
        JOIN users u1 ON d.donor_id = u1.id
        JOIN users u2 ON d.hospital_id = u2.id
        LEFT JOIN hospital_details hd ON d.hospital_id = hd.user_id
        LEFT JOIN blood_requests br ON d.blood_request_id = br.id`

func (r *donationRepository) ListByHospital(ctx context.Context, hospitalID int64) ([]domain.DonationRecord, error) {
	const query = donationRecordSelect + `
        WHERE d.hospital_id=$1
        ORDER BY d.created_at DESC`

	rows, err := r.pool.Query(ctx, query, hospitalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDonationRecords(rows)
}

func (r *donationRepository) ListByDonor(ctx context.Context, donorID int64) ([]domain.DonationRecord, error) {
	const query = donationRecordSelect + `
        WHERE d.donor_id=$1
        ORDER BY d.created_at DESC`

	rows, err := r.pool.Query(ctx, query, donorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDonationRecords(rows)
}

func (r *donationRepository) ListRecentByDonor(ctx context.Context, donorID int64, limit int) ([]domain.DonationRecord, error) {
	const query = donationRecordSelect + `
        WHERE d.donor_id=$1
        ORDER BY d.created_at DESC
        LIMIT $2`

	rows, err := r.pool.Query(ctx, query, donorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDonationRecords(rows)
}

func (r *donationRepository) ListRecent(ctx context.Context, limit int) ([]domain.DonationRecord, error) {
	const query = donationRecordSelect + `
        ORDER BY d.created_at DESC
        LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDonationRecords(rows)
}

func (r *donationRepository) ListAll(ctx context.Context) ([]domain.DonationRecord, error) {
	const query = donationRecordSelect + `
        ORDER BY d.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDonationRecords(rows)
}

func (r *donationRepository) GetByID(ctx context.Context, id int64) (*domain.DonationRecord, error) {
	const query = donationRecordSelect + `
        WHERE d.id=$1`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records, err := scanDonationRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &records[0], nil
}

func (r *donationRepository) Search(ctx context.Context, filter domain.DonationFilter) ([]domain.DonationRecord, error) {
	query := donationRecordSelect + `
        WHERE 1=1`

	args := []any{}
	if filter.DonorName != "" {
		args = append(args, "%"+filter.DonorName+"%")
		query += ` AND u1.name ILIKE $` + itoa(len(args))
	}
	if filter.HospitalName != "" {
		args = append(args, "%"+filter.HospitalName+"%")
		n := itoa(len(args))
		query += ` AND (u2.name ILIKE $` + n + ` OR hd.hospital_name ILIKE $` + n + `)`
	}
	if filter.BloodGroup != "" {
		args = append(args, filter.BloodGroup)
		query += ` AND d.blood_group = $` + itoa(len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += ` AND d.donation_date >= $` + itoa(len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += ` AND d.donation_date <= $` + itoa(len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND d.status = $` + itoa(len(args))
	}
	query += ` ORDER BY d.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDonationRecords(rows)
}

func scanDonationRecords(rows pgx.Rows) ([]domain.DonationRecord, error) {
	records := []domain.DonationRecord{}
	for rows.Next() {
		var rec domain.DonationRecord
		if err := rows.Scan(
			&rec.ID, &rec.PublicID, &rec.DonorID, &rec.HospitalID, &rec.BloodRequestID,
			&rec.BloodGroup, &rec.UnitsDonated, &rec.DonationDate, &rec.Status,
			&rec.CreditsAwarded, &rec.Notes, &rec.VerifiedBy, &rec.VerificationDate, &rec.CreatedAt,
			&rec.DonorName, &rec.DonorEmail, &rec.DonorPhone,
			&rec.HospitalName,
			&rec.RequestedBloodGroup, &rec.UnitsRequired,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
