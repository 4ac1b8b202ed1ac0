package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bloodbridge/internal/domain"
)

// CreditRepository defines persistence access for credit transactions.
type CreditRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.CreditEntry, error)
	ListAll(ctx context.Context) ([]domain.CreditReport, error)
	Adjust(ctx context.Context, userID int64, amount int, description string) error
}

type creditRepository struct {
	pool *pgxpool.Pool
}

// NewCreditRepository returns a Postgres-backed implementation.
func NewCreditRepository(pool *pgxpool.Pool) CreditRepository {
	return &creditRepository{pool: pool}
}

func (r *creditRepository) ListByUser(ctx context.Context, userID int64) ([]domain.CreditEntry, error) {
	const query = `
        SELECT id, user_id, transaction_type, amount, description, reference_id, reference_type, created_at
        FROM credits
        WHERE user_id=$1
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.CreditEntry{}
	for rows.Next() {
		var e domain.CreditEntry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Type, &e.Amount, &e.Description,
			&e.ReferenceID, &e.ReferenceType, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *creditRepository) ListAll(ctx context.Context) ([]domain.CreditReport, error) {
	const query = `
        SELECT c.id, c.user_id, c.transaction_type, c.amount, c.description,
               c.reference_id, c.reference_type, c.created_at,
               u.name, u.user_type
        FROM credits c
        JOIN users u ON c.user_id = u.id
        ORDER BY c.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []domain.CreditReport{}
	for rows.Next() {
		var rep domain.CreditReport
		if err := rows.Scan(
			&rep.ID, &rep.CreditEntry.UserID, &rep.Type, &rep.Amount, &rep.Description,
			&rep.ReferenceID, &rep.ReferenceType, &rep.CreatedAt,
			&rep.UserName, &rep.UserType,
		); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

// Adjust inserts the adjustment transaction and moves the profile balance
// in one transaction.
func (r *creditRepository) Adjust(ctx context.Context, userID int64, amount int, description string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insertCredit = `
        INSERT INTO credits (user_id, transaction_type, amount, description, reference_type)
        VALUES ($1, 'adjusted', $2, $3, 'adjustment')`
	if _, err := tx.Exec(ctx, insertCredit, userID, amount, description); err != nil {
		return err
	}

	const updateProfile = `
        UPDATE donor_profiles SET total_credits = total_credits + $1 WHERE user_id = $2`
	if _, err := tx.Exec(ctx, updateProfile, amount, userID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
