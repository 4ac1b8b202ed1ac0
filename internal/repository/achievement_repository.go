package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bloodbridge/internal/domain"
)

// AchievementRepository defines persistence access for earned achievements.
type AchievementRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Achievement, error)
	Award(ctx context.Context, a domain.Achievement) error
}

type achievementRepository struct {
	pool *pgxpool.Pool
}

// NewAchievementRepository returns a Postgres-backed implementation.
func NewAchievementRepository(pool *pgxpool.Pool) AchievementRepository {
	return &achievementRepository{pool: pool}
}

func (r *achievementRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Achievement, error) {
	const query = `
        SELECT id, user_id, type, title, description, icon, earned_date
        FROM achievements
        WHERE user_id=$1
        ORDER BY earned_date DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	achievements := []domain.Achievement{}
	for rows.Next() {
		var a domain.Achievement
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Title, &a.Description, &a.Icon, &a.EarnedDate); err != nil {
			return nil, err
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

// Award inserts the achievement once. Re-awarding the same milestone is a
// no-op.
func (r *achievementRepository) Award(ctx context.Context, a domain.Achievement) error {
	const query = `
        INSERT INTO achievements (user_id, type, title, description, icon)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (user_id, type) DO NOTHING`

	_, err := r.pool.Exec(ctx, query, a.UserID, a.Type, a.Title, a.Description, a.Icon)
	return err
}
