package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bloodbridge/internal/domain"
)

// NotificationRepository defines persistence access for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, input domain.NewNotification) (int64, error)
	ListForDonor(ctx context.Context, userID int64) ([]domain.Notification, error)
	EmergencyAlertsForDonor(ctx context.Context, userID int64) ([]domain.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository returns a Postgres-backed implementation.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

func (r *notificationRepository) Create(ctx context.Context, input domain.NewNotification) (int64, error) {
	const query = `
        INSERT INTO notifications (user_id, title, message, type, priority, location_filter, blood_group_filter)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		input.UserID,
		input.Title,
		input.Message,
		input.Type,
		input.Priority,
		input.LocationFilter,
		input.BloodGroupFilter,
	).Scan(&id)
	return id, err
}

// ListForDonor returns broadcasts and targeted notifications matching the
// donor's location and blood group filters.
func (r *notificationRepository) ListForDonor(ctx context.Context, userID int64) ([]domain.Notification, error) {
	const query = notificationSelect + `
        WHERE (n.user_id IS NULL OR n.user_id = $1)
          AND (n.location_filter IS NULL OR n.location_filter = (SELECT location FROM donor_profiles WHERE user_id = $1))
          AND (n.blood_group_filter IS NULL OR n.blood_group_filter = (SELECT blood_group FROM donor_profiles WHERE user_id = $1))
        ORDER BY n.created_at DESC
        LIMIT 50`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNotifications(rows)
}

func (r *notificationRepository) EmergencyAlertsForDonor(ctx context.Context, userID int64) ([]domain.Notification, error) {
	const query = notificationSelect + `
        WHERE n.type = 'emergency' AND n.priority = 'urgent'
          AND (n.user_id IS NULL OR n.user_id = $1)
          AND (n.location_filter IS NULL OR n.location_filter = (SELECT location FROM donor_profiles WHERE user_id = $1))
          AND (n.blood_group_filter IS NULL OR n.blood_group_filter = (SELECT blood_group FROM donor_profiles WHERE user_id = $1))
          AND n.created_at >= NOW() - INTERVAL '24 hours'
        ORDER BY n.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNotifications(rows)
}

func (r *notificationRepository) MarkRead(ctx context.Context, notificationID, userID int64) error {
	const query = `
        UPDATE notifications SET is_read = TRUE, read_at = NOW()
        WHERE id = $1 AND (user_id IS NULL OR user_id = $2)`

	cmd, err := r.pool.Exec(ctx, query, notificationID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const notificationSelect = `
        SELECT n.id, n.user_id, n.title, n.message, n.type, n.priority,
               n.location_filter, n.blood_group_filter, n.is_read, n.read_at, n.created_at
        FROM notifications n`

func scanNotifications(rows pgx.Rows) ([]domain.Notification, error) {
	notifications := []domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Priority,
			&n.LocationFilter, &n.BloodGroupFilter, &n.IsRead, &n.ReadAt, &n.CreatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
