package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bloodbridge/internal/domain"
)

// ReportRepository serves the cross-table aggregate queries behind the
// dashboard, statistics and analytics endpoints.
type ReportRepository interface {
	AdminCounts(ctx context.Context) (*domain.AdminOverview, error)
	AdminAnalytics(ctx context.Context) (*domain.AdminAnalytics, error)
	HospitalCounts(ctx context.Context, hospitalID int64) (*domain.HospitalOverview, error)
	HospitalStatistics(ctx context.Context, hospitalID int64) (*domain.HospitalStatistics, error)
	PublicStatistics(ctx context.Context) (*domain.DonationStatistics, error)
	PublicAnalytics(ctx context.Context) (*domain.DonationAnalytics, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository returns a Postgres-backed implementation.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

// AdminCounts fills the scalar parts of the admin overview. Recent
// donations are attached by the service via the donation repository.
func (r *reportRepository) AdminCounts(ctx context.Context) (*domain.AdminOverview, error) {
	const query = `
        SELECT
            (SELECT COUNT(*) FROM users WHERE user_type = 'hospital'),
            (SELECT COUNT(*) FROM users WHERE user_type = 'user'),
            (SELECT COUNT(*) FROM donations),
            (SELECT COUNT(*) FROM hospital_details WHERE verification_status = 'pending'),
            (SELECT COUNT(*) FROM blood_requests WHERE status = 'active')`

	var overview domain.AdminOverview
	if err := r.pool.QueryRow(ctx, query).Scan(
		&overview.TotalHospitals,
		&overview.TotalUsers,
		&overview.TotalDonations,
		&overview.PendingVerifications,
		&overview.ActiveRequests,
	); err != nil {
		return nil, err
	}
	return &overview, nil
}

func (r *reportRepository) AdminAnalytics(ctx context.Context) (*domain.AdminAnalytics, error) {
	analytics := &domain.AdminAnalytics{}
	var err error

	analytics.DonationTrends, err = r.monthCounts(ctx, `
        SELECT to_char(donation_date, 'YYYY-MM') AS month, COUNT(*)
        FROM donations
        WHERE donation_date >= NOW() - INTERVAL '12 months'
        GROUP BY month
        ORDER BY month`)
	if err != nil {
		return nil, err
	}

	analytics.BloodGroupDistribution, err = r.groupCounts(ctx, `
        SELECT blood_group, COUNT(*)
        FROM donations
        GROUP BY blood_group
        ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, err
	}

	analytics.HospitalPerformance, err = r.leaderRows(ctx, `
        SELECT hd.hospital_name, COUNT(d.id), COALESCE(SUM(d.credits_awarded), 0)
        FROM hospital_details hd
        LEFT JOIN donations d ON hd.user_id = d.hospital_id
        GROUP BY hd.user_id, hd.hospital_name
        ORDER BY COUNT(d.id) DESC
        LIMIT 10`)
	if err != nil {
		return nil, err
	}

	analytics.UserDemographics, err = r.namedCounts(ctx, `
        SELECT gender, COUNT(*)
        FROM donor_profiles
        WHERE gender IS NOT NULL
        GROUP BY gender`)
	if err != nil {
		return nil, err
	}

	return analytics, nil
}

// HospitalCounts fills the scalar parts of the hospital overview.
func (r *reportRepository) HospitalCounts(ctx context.Context, hospitalID int64) (*domain.HospitalOverview, error) {
	const query = `
        SELECT
            (SELECT COUNT(*) FROM blood_requests WHERE hospital_id = $1),
            (SELECT COUNT(*) FROM blood_requests WHERE hospital_id = $1 AND status = 'active'),
            (SELECT COUNT(*) FROM donations WHERE hospital_id = $1),
            (SELECT COUNT(*) FROM donations WHERE hospital_id = $1 AND status = 'completed')`

	var overview domain.HospitalOverview
	if err := r.pool.QueryRow(ctx, query, hospitalID).Scan(
		&overview.TotalRequests,
		&overview.ActiveRequests,
		&overview.TotalDonations,
		&overview.CompletedDonations,
	); err != nil {
		return nil, err
	}
	return &overview, nil
}

func (r *reportRepository) HospitalStatistics(ctx context.Context, hospitalID int64) (*domain.HospitalStatistics, error) {
	stats := &domain.HospitalStatistics{}
	var err error

	stats.DonationsByMonth, err = r.monthCounts(ctx, `
        SELECT to_char(donation_date, 'YYYY-MM') AS month, COUNT(*)
        FROM donations
        WHERE hospital_id = $1 AND donation_date >= NOW() - INTERVAL '12 months'
        GROUP BY month
        ORDER BY month`, hospitalID)
	if err != nil {
		return nil, err
	}

	stats.BloodGroupDistribution, err = r.groupCounts(ctx, `
        SELECT blood_group, COUNT(*)
        FROM donations
        WHERE hospital_id = $1
        GROUP BY blood_group
        ORDER BY COUNT(*) DESC`, hospitalID)
	if err != nil {
		return nil, err
	}

	stats.TopDonors, err = r.leaderRows(ctx, `
        SELECT u.name, COUNT(d.id), COALESCE(SUM(d.credits_awarded), 0)
        FROM donations d
        JOIN users u ON d.donor_id = u.id
        WHERE d.hospital_id = $1
        GROUP BY d.donor_id, u.name
        ORDER BY COUNT(d.id) DESC
        LIMIT 10`, hospitalID)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *reportRepository) PublicStatistics(ctx context.Context) (*domain.DonationStatistics, error) {
	const counts = `
        SELECT
            (SELECT COUNT(*) FROM donations),
            (SELECT COUNT(*) FROM donations WHERE status = 'completed'),
            (SELECT COUNT(*) FROM donations WHERE status = 'pending'),
            (SELECT COUNT(*) FROM donations
             WHERE date_trunc('month', donation_date) = date_trunc('month', NOW()))`

	stats := &domain.DonationStatistics{}
	if err := r.pool.QueryRow(ctx, counts).Scan(
		&stats.TotalDonations,
		&stats.CompletedDonations,
		&stats.PendingDonations,
		&stats.DonationsThisMonth,
	); err != nil {
		return nil, err
	}

	var err error
	stats.BloodGroupDistribution, err = r.groupCounts(ctx, `
        SELECT blood_group, COUNT(*)
        FROM donations
        GROUP BY blood_group
        ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, err
	}

	stats.MonthlyTrends, err = r.monthCounts(ctx, `
        SELECT to_char(donation_date, 'YYYY-MM') AS month, COUNT(*)
        FROM donations
        WHERE donation_date >= NOW() - INTERVAL '12 months'
        GROUP BY month
        ORDER BY month`)
	if err != nil {
		return nil, err
	}

	stats.TopHospitals, err = r.leaderRows(ctx, `
        SELECT hd.hospital_name, COUNT(d.id), COALESCE(SUM(d.credits_awarded), 0)
        FROM donations d
        JOIN hospital_details hd ON d.hospital_id = hd.user_id
        GROUP BY d.hospital_id, hd.hospital_name
        ORDER BY COUNT(d.id) DESC
        LIMIT 10`)
	if err != nil {
		return nil, err
	}

	stats.TopDonors, err = r.leaderRows(ctx, `
        SELECT u.name, COUNT(d.id), COALESCE(SUM(d.credits_awarded), 0)
        FROM donations d
        JOIN users u ON d.donor_id = u.id
        GROUP BY d.donor_id, u.name
        ORDER BY COUNT(d.id) DESC
        LIMIT 10`)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *reportRepository) PublicAnalytics(ctx context.Context) (*domain.DonationAnalytics, error) {
	analytics := &domain.DonationAnalytics{}
	var err error

	analytics.DonationsByDay, err = r.namedCounts(ctx, `
        SELECT to_char(donation_date, 'FMDay'), COUNT(*)
        FROM donations
        WHERE donation_date >= NOW() - INTERVAL '3 months'
        GROUP BY EXTRACT(DOW FROM donation_date), to_char(donation_date, 'FMDay')
        ORDER BY EXTRACT(DOW FROM donation_date)`)
	if err != nil {
		return nil, err
	}

	analytics.DonationsByHour, err = r.hourCounts(ctx, `
        SELECT EXTRACT(HOUR FROM created_at)::int AS hour, COUNT(*)
        FROM donations
        WHERE created_at >= NOW() - INTERVAL '1 month'
        GROUP BY hour
        ORDER BY hour`)
	if err != nil {
		return nil, err
	}

	analytics.AgeGroupDistribution, err = r.namedCounts(ctx, `
        SELECT CASE
                   WHEN dp.age < 25 THEN '18-24'
                   WHEN dp.age < 35 THEN '25-34'
                   WHEN dp.age < 45 THEN '35-44'
                   WHEN dp.age < 55 THEN '45-54'
                   ELSE '55+'
               END AS age_group,
               COUNT(*)
        FROM donations d
        JOIN donor_profiles dp ON d.donor_id = dp.user_id
        WHERE dp.age IS NOT NULL
        GROUP BY age_group
        ORDER BY age_group`)
	if err != nil {
		return nil, err
	}

	analytics.GenderDistribution, err = r.namedCounts(ctx, `
        SELECT dp.gender, COUNT(*)
        FROM donations d
        JOIN donor_profiles dp ON d.donor_id = dp.user_id
        WHERE dp.gender IS NOT NULL
        GROUP BY dp.gender`)
	if err != nil {
		return nil, err
	}

	analytics.LocationDistribution, err = r.namedCounts(ctx, `
        SELECT dp.location, COUNT(*)
        FROM donations d
        JOIN donor_profiles dp ON d.donor_id = dp.user_id
        WHERE dp.location IS NOT NULL
        GROUP BY dp.location
        ORDER BY COUNT(*) DESC
        LIMIT 10`)
	if err != nil {
		return nil, err
	}

	return analytics, nil
}

func (r *reportRepository) monthCounts(ctx context.Context, query string, args ...any) ([]domain.MonthCount, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPairs(rows, func(month string, count int) domain.MonthCount {
		return domain.MonthCount{Month: month, Count: count}
	})
}

func (r *reportRepository) groupCounts(ctx context.Context, query string, args ...any) ([]domain.GroupCount, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPairs(rows, func(group string, count int) domain.GroupCount {
		return domain.GroupCount{BloodGroup: group, Count: count}
	})
}

func (r *reportRepository) namedCounts(ctx context.Context, query string, args ...any) ([]domain.NamedCount, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPairs(rows, func(name string, count int) domain.NamedCount {
		return domain.NamedCount{Name: name, Count: count}
	})
}

func (r *reportRepository) hourCounts(ctx context.Context, query string, args ...any) ([]domain.HourCount, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []domain.HourCount{}
	for rows.Next() {
		var c domain.HourCount
		if err := rows.Scan(&c.Hour, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *reportRepository) leaderRows(ctx context.Context, query string, args ...any) ([]domain.LeaderRow, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leaders := []domain.LeaderRow{}
	for rows.Next() {
		var row domain.LeaderRow
		if err := rows.Scan(&row.Name, &row.DonationCount, &row.TotalCredits); err != nil {
			return nil, err
		}
		leaders = append(leaders, row)
	}
	return leaders, rows.Err()
}

func scanPairs[T any](rows pgx.Rows, build func(string, int) T) ([]T, error) {
	out := []T{}
	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, err
		}
		out = append(out, build(label, count))
	}
	return out, rows.Err()
}
