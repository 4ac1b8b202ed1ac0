package service

import (
	"context"
	"testing"
	"time"

	"github.com/spec-kit/bloodbridge/internal/domain"
)

func donorServiceWith(users *fakeUserRepo, achievements *fakeAchievementRepo) *DonorService {
	return NewDonorService(
		users,
		&fakeDonationRepo{},
		&fakeRequestRepo{},
		achievements,
		&fakeNotificationRepo{},
		&fakeCreditRepo{},
	)
}

func TestEligibilityNoDonationsYet(t *testing.T) {
	users := &fakeUserRepo{
		getAccountFn: func(ctx context.Context, id int64) (*domain.Account, error) {
			return donorAccount(0), nil
		},
	}
	svc := donorServiceWith(users, &fakeAchievementRepo{})

	result, err := svc.Eligibility(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Eligible {
		t.Fatalf("expected eligible, got %+v", result)
	}
}

func TestEligibilityDuringCooldown(t *testing.T) {
	next := time.Now().AddDate(0, 0, 30)
	users := &fakeUserRepo{
		getAccountFn: func(ctx context.Context, id int64) (*domain.Account, error) {
			acct := donorAccount(1)
			last := time.Now().AddDate(0, 0, -26)
			acct.Profile.LastDonationDate = &last
			acct.Profile.NextEligibleDate = &next
			return acct, nil
		},
	}
	svc := donorServiceWith(users, &fakeAchievementRepo{})

	result, err := svc.Eligibility(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if result.Eligible {
		t.Fatalf("expected not eligible, got %+v", result)
	}
	if result.NextEligibleDate == nil || *result.NextEligibleDate != next.Format(dateLayout) {
		t.Fatalf("unexpected next eligible date %+v", result.NextEligibleDate)
	}
}

func TestEligibilityAfterCooldown(t *testing.T) {
	users := &fakeUserRepo{
		getAccountFn: func(ctx context.Context, id int64) (*domain.Account, error) {
			acct := donorAccount(1)
			last := time.Now().AddDate(0, 0, -100)
			next := time.Now().AddDate(0, 0, -44)
			acct.Profile.LastDonationDate = &last
			acct.Profile.NextEligibleDate = &next
			return acct, nil
		},
	}
	svc := donorServiceWith(users, &fakeAchievementRepo{})

	result, err := svc.Eligibility(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Eligible {
		t.Fatalf("expected eligible, got %+v", result)
	}
}

func TestAchievementsProgress(t *testing.T) {
	users := &fakeUserRepo{
		getAccountFn: func(ctx context.Context, id int64) (*domain.Account, error) {
			return donorAccount(3), nil
		},
	}
	achievements := &fakeAchievementRepo{
		listByUserFn: func(ctx context.Context, userID int64) ([]domain.Achievement, error) {
			return []domain.Achievement{
				{UserID: userID, Type: "first_donation", Title: "First Donation"},
				{UserID: userID, Type: "life_saver", Title: "Life Saver"},
			}, nil
		},
	}
	svc := donorServiceWith(users, achievements)

	earned, progress, err := svc.Achievements(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(earned) != 2 {
		t.Fatalf("expected 2 earned, got %d", len(earned))
	}
	if len(progress) != 3 {
		t.Fatalf("expected 3 milestones, got %d", len(progress))
	}

	byType := map[string]domain.AchievementProgress{}
	for _, p := range progress {
		byType[p.Type] = p
	}
	if !byType["first_donation"].Earned || !byType["life_saver"].Earned {
		t.Fatalf("expected first two milestones earned: %+v", progress)
	}
	if byType["regular_donor"].Earned {
		t.Fatalf("regular_donor should not be earned at 3 donations: %+v", progress)
	}
	if byType["regular_donor"].Threshold != 5 {
		t.Fatalf("expected threshold 5, got %d", byType["regular_donor"].Threshold)
	}
}

func TestOverviewAssemblesDashboard(t *testing.T) {
	last := time.Now().AddDate(0, 0, -10)
	users := &fakeUserRepo{
		getAccountFn: func(ctx context.Context, id int64) (*domain.Account, error) {
			acct := donorAccount(4)
			acct.Profile.TotalCredits = 200
			acct.Profile.LastDonationDate = &last
			return acct, nil
		},
	}
	svc := NewDonorService(
		users,
		&fakeDonationRepo{
			listRecentByDonorFn: func(ctx context.Context, donorID int64, limit int) ([]domain.DonationRecord, error) {
				if limit != 5 {
					t.Fatalf("expected limit 5, got %d", limit)
				}
				return []domain.DonationRecord{{DonorName: "Donor"}}, nil
			},
		},
		&fakeRequestRepo{},
		&fakeAchievementRepo{},
		&fakeNotificationRepo{},
		&fakeCreditRepo{},
	)

	overview, err := svc.Overview(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if overview.TotalDonations != 4 || overview.TotalCredits != 200 {
		t.Fatalf("unexpected totals %+v", overview)
	}
	if overview.LastDonation == nil || *overview.LastDonation != last.Format(dateLayout) {
		t.Fatalf("unexpected last donation %+v", overview.LastDonation)
	}
	if len(overview.RecentDonations) != 1 {
		t.Fatalf("expected 1 recent donation, got %d", len(overview.RecentDonations))
	}
}
