package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bloodbridge/internal/domain"
	"github.com/spec-kit/bloodbridge/internal/repository"
	"github.com/spec-kit/bloodbridge/pkg/util"
)

const dateLayout = "2006-01-02"

// DonorService serves the donor dashboard, history and alert operations.
type DonorService struct {
	users         repository.UserRepository
	donations     repository.DonationRepository
	requests      repository.BloodRequestRepository
	achievements  repository.AchievementRepository
	notifications repository.NotificationRepository
	credits       repository.CreditRepository
}

// NewDonorService builds the service.
func NewDonorService(
	users repository.UserRepository,
	donations repository.DonationRepository,
	requests repository.BloodRequestRepository,
	achievements repository.AchievementRepository,
	notifications repository.NotificationRepository,
	credits repository.CreditRepository,
) *DonorService {
	return &DonorService{
		users:         users,
		donations:     donations,
		requests:      requests,
		achievements:  achievements,
		notifications: notifications,
		credits:       credits,
	}
}

// Overview assembles the donor dashboard from the profile counters, the
// five most recent donations and earned achievements.
func (s *DonorService) Overview(ctx context.Context, donorID int64) (*domain.DonorOverview, error) {
	account, err := s.users.GetAccount(ctx, donorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("User")
		}
		return nil, err
	}

	overview := &domain.DonorOverview{Profile: account}
	if account.Profile != nil {
		overview.TotalDonations = account.Profile.TotalDonations
		overview.TotalCredits = account.Profile.TotalCredits
		overview.LastDonation = formatDate(account.Profile.LastDonationDate)
		overview.NextEligible = formatDate(account.Profile.NextEligibleDate)
	}

	overview.RecentDonations, err = s.donations.ListRecentByDonor(ctx, donorID, 5)
	if err != nil {
		return nil, err
	}
	overview.Achievements, err = s.achievements.ListByUser(ctx, donorID)
	if err != nil {
		return nil, err
	}
	return overview, nil
}

// DonationHistory lists every donation the donor has made.
func (s *DonorService) DonationHistory(ctx context.Context, donorID int64) ([]domain.DonationRecord, error) {
	return s.donations.ListByDonor(ctx, donorID)
}

// OpenRequests lists active requests from verified hospitals, optionally
// narrowed by blood group, location and urgency.
func (s *DonorService) OpenRequests(ctx context.Context, filter domain.RequestFilter) ([]domain.OpenRequest, error) {
	return s.requests.ListOpen(ctx, filter)
}

// Achievements returns earned milestones followed by progress toward the
// remaining ones.
func (s *DonorService) Achievements(ctx context.Context, donorID int64) ([]domain.Achievement, []domain.AchievementProgress, error) {
	earned, err := s.achievements.ListByUser(ctx, donorID)
	if err != nil {
		return nil, nil, err
	}

	account, err := s.users.GetAccount(ctx, donorID)
	if err != nil {
		return nil, nil, err
	}
	total := 0
	if account.Profile != nil {
		total = account.Profile.TotalDonations
	}

	progress := make([]domain.AchievementProgress, 0, len(donationMilestones))
	for _, m := range donationMilestones {
		progress = append(progress, domain.AchievementProgress{
			Type:        m.Type,
			Title:       m.Title,
			Description: m.Description,
			Icon:        m.Icon,
			Threshold:   m.Threshold,
			Earned:      total >= m.Threshold,
		})
	}
	return earned, progress, nil
}

// Notifications lists broadcasts and targeted messages for the donor.
func (s *DonorService) Notifications(ctx context.Context, donorID int64) ([]domain.Notification, error) {
	return s.notifications.ListForDonor(ctx, donorID)
}

// CreditHistory lists the donor's credit transactions.
func (s *DonorService) CreditHistory(ctx context.Context, donorID int64) ([]domain.CreditEntry, error) {
	return s.credits.ListByUser(ctx, donorID)
}

// Eligibility reports whether the donor may donate now based on the
// cooldown window after the last donation.
func (s *DonorService) Eligibility(ctx context.Context, donorID int64) (*domain.Eligibility, error) {
	account, err := s.users.GetAccount(ctx, donorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("User")
		}
		return nil, err
	}

	result := &domain.Eligibility{Eligible: true, Message: "You are eligible to donate blood"}
	if account.Profile == nil {
		return result, nil
	}
	result.LastDonationDate = formatDate(account.Profile.LastDonationDate)
	result.NextEligibleDate = formatDate(account.Profile.NextEligibleDate)

	next := account.Profile.NextEligibleDate
	if next != nil && next.After(time.Now()) {
		result.Eligible = false
		result.Message = "You must wait until " + next.Format(dateLayout) + " before donating again"
	}
	return result, nil
}

// EmergencyAlerts lists urgent notifications and high-urgency requests
// from the last 24 hours.
func (s *DonorService) EmergencyAlerts(ctx context.Context, donorID int64) ([]domain.Notification, []domain.OpenRequest, error) {
	alerts, err := s.notifications.EmergencyAlertsForDonor(ctx, donorID)
	if err != nil {
		return nil, nil, err
	}
	requests, err := s.requests.ListEmergency(ctx)
	if err != nil {
		return nil, nil, err
	}
	return alerts, requests, nil
}

// MarkNotificationRead flags a notification as read for the donor.
func (s *DonorService) MarkNotificationRead(ctx context.Context, donorID, notificationID int64) error {
	if err := s.notifications.MarkRead(ctx, notificationID, donorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("Notification")
		}
		return err
	}
	return nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
