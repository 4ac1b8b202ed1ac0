package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bloodbridge/internal/domain"
	"github.com/spec-kit/bloodbridge/internal/events"
	"github.com/spec-kit/bloodbridge/internal/repository"
	"github.com/spec-kit/bloodbridge/pkg/util"
)

// AdminService serves the admin dashboard and moderation operations.
type AdminService struct {
	reports       repository.ReportRepository
	users         repository.UserRepository
	donations     repository.DonationRepository
	credits       repository.CreditRepository
	notifications repository.NotificationRepository
	dispatcher    events.Dispatcher
}

// NewAdminService builds the service.
func NewAdminService(
	reports repository.ReportRepository,
	users repository.UserRepository,
	donations repository.DonationRepository,
	credits repository.CreditRepository,
	notifications repository.NotificationRepository,
	dispatcher events.Dispatcher,
) *AdminService {
	return &AdminService{
		reports:       reports,
		users:         users,
		donations:     donations,
		credits:       credits,
		notifications: notifications,
		dispatcher:    dispatcher,
	}
}

// Overview assembles the admin dashboard counts and recent donations.
func (s *AdminService) Overview(ctx context.Context) (*domain.AdminOverview, error) {
	overview, err := s.reports.AdminCounts(ctx)
	if err != nil {
		return nil, err
	}
	overview.RecentDonations, err = s.donations.ListRecent(ctx, 10)
	if err != nil {
		return nil, err
	}
	return overview, nil
}

// Hospitals lists every hospital account with verification state.
func (s *AdminService) Hospitals(ctx context.Context) ([]domain.HospitalListing, error) {
	return s.users.ListHospitals(ctx)
}

// Users lists every donor account.
func (s *AdminService) Users(ctx context.Context) ([]domain.Account, error) {
	return s.users.ListUsers(ctx)
}

// Donations lists every donation with joined context.
func (s *AdminService) Donations(ctx context.Context) ([]domain.DonationRecord, error) {
	return s.donations.ListAll(ctx)
}

// Credits lists every credit transaction with owner context.
func (s *AdminService) Credits(ctx context.Context) ([]domain.CreditReport, error) {
	return s.credits.ListAll(ctx)
}

// Analytics returns the system-wide aggregates.
func (s *AdminService) Analytics(ctx context.Context) (*domain.AdminAnalytics, error) {
	return s.reports.AdminAnalytics(ctx)
}

// VerifyHospital records the review decision and emits the event.
func (s *AdminService) VerifyHospital(ctx context.Context, adminID, hospitalID int64, status domain.VerificationStatus) error {
	if status != domain.VerificationVerified && status != domain.VerificationRejected {
		return util.NewValidationError("status must be 'verified' or 'rejected'", nil)
	}
	if err := s.users.VerifyHospital(ctx, hospitalID, status, adminID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("Hospital")
		}
		return err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventHospitalVerified,
		ActorID:   adminID,
		ActorRole: domain.RoleAdmin,
		Timestamp: time.Now(),
		Payload:   events.HospitalVerifiedPayload{HospitalID: hospitalID, Status: status},
	})
	return nil
}

// AdjustCredits moves a user's reward balance by the signed amount.
func (s *AdminService) AdjustCredits(ctx context.Context, userID int64, amount int, description string) error {
	return s.credits.Adjust(ctx, userID, amount, description)
}

// SendNotification broadcasts a system notification.
func (s *AdminService) SendNotification(ctx context.Context, adminID int64, input domain.NewNotification) error {
	id, err := s.notifications.Create(ctx, input)
	if err != nil {
		return err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventNotificationBroadcast,
		ActorID:   adminID,
		ActorRole: domain.RoleAdmin,
		Timestamp: time.Now(),
		Payload: events.NotificationBroadcastPayload{
			NotificationID:   id,
			Title:            input.Title,
			Priority:         input.Priority,
			LocationFilter:   input.LocationFilter,
			BloodGroupFilter: input.BloodGroupFilter,
		},
	})
	return nil
}

// UpdateUserStatus changes an account's lifecycle state.
func (s *AdminService) UpdateUserStatus(ctx context.Context, userID int64, status domain.UserStatus) error {
	if err := s.users.UpdateStatus(ctx, userID, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("User")
		}
		return err
	}
	return nil
}
