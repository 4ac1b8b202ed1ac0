package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/bloodbridge/internal/domain"
	"github.com/spec-kit/bloodbridge/internal/events"
	"github.com/spec-kit/bloodbridge/internal/repository"
	"github.com/spec-kit/bloodbridge/pkg/util"
)

// defaultCreditsAwarded is granted per donation when the hospital does not
// override the amount.
const defaultCreditsAwarded = 50

// RecordDonationInput carries the fields a hospital submits when logging a
// completed donation.
type RecordDonationInput struct {
	DonorID        int64
	BloodRequestID *int64
	BloodGroup     string
	UnitsDonated   int
	DonationDate   *time.Time
	CreditsAwarded *int
	Notes          *string
}

// HospitalService serves the hospital dashboard, blood requests, donation
// intake and inventory operations.
type HospitalService struct {
	reports      repository.ReportRepository
	requests     repository.BloodRequestRepository
	donations    repository.DonationRepository
	users        repository.UserRepository
	inventory    repository.InventoryRepository
	achievements repository.AchievementRepository
	notifs       repository.NotificationRepository
	dispatcher   events.Dispatcher
	logger       *zap.Logger
}

// NewHospitalService builds the service.
func NewHospitalService(
	reports repository.ReportRepository,
	requests repository.BloodRequestRepository,
	donations repository.DonationRepository,
	users repository.UserRepository,
	inventory repository.InventoryRepository,
	achievements repository.AchievementRepository,
	notifs repository.NotificationRepository,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *HospitalService {
	return &HospitalService{
		reports:      reports,
		requests:     requests,
		donations:    donations,
		users:        users,
		inventory:    inventory,
		achievements: achievements,
		notifs:       notifs,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

// Overview assembles the hospital dashboard counts and its five most recent
// requests.
func (s *HospitalService) Overview(ctx context.Context, hospitalID int64) (*domain.HospitalOverview, error) {
	overview, err := s.reports.HospitalCounts(ctx, hospitalID)
	if err != nil {
		return nil, err
	}

	requests, err := s.requests.ListByHospital(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	if len(requests) > 5 {
		requests = requests[:5]
	}
	overview.RecentRequests = requests
	return overview, nil
}

// BloodRequests lists the hospital's own requests.
func (s *HospitalService) BloodRequests(ctx context.Context, hospitalID int64) ([]domain.BloodRequest, error) {
	return s.requests.ListByHospital(ctx, hospitalID)
}

// CreateRequest opens a new blood request and emits the event.
func (s *HospitalService) CreateRequest(ctx context.Context, hospitalID int64, bloodGroup string, units int, urgency domain.RequestUrgency, description *string) (*domain.BloodRequest, error) {
	if bloodGroup == "" {
		return nil, util.NewValidationError("blood_group is required", nil)
	}
	if units <= 0 {
		return nil, util.NewValidationError("units_required must be positive", nil)
	}
	if !urgency.Valid() {
		return nil, util.NewValidationError("urgency must be 'low', 'medium' or 'high'", nil)
	}

	req := &domain.BloodRequest{
		HospitalID:    hospitalID,
		BloodGroup:    bloodGroup,
		UnitsRequired: units,
		Urgency:       urgency,
		Description:   description,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventBloodRequestCreated,
		ActorID:   hospitalID,
		ActorRole: domain.RoleHospital,
		Timestamp: time.Now(),
		Payload: events.BloodRequestCreatedPayload{
			RequestID:  req.ID,
			HospitalID: hospitalID,
			BloodGroup: bloodGroup,
			Units:      units,
			Urgency:    urgency,
		},
	})
	return req, nil
}

// UpdateRequest applies a partial update to a request the hospital owns.
func (s *HospitalService) UpdateRequest(ctx context.Context, hospitalID, requestID int64, update repository.RequestUpdate) error {
	if update.Status != nil && !update.Status.Valid() {
		return util.NewValidationError("status must be 'active', 'fulfilled' or 'cancelled'", nil)
	}
	if err := s.requests.Update(ctx, requestID, hospitalID, update); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("Blood request")
		}
		return err
	}
	return nil
}

// Donors searches registered donors by blood group and location.
func (s *HospitalService) Donors(ctx context.Context, filter repository.DonorFilter) ([]domain.DonorListing, error) {
	return s.users.ListDonors(ctx, filter)
}

// Donations lists donations recorded at this hospital.
func (s *HospitalService) Donations(ctx context.Context, hospitalID int64) ([]domain.DonationRecord, error) {
	return s.donations.ListByHospital(ctx, hospitalID)
}

// RecordDonation logs a completed donation, credits the donor, awards any
// milestone reached and emits the event.
func (s *HospitalService) RecordDonation(ctx context.Context, hospitalID int64, input RecordDonationInput) (int64, error) {
	if input.BloodGroup == "" {
		return 0, util.NewValidationError("blood_group is required", nil)
	}
	if input.UnitsDonated <= 0 {
		return 0, util.NewValidationError("units_donated must be positive", nil)
	}

	donor, err := s.users.GetAccount(ctx, input.DonorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, util.NewNotFound("Donor")
		}
		return 0, err
	}
	if donor.Type != domain.RoleDonor {
		return 0, util.NewValidationError("donor_id does not refer to a donor account", nil)
	}

	credits := defaultCreditsAwarded
	if input.CreditsAwarded != nil {
		credits = *input.CreditsAwarded
	}
	donationDate := time.Now()
	if input.DonationDate != nil {
		donationDate = *input.DonationDate
	}

	donationID, err := s.donations.Record(ctx, domain.NewDonation{
		DonorID:        input.DonorID,
		HospitalID:     hospitalID,
		BloodRequestID: input.BloodRequestID,
		BloodGroup:     input.BloodGroup,
		UnitsDonated:   input.UnitsDonated,
		DonationDate:   donationDate,
		CreditsAwarded: credits,
		Notes:          input.Notes,
	})
	if err != nil {
		return 0, err
	}

	total := 1
	if donor.Profile != nil {
		total = donor.Profile.TotalDonations + 1
	}
	for _, m := range donationMilestones {
		if total < m.Threshold {
			continue
		}
		award := domain.Achievement{
			UserID:      input.DonorID,
			Type:        m.Type,
			Title:       m.Title,
			Description: m.Description,
			Icon:        m.Icon,
		}
		if err := s.achievements.Award(ctx, award); err != nil {
			s.logger.Warn("achievement award failed",
				zap.Int64("donor_id", input.DonorID),
				zap.String("type", m.Type),
				zap.Error(err))
		}
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventDonationRecorded,
		ActorID:   hospitalID,
		ActorRole: domain.RoleHospital,
		Timestamp: time.Now(),
		Payload: events.DonationRecordedPayload{
			DonationID:     donationID,
			DonorID:        input.DonorID,
			HospitalID:     hospitalID,
			BloodGroup:     input.BloodGroup,
			UnitsDonated:   input.UnitsDonated,
			CreditsAwarded: credits,
		},
	})
	return donationID, nil
}

// Inventory lists the hospital's stock per blood group.
func (s *HospitalService) Inventory(ctx context.Context, hospitalID int64) ([]domain.InventoryItem, error) {
	return s.inventory.ListByHospital(ctx, hospitalID)
}

// UpdateInventory upserts one blood-group row of the hospital's stock.
func (s *HospitalService) UpdateInventory(ctx context.Context, input repository.InventoryUpsert) error {
	if input.BloodGroup == "" {
		return util.NewValidationError("blood_group is required", nil)
	}
	if input.UnitsAvailable < 0 || input.UnitsReserved < 0 {
		return util.NewValidationError("unit counts cannot be negative", nil)
	}
	return s.inventory.Upsert(ctx, input)
}

// SendNotification lets the hospital alert donors, optionally narrowed by
// location and blood group.
func (s *HospitalService) SendNotification(ctx context.Context, hospitalID int64, input domain.NewNotification) error {
	id, err := s.notifs.Create(ctx, input)
	if err != nil {
		return err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventNotificationBroadcast,
		ActorID:   hospitalID,
		ActorRole: domain.RoleHospital,
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

// Statistics returns the hospital's aggregate dashboards.
func (s *HospitalService) Statistics(ctx context.Context, hospitalID int64) (*domain.HospitalStatistics, error) {
	return s.reports.HospitalStatistics(ctx, hospitalID)
}
