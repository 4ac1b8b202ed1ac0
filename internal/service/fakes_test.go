package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bloodbridge/internal/domain"
	"github.com/spec-kit/bloodbridge/internal/repository"
)

type fakeDonationRepo struct {
	recordFn            func(ctx context.Context, input domain.NewDonation) (int64, error)
	listByHospitalFn    func(ctx context.Context, hospitalID int64) ([]domain.DonationRecord, error)
	listByDonorFn       func(ctx context.Context, donorID int64) ([]domain.DonationRecord, error)
	listRecentByDonorFn func(ctx context.Context, donorID int64, limit int) ([]domain.DonationRecord, error)
	listRecentFn        func(ctx context.Context, limit int) ([]domain.DonationRecord, error)
	listAllFn           func(ctx context.Context) ([]domain.DonationRecord, error)
	getByIDFn           func(ctx context.Context, id int64) (*domain.DonationRecord, error)
	searchFn            func(ctx context.Context, filter domain.DonationFilter) ([]domain.DonationRecord, error)
}

func (f *fakeDonationRepo) Record(ctx context.Context, input domain.NewDonation) (int64, error) {
	if f.recordFn == nil {
		return 1, nil
	}
	return f.recordFn(ctx, input)
}

func (f *fakeDonationRepo) ListByHospital(ctx context.Context, hospitalID int64) ([]domain.DonationRecord, error) {
	if f.listByHospitalFn == nil {
		return nil, nil
	}
	return f.listByHospitalFn(ctx, hospitalID)
}

func (f *fakeDonationRepo) ListByDonor(ctx context.Context, donorID int64) ([]domain.DonationRecord, error) {
	if f.listByDonorFn == nil {
		return nil, nil
	}
	return f.listByDonorFn(ctx, donorID)
}

func (f *fakeDonationRepo) ListRecentByDonor(ctx context.Context, donorID int64, limit int) ([]domain.DonationRecord, error) {
	if f.listRecentByDonorFn == nil {
		return nil, nil
	}
	return f.listRecentByDonorFn(ctx, donorID, limit)
}

func (f *fakeDonationRepo) ListRecent(ctx context.Context, limit int) ([]domain.DonationRecord, error) {
	if f.listRecentFn == nil {
		return nil, nil
	}
	return f.listRecentFn(ctx, limit)
}

func (f *fakeDonationRepo) ListAll(ctx context.Context) ([]domain.DonationRecord, error) {
	if f.listAllFn == nil {
		return nil, nil
	}
	return f.listAllFn(ctx)
}

func (f *fakeDonationRepo) GetByID(ctx context.Context, id int64) (*domain.DonationRecord, error) {
	if f.getByIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeDonationRepo) Search(ctx context.Context, filter domain.DonationFilter) ([]domain.DonationRecord, error) {
	if f.searchFn == nil {
		return nil, nil
	}
	return f.searchFn(ctx, filter)
}

type fakeAchievementRepo struct {
	listByUserFn func(ctx context.Context, userID int64) ([]domain.Achievement, error)
	awardFn      func(ctx context.Context, a domain.Achievement) error
}

func (f *fakeAchievementRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Achievement, error) {
	if f.listByUserFn == nil {
		return nil, nil
	}
	return f.listByUserFn(ctx, userID)
}

func (f *fakeAchievementRepo) Award(ctx context.Context, a domain.Achievement) error {
	if f.awardFn == nil {
		return nil
	}
	return f.awardFn(ctx, a)
}

type fakeNotificationRepo struct {
	createFn          func(ctx context.Context, input domain.NewNotification) (int64, error)
	listForDonorFn    func(ctx context.Context, userID int64) ([]domain.Notification, error)
	emergencyAlertsFn func(ctx context.Context, userID int64) ([]domain.Notification, error)
	markReadFn        func(ctx context.Context, notificationID, userID int64) error
}

func (f *fakeNotificationRepo) Create(ctx context.Context, input domain.NewNotification) (int64, error) {
	if f.createFn == nil {
		return 1, nil
	}
	return f.createFn(ctx, input)
}

func (f *fakeNotificationRepo) ListForDonor(ctx context.Context, userID int64) ([]domain.Notification, error) {
	if f.listForDonorFn == nil {
		return nil, nil
	}
	return f.listForDonorFn(ctx, userID)
}

func (f *fakeNotificationRepo) EmergencyAlertsForDonor(ctx context.Context, userID int64) ([]domain.Notification, error) {
	if f.emergencyAlertsFn == nil {
		return nil, nil
	}
	return f.emergencyAlertsFn(ctx, userID)
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, notificationID, userID int64) error {
	if f.markReadFn == nil {
		return nil
	}
	return f.markReadFn(ctx, notificationID, userID)
}

type fakeRequestRepo struct {
	createFn         func(ctx context.Context, req *domain.BloodRequest) error
	listByHospitalFn func(ctx context.Context, hospitalID int64) ([]domain.BloodRequest, error)
	updateFn         func(ctx context.Context, requestID, hospitalID int64, update repository.RequestUpdate) error
	listOpenFn       func(ctx context.Context, filter domain.RequestFilter) ([]domain.OpenRequest, error)
	listEmergencyFn  func(ctx context.Context) ([]domain.OpenRequest, error)
}

func (f *fakeRequestRepo) Create(ctx context.Context, req *domain.BloodRequest) error {
	if f.createFn == nil {
		req.ID = 1
		req.Status = domain.RequestStatusActive
		return nil
	}
	return f.createFn(ctx, req)
}

func (f *fakeRequestRepo) ListByHospital(ctx context.Context, hospitalID int64) ([]domain.BloodRequest, error) {
	if f.listByHospitalFn == nil {
		return nil, nil
	}
	return f.listByHospitalFn(ctx, hospitalID)
}

func (f *fakeRequestRepo) Update(ctx context.Context, requestID, hospitalID int64, update repository.RequestUpdate) error {
	if f.updateFn == nil {
		return nil
	}
	return f.updateFn(ctx, requestID, hospitalID, update)
}

func (f *fakeRequestRepo) ListOpen(ctx context.Context, filter domain.RequestFilter) ([]domain.OpenRequest, error) {
	if f.listOpenFn == nil {
		return nil, nil
	}
	return f.listOpenFn(ctx, filter)
}

func (f *fakeRequestRepo) ListEmergency(ctx context.Context) ([]domain.OpenRequest, error) {
	if f.listEmergencyFn == nil {
		return nil, nil
	}
	return f.listEmergencyFn(ctx)
}

type fakeCreditRepo struct {
	listByUserFn func(ctx context.Context, userID int64) ([]domain.CreditEntry, error)
	listAllFn    func(ctx context.Context) ([]domain.CreditReport, error)
	adjustFn     func(ctx context.Context, userID int64, amount int, description string) error
}

func (f *fakeCreditRepo) ListByUser(ctx context.Context, userID int64) ([]domain.CreditEntry, error) {
	if f.listByUserFn == nil {
		return nil, nil
	}
	return f.listByUserFn(ctx, userID)
}

func (f *fakeCreditRepo) ListAll(ctx context.Context) ([]domain.CreditReport, error) {
	if f.listAllFn == nil {
		return nil, nil
	}
	return f.listAllFn(ctx)
}

func (f *fakeCreditRepo) Adjust(ctx context.Context, userID int64, amount int, description string) error {
	if f.adjustFn == nil {
		return nil
	}
	return f.adjustFn(ctx, userID, amount, description)
}
