package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/bloodbridge/internal/domain"
	"github.com/spec-kit/bloodbridge/internal/events"
	"github.com/spec-kit/bloodbridge/pkg/util"
)

func donorAccount(totalDonations int) *domain.Account {
	return &domain.Account{
		User: domain.User{
			ID:     10,
			Email:  "donor@example.com",
			Name:   "Donor",
			Type:   domain.RoleDonor,
			Status: domain.UserStatusActive,
		},
		Profile: &domain.DonorProfile{
			UserID:         10,
			TotalDonations: totalDonations,
		},
	}
}

func newHospitalService(users *fakeUserRepo, donations *fakeDonationRepo, achievements *fakeAchievementRepo, dispatcher events.Dispatcher) *HospitalService {
	return NewHospitalService(
		nil,
		&fakeRequestRepo{},
		donations,
		users,
		nil,
		achievements,
		&fakeNotificationRepo{},
		dispatcher,
		zap.NewNop(),
	)
}

func TestRecordDonationDefaultsCredits(t *testing.T) {
	var recorded domain.NewDonation
	donations := &fakeDonationRepo{
		recordFn: func(ctx context.Context, input domain.NewDonation) (int64, error) {
			recorded = input
			return 99, nil
		},
	}
	users := &fakeUserRepo{
		getAccountFn: func(ctx context.Context, id int64) (*domain.Account, error) {
			return donorAccount(0), nil
		},
	}
	svc := newHospitalService(users, donations, &fakeAchievementRepo{}, events.NewInMemoryDispatcher())

	id, err := svc.RecordDonation(context.Background(), 20, RecordDonationInput{
		DonorID:      10,
		BloodGroup:   "O+",
		UnitsDonated: 1,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if id != 99 {
		t.Fatalf("expected donation id 99, got %d", id)
	}
	if recorded.CreditsAwarded != defaultCreditsAwarded {
		t.Fatalf("expected default credits %d, got %d", defaultCreditsAwarded, recorded.CreditsAwarded)
	}
	if recorded.HospitalID != 20 {
		t.Fatalf("expected hospital id 20, got %d", recorded.HospitalID)
	}
}

func TestRecordDonationAwardsMilestones(t *testing.T) {
	cases := []struct {
		priorDonations int
		wantTypes      []string
	}{
		{0, []string{"first_donation"}},
		{2, []string{"first_donation", "life_saver"}},
		{4, []string{"first_donation", "life_saver", "regular_donor"}},
		{6, []string{"first_donation", "life_saver", "regular_donor"}},
	}

	for _, tc := range cases {
		var awarded []string
		achievements := &fakeAchievementRepo{
			awardFn: func(ctx context.Context, a domain.Achievement) error {
				awarded = append(awarded, a.Type)
				return nil
			},
		}
		users := &fakeUserRepo{
			getAccountFn: func(ctx context.Context, id int64) (*domain.Account, error) {
				return donorAccount(tc.priorDonations), nil
			},
		}
		svc := newHospitalService(users, &fakeDonationRepo{}, achievements, events.NewInMemoryDispatcher())

		if _, err := svc.RecordDonation(context.Background(), 20, RecordDonationInput{
			DonorID:      10,
			BloodGroup:   "A-",
			UnitsDonated: 2,
		}); err != nil {
			t.Fatalf("prior %d: %v", tc.priorDonations, err)
		}

		if len(awarded) != len(tc.wantTypes) {
			t.Fatalf("prior %d: awarded %v, want %v", tc.priorDonations, awarded, tc.wantTypes)
		}
		for i, typ := range tc.wantTypes {
			if awarded[i] != typ {
				t.Fatalf("prior %d: awarded %v, want %v", tc.priorDonations, awarded, tc.wantTypes)
			}
		}
	}
}

func TestRecordDonationPublishesEvent(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var got events.Event
	dispatcher.Subscribe(events.EventDonationRecorded, func(ctx context.Context, e events.Event) error {
		got = e
		return nil
	})

	users := &fakeUserRepo{
		getAccountFn: func(ctx context.Context, id int64) (*domain.Account, error) {
			return donorAccount(1), nil
		},
	}
	svc := newHospitalService(users, &fakeDonationRepo{}, &fakeAchievementRepo{}, dispatcher)

	if _, err := svc.RecordDonation(context.Background(), 20, RecordDonationInput{
		DonorID:      10,
		BloodGroup:   "B+",
		UnitsDonated: 1,
	}); err != nil {
		t.Fatal(err)
	}

	if got.Type != events.EventDonationRecorded {
		t.Fatalf("expected donation event, got %+v", got)
	}
	payload, ok := got.Payload.(events.DonationRecordedPayload)
	if !ok || payload.DonorID != 10 || payload.HospitalID != 20 {
		t.Fatalf("unexpected payload %+v", got.Payload)
	}
}

func TestRecordDonationRejectsNonDonor(t *testing.T) {
	users := &fakeUserRepo{
		getAccountFn: func(ctx context.Context, id int64) (*domain.Account, error) {
			acct := donorAccount(0)
			acct.Type = domain.RoleHospital
			return acct, nil
		},
	}
	svc := newHospitalService(users, &fakeDonationRepo{}, &fakeAchievementRepo{}, events.NewInMemoryDispatcher())

	_, err := svc.RecordDonation(context.Background(), 20, RecordDonationInput{
		DonorID:      10,
		BloodGroup:   "O-",
		UnitsDonated: 1,
	})
	var de *util.DomainError
	if !errors.As(err, &de) || de.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %v", err)
	}
}

func TestCreateRequestValidatesUrgency(t *testing.T) {
	svc := newHospitalService(&fakeUserRepo{}, &fakeDonationRepo{}, &fakeAchievementRepo{}, events.NewInMemoryDispatcher())

	_, err := svc.CreateRequest(context.Background(), 20, "O+", 2, "critical", nil)
	var de *util.DomainError
	if !errors.As(err, &de) || de.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %v", err)
	}

	req, err := svc.CreateRequest(context.Background(), 20, "O+", 2, domain.UrgencyHigh, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if req.Status != domain.RequestStatusActive {
		t.Fatalf("expected active request, got %q", req.Status)
	}
}
