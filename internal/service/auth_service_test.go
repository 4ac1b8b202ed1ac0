package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bloodbridge/internal/auth"
	"github.com/spec-kit/bloodbridge/internal/config"
	"github.com/spec-kit/bloodbridge/internal/domain"
	"github.com/spec-kit/bloodbridge/internal/repository"
	"github.com/spec-kit/bloodbridge/pkg/util"
)

type fakeUserRepo struct {
	createAccountFn     func(ctx context.Context, user *domain.User, profile *domain.DonorProfile, hospital *domain.HospitalDetail) error
	getByEmailFn        func(ctx context.Context, email string) (*domain.User, error)
	getAccountFn        func(ctx context.Context, id int64) (*domain.Account, error)
	getHospitalDetailFn func(ctx context.Context, userID int64) (*domain.HospitalDetail, error)
	getPasswordHashFn   func(ctx context.Context, id int64) (string, error)
	updatePasswordFn    func(ctx context.Context, id int64, hash string) error
	updateProfileFn     func(ctx context.Context, id int64, input repository.UpdateProfileInput) error
	updateStatusFn      func(ctx context.Context, id int64, status domain.UserStatus) error
	verifyHospitalFn    func(ctx context.Context, hospitalID int64, status domain.VerificationStatus, adminID int64) error
	listDonorsFn        func(ctx context.Context, filter repository.DonorFilter) ([]domain.DonorListing, error)
	listUsersFn         func(ctx context.Context) ([]domain.Account, error)
	listHospitalsFn     func(ctx context.Context) ([]domain.HospitalListing, error)
}

func (f *fakeUserRepo) CreateAccount(ctx context.Context, user *domain.User, profile *domain.DonorProfile, hospital *domain.HospitalDetail) error {
	if f.createAccountFn == nil {
		user.ID = 1
		return nil
	}
	return f.createAccountFn(ctx, user, profile, hospital)
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.getByEmailFn == nil {
		return nil, pgx.ErrNoRows
	}
	return f.getByEmailFn(ctx, email)
}

func (f *fakeUserRepo) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	if f.getAccountFn == nil {
		return nil, pgx.ErrNoRows
	}
	return f.getAccountFn(ctx, id)
}

func (f *fakeUserRepo) GetHospitalDetail(ctx context.Context, userID int64) (*domain.HospitalDetail, error) {
	if f.getHospitalDetailFn == nil {
		return nil, pgx.ErrNoRows
	}
	return f.getHospitalDetailFn(ctx, userID)
}

func (f *fakeUserRepo) GetPasswordHash(ctx context.Context, id int64) (string, error) {
	if f.getPasswordHashFn == nil {
		return "", pgx.ErrNoRows
	}
	return f.getPasswordHashFn(ctx, id)
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	if f.updatePasswordFn == nil {
		return nil
	}
	return f.updatePasswordFn(ctx, id, hash)
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id int64, input repository.UpdateProfileInput) error {
	if f.updateProfileFn == nil {
		return nil
	}
	return f.updateProfileFn(ctx, id, input)
}

func (f *fakeUserRepo) UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) error {
	if f.updateStatusFn == nil {
		return nil
	}
	return f.updateStatusFn(ctx, id, status)
}

func (f *fakeUserRepo) VerifyHospital(ctx context.Context, hospitalID int64, status domain.VerificationStatus, adminID int64) error {
	if f.verifyHospitalFn == nil {
		return nil
	}
	return f.verifyHospitalFn(ctx, hospitalID, status, adminID)
}

func (f *fakeUserRepo) ListDonors(ctx context.Context, filter repository.DonorFilter) ([]domain.DonorListing, error) {
	if f.listDonorsFn == nil {
		return nil, nil
	}
	return f.listDonorsFn(ctx, filter)
}

func (f *fakeUserRepo) ListUsers(ctx context.Context) ([]domain.Account, error) {
	if f.listUsersFn == nil {
		return nil, nil
	}
	return f.listUsersFn(ctx)
}

func (f *fakeUserRepo) ListHospitals(ctx context.Context) ([]domain.HospitalListing, error) {
	if f.listHospitalsFn == nil {
		return nil, nil
	}
	return f.listHospitalsFn(ctx)
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{JWTSecret: "test-secret", TokenTTLHours: 1, BcryptCost: 4}
}

func donorWithPassword(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	if err != nil {
		t.Fatal(err)
	}
	return &domain.User{
		ID:           10,
		Email:        "donor@example.com",
		PasswordHash: hash,
		Name:         "Donor",
		Type:         domain.RoleDonor,
		Status:       domain.UserStatusActive,
	}
}

func TestLoginUnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	user := donorWithPassword(t, "correct-password")
	users := &fakeUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, pgx.ErrNoRows
		},
	}
	svc := NewAuthService(testAuthConfig(), users)

	_, _, errUnknown := svc.Login(context.Background(), "nobody@example.com", "whatever")
	_, _, errWrong := svc.Login(context.Background(), user.Email, "wrong-password")

	for _, err := range []error{errUnknown, errWrong} {
		var de *util.DomainError
		if !errors.As(err, &de) {
			t.Fatalf("expected domain error, got %v", err)
		}
		if de.Code != "INVALID_CREDENTIALS" || de.HTTPStatus != 401 {
			t.Fatalf("expected INVALID_CREDENTIALS 401, got %s %d", de.Code, de.HTTPStatus)
		}
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Fatalf("error messages differ: %q vs %q", errUnknown.Error(), errWrong.Error())
	}
}

func TestLoginSuccessIssuesVerifiableToken(t *testing.T) {
	user := donorWithPassword(t, "correct-password")
	users := &fakeUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return user, nil
		},
		getAccountFn: func(ctx context.Context, id int64) (*domain.Account, error) {
			return &domain.Account{User: *user}, nil
		},
	}
	svc := NewAuthService(testAuthConfig(), users)

	account, token, err := svc.Login(context.Background(), user.Email, "correct-password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if account.ID != user.ID {
		t.Fatalf("expected account %d, got %d", user.ID, account.ID)
	}

	claims, err := svc.TokenManager().Verify(token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.UserID != user.ID || claims.UserType != domain.RoleDonor {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestLoginUnverifiedHospitalRejected(t *testing.T) {
	hospital := donorWithPassword(t, "hospital-pass")
	hospital.Type = domain.RoleHospital

	for _, status := range []domain.VerificationStatus{domain.VerificationPending, domain.VerificationRejected} {
		users := &fakeUserRepo{
			getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
				return hospital, nil
			},
			getHospitalDetailFn: func(ctx context.Context, userID int64) (*domain.HospitalDetail, error) {
				return &domain.HospitalDetail{UserID: userID, VerificationStatus: status}, nil
			},
		}
		svc := NewAuthService(testAuthConfig(), users)

		_, _, err := svc.Login(context.Background(), hospital.Email, "hospital-pass")
		var de *util.DomainError
		if !errors.As(err, &de) || de.Code != "ACCOUNT_NOT_ACTIVE" || de.HTTPStatus != 403 {
			t.Fatalf("status %q: expected ACCOUNT_NOT_ACTIVE 403, got %v", status, err)
		}
	}
}

func TestLoginVerifiedHospitalSucceeds(t *testing.T) {
	hospital := donorWithPassword(t, "hospital-pass")
	hospital.Type = domain.RoleHospital

	users := &fakeUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return hospital, nil
		},
		getHospitalDetailFn: func(ctx context.Context, userID int64) (*domain.HospitalDetail, error) {
			return &domain.HospitalDetail{UserID: userID, VerificationStatus: domain.VerificationVerified}, nil
		},
		getAccountFn: func(ctx context.Context, id int64) (*domain.Account, error) {
			return &domain.Account{User: *hospital}, nil
		},
	}
	svc := NewAuthService(testAuthConfig(), users)

	_, token, err := svc.Login(context.Background(), hospital.Email, "hospital-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := svc.TokenManager().Verify(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserType != domain.RoleHospital {
		t.Fatalf("expected hospital role, got %q", claims.UserType)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	existing := donorWithPassword(t, "pw")
	users := &fakeUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return existing, nil
		},
	}
	svc := NewAuthService(testAuthConfig(), users)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    existing.Email,
		Password: "new-pass",
		Name:     "Someone",
		UserType: domain.RoleDonor,
	})
	var de *util.DomainError
	if !errors.As(err, &de) || de.Code != "CONFLICT" || de.HTTPStatus != 409 {
		t.Fatalf("expected CONFLICT 409, got %v", err)
	}
}

func TestRegisterHospitalStartsInactive(t *testing.T) {
	var created *domain.User
	var createdHospital *domain.HospitalDetail
	users := &fakeUserRepo{
		createAccountFn: func(ctx context.Context, user *domain.User, profile *domain.DonorProfile, hospital *domain.HospitalDetail) error {
			user.ID = 7
			created = user
			createdHospital = hospital
			return nil
		},
	}
	svc := NewAuthService(testAuthConfig(), users)

	id, err := svc.Register(context.Background(), RegisterInput{
		Email:    "hospital@example.com",
		Password: "secret",
		Name:     "City Hospital",
		UserType: domain.RoleHospital,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected id 7, got %d", id)
	}
	if created.Status != domain.UserStatusInactive {
		t.Fatalf("expected inactive status, got %q", created.Status)
	}
	if createdHospital == nil || createdHospital.HospitalName != "City Hospital" {
		t.Fatalf("expected hospital detail defaulted from name, got %+v", createdHospital)
	}
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	user := donorWithPassword(t, "current-pass")
	users := &fakeUserRepo{
		getPasswordHashFn: func(ctx context.Context, id int64) (string, error) {
			return user.PasswordHash, nil
		},
	}
	svc := NewAuthService(testAuthConfig(), users)

	err := svc.ChangePassword(context.Background(), user.ID, "not-the-password", "new-pass")
	var de *util.DomainError
	if !errors.As(err, &de) || de.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %v", err)
	}
}
