package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bloodbridge/internal/auth"
	"github.com/spec-kit/bloodbridge/internal/config"
	"github.com/spec-kit/bloodbridge/internal/domain"
	"github.com/spec-kit/bloodbridge/internal/repository"
	"github.com/spec-kit/bloodbridge/pkg/util"
)

// RegisterInput carries the registration payload.
type RegisterInput struct {
	Email                 string
	Password              string
	Name                  string
	UserType              domain.Role
	Phone                 *string
	Age                   *int
	Gender                *string
	BloodGroup            *string
	Location              *string
	Address               *string
	EmergencyContact      *string
	PreferredDonationDays *string
	PreferredDonationTime *string
	HospitalName          *string
	CertificationNumber   *string
	LicenseNumber         *string
	ContactPerson         *string
	ContactPhone          *string
	ContactEmail          *string
	BloodBankContact      *string
}

// AuthService coordinates registration, login and profile management.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		bcryptCost: cfg.BcryptCost,
	}
}

// TokenManager exposes the underlying token manager for the access guard.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Register creates a donor or hospital account. Hospitals start pending
// verification and inactive until an admin approves them.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (int64, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return 0, util.NewConflict("Email already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return 0, err
	}

	status := domain.UserStatusActive
	if input.UserType == domain.RoleHospital {
		status = domain.UserStatusInactive
	}

	user := &domain.User{
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		Phone:        input.Phone,
		Type:         input.UserType,
		Status:       status,
	}
	profile := &domain.DonorProfile{
		Age:                   input.Age,
		Gender:                input.Gender,
		BloodGroup:            input.BloodGroup,
		Location:              input.Location,
		Address:               input.Address,
		EmergencyContact:      input.EmergencyContact,
		PreferredDonationDays: input.PreferredDonationDays,
		PreferredDonationTime: input.PreferredDonationTime,
	}

	var hospital *domain.HospitalDetail
	if input.UserType == domain.RoleHospital {
		name := input.Name
		if input.HospitalName != nil {
			name = *input.HospitalName
		}
		contactPerson := input.ContactPerson
		if contactPerson == nil {
			contactPerson = &input.Name
		}
		contactPhone := input.ContactPhone
		if contactPhone == nil {
			contactPhone = input.Phone
		}
		contactEmail := input.ContactEmail
		if contactEmail == nil {
			contactEmail = &input.Email
		}
		hospital = &domain.HospitalDetail{
			HospitalName:        name,
			CertificationNumber: input.CertificationNumber,
			LicenseNumber:       input.LicenseNumber,
			Location:            input.Location,
			Address:             input.Address,
			ContactPerson:       contactPerson,
			ContactPhone:        contactPhone,
			ContactEmail:        contactEmail,
			BloodBankContact:    input.BloodBankContact,
		}
	}

	if err := s.users.CreateAccount(ctx, user, profile, hospital); err != nil {
		return 0, err
	}
	return user.ID, nil
}

// Login authenticates a caller and issues a bearer token. Unknown email
// and wrong password take the same error path so the two cases are
// indistinguishable from outside.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Account, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", util.NewInvalidCredentials()
		}
		return nil, "", err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", util.NewInvalidCredentials()
	}

	if user.Type == domain.RoleHospital {
		detail, err := s.users.GetHospitalDetail(ctx, user.ID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, "", err
		}
		if detail == nil || detail.VerificationStatus != domain.VerificationVerified {
			return nil, "", util.NewAccountNotActive("Hospital account is not verified")
		}
	}

	token, _, err := s.tokens.Issue(user.ID, user.Type)
	if err != nil {
		return nil, "", err
	}

	account, err := s.users.GetAccount(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// Profile returns the caller's joined account record.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*domain.Account, error) {
	account, err := s.users.GetAccount(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("User")
		}
		return nil, err
	}
	return account, nil
}

// UpdateProfile writes the caller's profile fields.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, input repository.UpdateProfileInput) error {
	return s.users.UpdateProfile(ctx, userID, input)
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	hash, err := s.users.GetPasswordHash(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("User")
		}
		return err
	}
	if err := auth.ComparePassword(hash, currentPassword); err != nil {
		return util.NewValidationError("Current password is incorrect", nil)
	}

	newHash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, newHash)
}
