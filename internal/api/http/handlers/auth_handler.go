package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bloodbridge/internal/api/dto"
	"github.com/spec-kit/bloodbridge/internal/auth"
	"github.com/spec-kit/bloodbridge/internal/domain"
	"github.com/spec-kit/bloodbridge/internal/repository"
	"github.com/spec-kit/bloodbridge/internal/service"
	"github.com/spec-kit/bloodbridge/pkg/util"
)

// AuthHandler exposes registration, login and profile endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth?action=register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid request body", nil)
	}
	if req.Email == "" || req.Password == "" || req.Name == "" || req.UserType == "" {
		return util.NewValidationError("email, password, name and user_type are required", nil)
	}
	role := domain.Role(req.UserType)
	if role != domain.RoleDonor && role != domain.RoleHospital {
		return util.NewValidationError("user_type must be 'user' or 'hospital'", nil)
	}
	if len(req.Password) < 6 {
		return util.NewValidationError("Password must be at least 6 characters", nil)
	}

	userID, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Email:                 req.Email,
		Password:              req.Password,
		Name:                  req.Name,
		UserType:              role,
		Phone:                 req.Phone,
		Age:                   req.Age,
		Gender:                req.Gender,
		BloodGroup:            req.BloodGroup,
		Location:              req.Location,
		Address:               req.Address,
		EmergencyContact:      req.EmergencyContact,
		PreferredDonationDays: req.PreferredDonationDays,
		PreferredDonationTime: req.PreferredDonationTime,
		HospitalName:          req.HospitalName,
		CertificationNumber:   req.CertificationNumber,
		LicenseNumber:         req.LicenseNumber,
		ContactPerson:         req.ContactPerson,
		ContactPhone:          req.ContactPhone,
		ContactEmail:          req.ContactEmail,
		BloodBankContact:      req.BloodBankContact,
	})
	if err != nil {
		return err
	}

	return Respond(c, fiber.StatusCreated, "User registered successfully", fiber.Map{
		"user_id": userID,
	})
}

// Login handles POST /auth?action=login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid request body", nil)
	}
	if req.Email == "" || req.Password == "" {
		return util.NewValidationError("email and password are required", nil)
	}

	account, token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return Respond(c, fiber.StatusOK, "Login successful", fiber.Map{
		"user":  account,
		"token": token,
	})
}

// Profile handles GET /auth?action=profile.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	account, err := h.auth.Profile(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return OK(c, account)
}

// UpdateProfile handles PUT /auth?action=profile.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid request body", nil)
	}
	if req.Name == "" {
		return util.NewValidationError("name is required", nil)
	}

	input := repository.UpdateProfileInput{
		Name:                  req.Name,
		Phone:                 req.Phone,
		Age:                   req.Age,
		Gender:                req.Gender,
		BloodGroup:            req.BloodGroup,
		Location:              req.Location,
		Address:               req.Address,
		EmergencyContact:      req.EmergencyContact,
		PreferredDonationDays: req.PreferredDonationDays,
		PreferredDonationTime: req.PreferredDonationTime,
	}
	if claims.UserType == domain.RoleHospital && req.HospitalName != nil {
		input.Hospital = &repository.UpdateHospitalInput{
			HospitalName:     *req.HospitalName,
			Location:         req.Location,
			Address:          req.Address,
			ContactPerson:    req.ContactPerson,
			ContactPhone:     req.ContactPhone,
			ContactEmail:     req.ContactEmail,
			BloodBankContact: req.BloodBankContact,
		}
	}

	if err := h.auth.UpdateProfile(c.UserContext(), claims.UserID, input); err != nil {
		return err
	}
	return Respond(c, fiber.StatusOK, "Profile updated successfully", nil)
}

// ChangePassword handles PUT /auth?action=password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid request body", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return util.NewValidationError("current_password and new_password are required", nil)
	}
	if len(req.NewPassword) < 6 {
		return util.NewValidationError("Password must be at least 6 characters", nil)
	}

	if err := h.auth.ChangePassword(c.UserContext(), claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return Respond(c, fiber.StatusOK, "Password changed successfully", nil)
}
