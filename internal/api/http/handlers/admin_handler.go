package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bloodbridge/internal/api/dto"
	"github.com/spec-kit/bloodbridge/internal/auth"
	"github.com/spec-kit/bloodbridge/internal/domain"
	"github.com/spec-kit/bloodbridge/internal/service"
	"github.com/spec-kit/bloodbridge/pkg/util"
)

// AdminHandler exposes the admin dashboard and moderation endpoints.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: adminService}
}

// Overview handles GET /admin?action=overview.
func (h *AdminHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.admin.Overview(c.UserContext())
	if err != nil {
		return err
	}
	return OK(c, overview)
}

// Hospitals handles GET /admin?action=hospitals.
func (h *AdminHandler) Hospitals(c *fiber.Ctx) error {
	hospitals, err := h.admin.Hospitals(c.UserContext())
	if err != nil {
		return err
	}
	return OK(c, hospitals)
}

// Users handles GET /admin?action=users.
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := h.admin.Users(c.UserContext())
	if err != nil {
		return err
	}
	return OK(c, users)
}

// Donations handles GET /admin?action=donations.
func (h *AdminHandler) Donations(c *fiber.Ctx) error {
	donations, err := h.admin.Donations(c.UserContext())
	if err != nil {
		return err
	}
	return OK(c, donations)
}

// Credits handles GET /admin?action=credits.
func (h *AdminHandler) Credits(c *fiber.Ctx) error {
	credits, err := h.admin.Credits(c.UserContext())
	if err != nil {
		return err
	}
	return OK(c, credits)
}

// Analytics handles GET /admin?action=analytics.
func (h *AdminHandler) Analytics(c *fiber.Ctx) error {
	analytics, err := h.admin.Analytics(c.UserContext())
	if err != nil {
		return err
	}
	return OK(c, analytics)
}

// VerifyHospital handles PUT /admin?action=verify_hospital.
func (h *AdminHandler) VerifyHospital(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	var req dto.VerifyHospitalRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid request body", nil)
	}
	if req.HospitalID == 0 || req.Status == "" {
		return util.NewValidationError("hospital_id and status are required", nil)
	}

	if err := h.admin.VerifyHospital(c.UserContext(), claims.UserID, req.HospitalID, domain.VerificationStatus(req.Status)); err != nil {
		return err
	}
	return Respond(c, fiber.StatusOK, "Hospital verification updated", nil)
}

// AdjustCredits handles PUT /admin?action=adjust_credits.
func (h *AdminHandler) AdjustCredits(c *fiber.Ctx) error {
	var req dto.AdjustCreditsRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid request body", nil)
	}
	if req.UserID == 0 || req.Amount == 0 {
		return util.NewValidationError("user_id and a non-zero amount are required", nil)
	}
	if req.Description == "" {
		req.Description = "Manual adjustment"
	}

	if err := h.admin.AdjustCredits(c.UserContext(), req.UserID, req.Amount, req.Description); err != nil {
		return err
	}
	return Respond(c, fiber.StatusOK, "Credits adjusted successfully", nil)
}

// SendNotification handles POST /admin?action=send_notification.
func (h *AdminHandler) SendNotification(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	input, err := parseNotification(c)
	if err != nil {
		return err
	}
	if err := h.admin.SendNotification(c.UserContext(), claims.UserID, input); err != nil {
		return err
	}
	return Respond(c, fiber.StatusCreated, "Notification sent", nil)
}

// UserStatus handles PUT /admin?action=user_status.
func (h *AdminHandler) UserStatus(c *fiber.Ctx) error {
	var req dto.UserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid request body", nil)
	}
	if req.UserID == 0 {
		return util.NewValidationError("user_id is required", nil)
	}
	status := domain.UserStatus(req.Status)
	switch status {
	case domain.UserStatusActive, domain.UserStatusInactive, domain.UserStatusSuspended:
	default:
		return util.NewValidationError("status must be 'active', 'inactive' or 'suspended'", nil)
	}

	if err := h.admin.UpdateUserStatus(c.UserContext(), req.UserID, status); err != nil {
		return err
	}
	return Respond(c, fiber.StatusOK, "User status updated", nil)
}

func parseNotification(c *fiber.Ctx) (domain.NewNotification, error) {
	var req dto.SendNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewNotification{}, util.NewValidationError("Invalid request body", nil)
	}
	if req.Title == "" || req.Message == "" {
		return domain.NewNotification{}, util.NewValidationError("title and message are required", nil)
	}
	if req.Type == "" {
		req.Type = "general"
	}
	if req.Priority == "" {
		req.Priority = "normal"
	}
	return domain.NewNotification{
		UserID:           req.UserID,
		Title:            req.Title,
		Message:          req.Message,
		Type:             req.Type,
		Priority:         req.Priority,
		LocationFilter:   req.LocationFilter,
		BloodGroupFilter: req.BloodGroupFilter,
	}, nil
}
