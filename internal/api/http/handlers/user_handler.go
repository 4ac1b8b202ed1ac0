package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bloodbridge/internal/api/dto"
	"github.com/spec-kit/bloodbridge/internal/auth"
	"github.com/spec-kit/bloodbridge/internal/domain"
	"github.com/spec-kit/bloodbridge/internal/service"
	"github.com/spec-kit/bloodbridge/pkg/util"
)

// UserHandler exposes the donor dashboard, history and alert endpoints.
// Profile reads and writes reuse the auth service.
type UserHandler struct {
	donor *service.DonorService
	auth  *AuthHandler
}

// NewUserHandler constructs handler.
func NewUserHandler(donorService *service.DonorService, authHandler *AuthHandler) *UserHandler {
	return &UserHandler{donor: donorService, auth: authHandler}
}

// Overview handles GET /user?action=overview.
func (h *UserHandler) Overview(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	overview, err := h.donor.Overview(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return OK(c, overview)
}

// DonationHistory handles GET /user?action=donation_history.
func (h *UserHandler) DonationHistory(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	donations, err := h.donor.DonationHistory(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return OK(c, donations)
}

// FindHospitals handles GET /user?action=find_hospitals.
func (h *UserHandler) FindHospitals(c *fiber.Ctx) error {
	requests, err := h.donor.OpenRequests(c.UserContext(), domain.RequestFilter{
		BloodGroup: c.Query("blood_group"),
		Location:   c.Query("location"),
		Urgency:    c.Query("urgency"),
	})
	if err != nil {
		return err
	}
	return OK(c, requests)
}

// Profile handles GET /user?action=profile.
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	return h.auth.Profile(c)
}

// UpdateProfile handles PUT /user?action=profile.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	return h.auth.UpdateProfile(c)
}

// Achievements handles GET /user?action=achievements.
func (h *UserHandler) Achievements(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	earned, progress, err := h.donor.Achievements(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return OK(c, fiber.Map{
		"achievements": earned,
		"progress":     progress,
	})
}

// Notifications handles GET /user?action=notifications.
func (h *UserHandler) Notifications(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	notifications, err := h.donor.Notifications(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return OK(c, notifications)
}

// CreditHistory handles GET /user?action=credit_history.
func (h *UserHandler) CreditHistory(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	credits, err := h.donor.CreditHistory(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return OK(c, credits)
}

// Eligibility handles GET /user?action=eligibility.
func (h *UserHandler) Eligibility(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	eligibility, err := h.donor.Eligibility(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return OK(c, eligibility)
}

// EmergencyAlerts handles GET /user?action=emergency_alerts.
func (h *UserHandler) EmergencyAlerts(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	alerts, requests, err := h.donor.EmergencyAlerts(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return OK(c, fiber.Map{
		"alerts":             alerts,
		"emergency_requests": requests,
	})
}

// MarkNotificationRead handles PUT /user?action=mark_notification_read.
func (h *UserHandler) MarkNotificationRead(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	var req dto.MarkNotificationReadRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid request body", nil)
	}
	if req.NotificationID == 0 {
		return util.NewValidationError("notification_id is required", nil)
	}

	if err := h.donor.MarkNotificationRead(c.UserContext(), claims.UserID, req.NotificationID); err != nil {
		return err
	}
	return Respond(c, fiber.StatusOK, "Notification marked as read", nil)
}
