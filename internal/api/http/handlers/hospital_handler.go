package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bloodbridge/internal/api/dto"
	"github.com/spec-kit/bloodbridge/internal/auth"
	"github.com/spec-kit/bloodbridge/internal/domain"
	"github.com/spec-kit/bloodbridge/internal/repository"
	"github.com/spec-kit/bloodbridge/internal/service"
	"github.com/spec-kit/bloodbridge/pkg/util"
)

const dateLayout = "2006-01-02"

// HospitalHandler exposes the hospital dashboard, request, donation and
// inventory endpoints.
type HospitalHandler struct {
	hospital *service.HospitalService
}

// NewHospitalHandler constructs handler.
func NewHospitalHandler(hospitalService *service.HospitalService) *HospitalHandler {
	return &HospitalHandler{hospital: hospitalService}
}

// Overview handles GET /hospital?action=overview.
func (h *HospitalHandler) Overview(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	overview, err := h.hospital.Overview(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return OK(c, overview)
}

// BloodRequests handles GET /hospital?action=blood_requests.
func (h *HospitalHandler) BloodRequests(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	requests, err := h.hospital.BloodRequests(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return OK(c, requests)
}

// Donors handles GET /hospital?action=donors.
func (h *HospitalHandler) Donors(c *fiber.Ctx) error {
	donors, err := h.hospital.Donors(c.UserContext(), repository.DonorFilter{
		BloodGroup: c.Query("blood_group"),
		Location:   c.Query("location"),
	})
	if err != nil {
		return err
	}
	return OK(c, donors)
}

// Donations handles GET /hospital?action=donations.
func (h *HospitalHandler) Donations(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	donations, err := h.hospital.Donations(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return OK(c, donations)
}

// Inventory handles GET /hospital?action=inventory.
func (h *HospitalHandler) Inventory(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	items, err := h.hospital.Inventory(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return OK(c, items)
}

// Statistics handles GET /hospital?action=statistics.
func (h *HospitalHandler) Statistics(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	stats, err := h.hospital.Statistics(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return OK(c, stats)
}

// CreateRequest handles POST /hospital?action=create_request.
func (h *HospitalHandler) CreateRequest(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	var req dto.CreateBloodRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid request body", nil)
	}

	created, err := h.hospital.CreateRequest(c.UserContext(), claims.UserID,
		req.BloodGroup, req.UnitsRequired, domain.RequestUrgency(req.Urgency), req.Description)
	if err != nil {
		return err
	}
	return Respond(c, fiber.StatusCreated, "Blood request created", created)
}

// RecordDonation handles POST /hospital?action=record_donation.
func (h *HospitalHandler) RecordDonation(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	var req dto.RecordDonationRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid request body", nil)
	}
	if req.DonorID == 0 {
		return util.NewValidationError("donor_id is required", nil)
	}

	input := service.RecordDonationInput{
		DonorID:        req.DonorID,
		BloodRequestID: req.BloodRequestID,
		BloodGroup:     req.BloodGroup,
		UnitsDonated:   req.UnitsDonated,
		CreditsAwarded: req.CreditsAwarded,
		Notes:          req.Notes,
	}
	if req.DonationDate != nil {
		parsed, err := time.Parse(dateLayout, *req.DonationDate)
		if err != nil {
			return util.NewValidationError("donation_date must be YYYY-MM-DD", nil)
		}
		input.DonationDate = &parsed
	}

	donationID, err := h.hospital.RecordDonation(c.UserContext(), claims.UserID, input)
	if err != nil {
		return err
	}
	return Respond(c, fiber.StatusCreated, "Donation recorded successfully", fiber.Map{
		"donation_id": donationID,
	})
}

// UpdateInventory handles PUT /hospital?action=update_inventory.
func (h *HospitalHandler) UpdateInventory(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	var req dto.UpdateInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid request body", nil)
	}

	input := repository.InventoryUpsert{
		HospitalID:     claims.UserID,
		BloodGroup:     req.BloodGroup,
		UnitsAvailable: req.UnitsAvailable,
		UnitsReserved:  req.UnitsReserved,
	}
	if req.ExpiryDate != nil {
		parsed, err := time.Parse(dateLayout, *req.ExpiryDate)
		if err != nil {
			return util.NewValidationError("expiry_date must be YYYY-MM-DD", nil)
		}
		input.ExpiryDate = &parsed
	}

	if err := h.hospital.UpdateInventory(c.UserContext(), input); err != nil {
		return err
	}
	return Respond(c, fiber.StatusOK, "Inventory updated", nil)
}

// SendNotification handles POST /hospital?action=send_notification.
func (h *HospitalHandler) SendNotification(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	input, err := parseNotification(c)
	if err != nil {
		return err
	}
	if err := h.hospital.SendNotification(c.UserContext(), claims.UserID, input); err != nil {
		return err
	}
	return Respond(c, fiber.StatusCreated, "Notification sent", nil)
}

// UpdateRequest handles PUT /hospital?action=update_request.
func (h *HospitalHandler) UpdateRequest(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return util.NewMissingCredential()
	}

	var req dto.UpdateBloodRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid request body", nil)
	}
	if req.RequestID == 0 {
		return util.NewValidationError("request_id is required", nil)
	}
	if req.Status == nil && req.Description == nil {
		return util.NewValidationError("nothing to update", nil)
	}

	update := repository.RequestUpdate{Description: req.Description}
	if req.Status != nil {
		status := domain.RequestStatus(*req.Status)
		update.Status = &status
	}

	if err := h.hospital.UpdateRequest(c.UserContext(), claims.UserID, req.RequestID, update); err != nil {
		return err
	}
	return Respond(c, fiber.StatusOK, "Blood request updated", nil)
}
