package handlers

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bloodbridge/internal/domain"
	"github.com/spec-kit/bloodbridge/internal/service"
	"github.com/spec-kit/bloodbridge/pkg/util"
)

// DonationsHandler exposes the public, unauthenticated donation surface.
type DonationsHandler struct {
	donations *service.DonationService
}

// NewDonationsHandler constructs handler.
func NewDonationsHandler(donationService *service.DonationService) *DonationsHandler {
	return &DonationsHandler{donations: donationService}
}

// All handles GET /donations?action=all.
func (h *DonationsHandler) All(c *fiber.Ctx) error {
	records, err := h.donations.All(c.UserContext())
	if err != nil {
		return err
	}
	return OK(c, records)
}

// Statistics handles GET /donations?action=statistics.
func (h *DonationsHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.donations.Statistics(c.UserContext())
	if err != nil {
		return err
	}
	return OK(c, stats)
}

// BloodRequests handles GET /donations?action=blood_requests.
func (h *DonationsHandler) BloodRequests(c *fiber.Ctx) error {
	requests, err := h.donations.BloodRequests(c.UserContext(), domain.RequestFilter{
		BloodGroup: c.Query("blood_group"),
		Location:   c.Query("location"),
		Urgency:    c.Query("urgency"),
	})
	if err != nil {
		return err
	}
	return OK(c, requests)
}

// EmergencyRequests handles GET /donations?action=emergency_requests.
func (h *DonationsHandler) EmergencyRequests(c *fiber.Ctx) error {
	requests, err := h.donations.EmergencyRequests(c.UserContext())
	if err != nil {
		return err
	}
	return OK(c, requests)
}

// ByID handles GET /donations?action=by_id.
func (h *DonationsHandler) ByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id <= 0 {
		return util.NewValidationError("id must be a positive integer", nil)
	}

	record, err := h.donations.ByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return OK(c, record)
}

// Search handles GET /donations?action=search.
func (h *DonationsHandler) Search(c *fiber.Ctx) error {
	filter, err := donationFilterFromQuery(c)
	if err != nil {
		return err
	}

	records, err := h.donations.Search(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return OK(c, records)
}

// InventorySummary handles GET /donations?action=inventory_summary.
func (h *DonationsHandler) InventorySummary(c *fiber.Ctx) error {
	summary, err := h.donations.InventorySummary(c.UserContext())
	if err != nil {
		return err
	}
	return OK(c, summary)
}

// Analytics handles GET /donations?action=analytics.
func (h *DonationsHandler) Analytics(c *fiber.Ctx) error {
	analytics, err := h.donations.Analytics(c.UserContext())
	if err != nil {
		return err
	}
	return OK(c, analytics)
}

// Export handles GET /donations?action=export with format=json|csv.
func (h *DonationsHandler) Export(c *fiber.Ctx) error {
	filter, err := donationFilterFromQuery(c)
	if err != nil {
		return err
	}

	records, err := h.donations.Search(c.UserContext(), filter)
	if err != nil {
		return err
	}

	switch c.Query("format", "json") {
	case "json":
		return OK(c, records)
	case "csv":
		payload, err := donationsCSV(records)
		if err != nil {
			return util.NewInternalError(err)
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="donations_export.csv"`)
		return c.Send(payload)
	default:
		return util.NewValidationError("format must be 'json' or 'csv'", nil)
	}
}

func donationFilterFromQuery(c *fiber.Ctx) (domain.DonationFilter, error) {
	filter := domain.DonationFilter{
		DonorName:    c.Query("donor_name"),
		HospitalName: c.Query("hospital_name"),
		BloodGroup:   c.Query("blood_group"),
		Status:       c.Query("status"),
	}
	if from := c.Query("date_from"); from != "" {
		parsed, err := time.Parse(dateLayout, from)
		if err != nil {
			return filter, util.NewValidationError("date_from must be YYYY-MM-DD", nil)
		}
		filter.DateFrom = &parsed
	}
	if to := c.Query("date_to"); to != "" {
		parsed, err := time.Parse(dateLayout, to)
		if err != nil {
			return filter, util.NewValidationError("date_to must be YYYY-MM-DD", nil)
		}
		filter.DateTo = &parsed
	}
	return filter, nil
}

func donationsCSV(records []domain.DonationRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"ID", "Donor Name", "Donor Email", "Donor Phone", "Hospital Name",
		"Blood Group", "Units Donated", "Donation Date", "Status", "Credits Awarded",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, rec := range records {
		phone := ""
		if rec.DonorPhone != nil {
			phone = *rec.DonorPhone
		}
		row := []string{
			strconv.FormatInt(rec.ID, 10),
			rec.DonorName,
			rec.DonorEmail,
			phone,
			rec.HospitalName,
			rec.BloodGroup,
			strconv.Itoa(rec.UnitsDonated),
			rec.DonationDate.Format(dateLayout),
			string(rec.Status),
			strconv.Itoa(rec.CreditsAwarded),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
