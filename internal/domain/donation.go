package domain

import "time"

// DonationStatus enumerates donation record states.
type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusCompleted DonationStatus = "completed"
)

// Donation records a completed or pending blood donation.
type Donation struct {
	ID               int64          `json:"id"`
	PublicID         string         `json:"public_id"`
	DonorID          int64          `json:"donor_id"`
	HospitalID       int64          `json:"hospital_id"`
	BloodRequestID   *int64         `json:"blood_request_id"`
	BloodGroup       string         `json:"blood_group"`
	UnitsDonated     int            `json:"units_donated"`
	DonationDate     time.Time      `json:"donation_date"`
	Status           DonationStatus `json:"status"`
	CreditsAwarded   int            `json:"credits_awarded"`
	Notes            *string        `json:"notes"`
	VerifiedBy       *int64         `json:"verified_by"`
	VerificationDate *time.Time     `json:"verification_date"`
	CreatedAt        time.Time      `json:"created_at"`
}

// DonationRecord is the joined listing row with donor, hospital and
// originating request context.
type DonationRecord struct {
	Donation
	DonorName           string  `json:"donor_name"`
	DonorEmail          string  `json:"donor_email"`
	DonorPhone          *string `json:"donor_phone,omitempty"`
	HospitalName        string  `json:"hospital_name"`
	RequestedBloodGroup *string `json:"requested_blood_group"`
	UnitsRequired       *int    `json:"units_required"`
}

// DonationFilter narrows donation searches and exports.
type DonationFilter struct {
	DonorName    string
	HospitalName string
	BloodGroup   string
	DateFrom     *time.Time
	DateTo       *time.Time
	Status       string
}

// NewDonation is the input for recording a donation at a hospital.
type NewDonation struct {
	DonorID        int64
	HospitalID     int64
	BloodRequestID *int64
	BloodGroup     string
	UnitsDonated   int
	DonationDate   time.Time
	CreditsAwarded int
	Notes          *string
}
