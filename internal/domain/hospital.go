package domain

import "time"

// VerificationStatus tracks admin review of a hospital account. This is
// the canonical gating flag: login requires "verified".
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// HospitalDetail extends a hospital account with facility information.
type HospitalDetail struct {
	UserID              int64              `json:"user_id"`
	HospitalName        string             `json:"hospital_name"`
	CertificationNumber *string            `json:"certification_number"`
	LicenseNumber       *string            `json:"license_number"`
	Location            *string            `json:"location"`
	Address             *string            `json:"address"`
	ContactPerson       *string            `json:"contact_person"`
	ContactPhone        *string            `json:"contact_phone"`
	ContactEmail        *string            `json:"contact_email"`
	BloodBankContact    *string            `json:"blood_bank_contact"`
	VerificationStatus  VerificationStatus `json:"verification_status"`
	VerificationDate    *time.Time         `json:"verification_date"`
	VerifiedBy          *int64             `json:"verified_by"`
}

// HospitalListing is the admin view joining account, detail and stats.
type HospitalListing struct {
	User
	HospitalDetail
	TotalDonations int `json:"total_donations"`
}

// DonorListing is a donor row as shown to hospitals searching for donors.
type DonorListing struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            *string    `json:"phone"`
	BloodGroup       *string    `json:"blood_group"`
	Location         *string    `json:"location"`
	LastDonationDate *time.Time `json:"last_donation_date"`
	NextEligibleDate *time.Time `json:"next_eligible_date"`
	TotalDonations   int        `json:"total_donations"`
	TotalCredits     int        `json:"total_credits"`
}
