package dto

// CreateBloodRequestRequest payload for opening a blood request.
type CreateBloodRequestRequest struct {
	BloodGroup    string  `json:"blood_group"`
	UnitsRequired int     `json:"units_required"`
	Urgency       string  `json:"urgency"`
	Description   *string `json:"description"`
}

// UpdateBloodRequestRequest payload for partial request updates. Nil
// fields stay unchanged.
type UpdateBloodRequestRequest struct {
	RequestID   int64   `json:"request_id"`
	Status      *string `json:"status"`
	Description *string `json:"description"`
}

// RecordDonationRequest payload for logging a completed donation.
// donation_date uses YYYY-MM-DD and defaults to today.
type RecordDonationRequest struct {
	DonorID        int64   `json:"donor_id"`
	BloodRequestID *int64  `json:"blood_request_id"`
	BloodGroup     string  `json:"blood_group"`
	UnitsDonated   int     `json:"units_donated"`
	DonationDate   *string `json:"donation_date"`
	CreditsAwarded *int    `json:"credits_awarded"`
	Notes          *string `json:"notes"`
}

// UpdateInventoryRequest payload for stocking one blood-group row.
type UpdateInventoryRequest struct {
	BloodGroup     string  `json:"blood_group"`
	UnitsAvailable int     `json:"units_available"`
	UnitsReserved  int     `json:"units_reserved"`
	ExpiryDate     *string `json:"expiry_date"`
}
