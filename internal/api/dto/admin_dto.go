package dto

// VerifyHospitalRequest payload for the hospital review decision.
type VerifyHospitalRequest struct {
	HospitalID int64  `json:"hospital_id"`
	Status     string `json:"status"`
}

// AdjustCreditsRequest payload for manual credit adjustments.
type AdjustCreditsRequest struct {
	UserID      int64  `json:"user_id"`
	Amount      int    `json:"amount"`
	Description string `json:"description"`
}

// SendNotificationRequest payload for notifications, shared by the admin
// and hospital surfaces.
type SendNotificationRequest struct {
	UserID           *int64  `json:"user_id"`
	Title            string  `json:"title"`
	Message          string  `json:"message"`
	Type             string  `json:"type"`
	Priority         string  `json:"priority"`
	LocationFilter   *string `json:"location_filter"`
	BloodGroupFilter *string `json:"blood_group_filter"`
}

// UserStatusRequest payload for account status changes.
type UserStatusRequest struct {
	UserID int64  `json:"user_id"`
	Status string `json:"status"`
}
