package domain

import "time"

// RequestUrgency enumerates blood request urgency levels.
type RequestUrgency string

const (
	UrgencyLow    RequestUrgency = "low"
	UrgencyMedium RequestUrgency = "medium"
	UrgencyHigh   RequestUrgency = "high"
)

// Valid reports whether the urgency belongs to the closed set.
func (u RequestUrgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// Rank orders urgencies for sorting, highest first. The wire values do
// not sort usefully as text.
func (u RequestUrgency) Rank() int {
	switch u {
	case UrgencyHigh:
		return 3
	case UrgencyMedium:
		return 2
	default:
		return 1
	}
}

// RequestStatus enumerates blood request lifecycle states.
type RequestStatus string

const (
	RequestStatusActive    RequestStatus = "active"
	RequestStatusFulfilled RequestStatus = "fulfilled"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// Valid reports whether the status belongs to the closed set.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusActive, RequestStatusFulfilled, RequestStatusCancelled:
		return true
	}
	return false
}

// BloodRequest is a hospital's open call for units of a blood group.
type BloodRequest struct {
	ID            int64          `json:"id"`
	PublicID      string         `json:"public_id"`
	HospitalID    int64          `json:"hospital_id"`
	BloodGroup    string         `json:"blood_group"`
	UnitsRequired int            `json:"units_required"`
	Urgency       RequestUrgency `json:"urgency"`
	Description   *string        `json:"description"`
	Status        RequestStatus  `json:"status"`
	FulfilledDate *time.Time     `json:"fulfilled_date"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// OpenRequest is the public view of an active request from a verified
// hospital, including contact details for donors.
type OpenRequest struct {
	BloodRequest
	HospitalName     string  `json:"hospital_name"`
	HospitalLocation *string `json:"hospital_location"`
	ContactPhone     *string `json:"contact_phone"`
	ContactEmail     *string `json:"contact_email"`
}

// RequestFilter narrows public blood request listings.
type RequestFilter struct {
	BloodGroup string
	Location   string
	Urgency    string
}
