package domain

import "time"

// Role is the coarse-grained authorization unit. Donor accounts keep the
// original wire value "user" in tokens and the user_type column.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHospital Role = "hospital"
	RoleDonor    Role = "user"
)

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHospital, RoleDonor:
		return true
	}
	return false
}

// UserStatus represents account lifecycle states.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

// User is the credential record shared by donors, hospitals and admins.
type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	Phone        *string    `json:"phone"`
	Type         Role       `json:"user_type"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DonorProfile carries donor-specific profile and accumulated stats.
type DonorProfile struct {
	UserID                int64      `json:"user_id"`
	Age                   *int       `json:"age"`
	Gender                *string    `json:"gender"`
	BloodGroup            *string    `json:"blood_group"`
	Location              *string    `json:"location"`
	Address               *string    `json:"address"`
	EmergencyContact      *string    `json:"emergency_contact"`
	PreferredDonationDays *string    `json:"preferred_donation_days"`
	PreferredDonationTime *string    `json:"preferred_donation_time"`
	TotalDonations        int        `json:"total_donations"`
	TotalCredits          int        `json:"total_credits"`
	LastDonationDate      *time.Time `json:"last_donation_date"`
	NextEligibleDate      *time.Time `json:"next_eligible_date"`
}

// Account is the joined view returned by profile endpoints. The password
// hash never serializes.
type Account struct {
	User
	Profile  *DonorProfile   `json:"profile,omitempty"`
	Hospital *HospitalDetail `json:"hospital,omitempty"`
}
