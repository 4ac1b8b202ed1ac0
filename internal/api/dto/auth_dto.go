package dto

// RegisterRequest payload for new donor and hospital accounts. The
// role-specific fields are optional for donors.
type RegisterRequest struct {
	Email                 string  `json:"email"`
	Password              string  `json:"password"`
	Name                  string  `json:"name"`
	UserType              string  `json:"user_type"`
	Phone                 *string `json:"phone"`
	Age                   *int    `json:"age"`
	Gender                *string `json:"gender"`
	BloodGroup            *string `json:"blood_group"`
	Location              *string `json:"location"`
	Address               *string `json:"address"`
	EmergencyContact      *string `json:"emergency_contact"`
	PreferredDonationDays *string `json:"preferred_donation_days"`
	PreferredDonationTime *string `json:"preferred_donation_time"`
	HospitalName          *string `json:"hospital_name"`
	CertificationNumber   *string `json:"certification_number"`
	LicenseNumber         *string `json:"license_number"`
	ContactPerson         *string `json:"contact_person"`
	ContactPhone          *string `json:"contact_phone"`
	ContactEmail          *string `json:"contact_email"`
	BloodBankContact      *string `json:"blood_bank_contact"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest payload for profile updates of any role.
type UpdateProfileRequest struct {
	Name                  string  `json:"name"`
	Phone                 *string `json:"phone"`
	Age                   *int    `json:"age"`
	Gender                *string `json:"gender"`
	BloodGroup            *string `json:"blood_group"`
	Location              *string `json:"location"`
	Address               *string `json:"address"`
	EmergencyContact      *string `json:"emergency_contact"`
	PreferredDonationDays *string `json:"preferred_donation_days"`
	PreferredDonationTime *string `json:"preferred_donation_time"`
	HospitalName          *string `json:"hospital_name"`
	ContactPerson         *string `json:"contact_person"`
	ContactPhone          *string `json:"contact_phone"`
	ContactEmail          *string `json:"contact_email"`
	BloodBankContact      *string `json:"blood_bank_contact"`
}

// ChangePasswordRequest payload for password changes.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
