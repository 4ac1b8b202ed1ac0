package domain

import "time"

// InventoryItem is one blood group's stock at a hospital.
type InventoryItem struct {
	ID             int64      `json:"id"`
	HospitalID     int64      `json:"hospital_id"`
	BloodGroup     string     `json:"blood_group"`
	UnitsAvailable int        `json:"units_available"`
	UnitsReserved  int        `json:"units_reserved"`
	ExpiryDate     *time.Time `json:"expiry_date"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// InventorySummary aggregates stock per blood group across hospitals.
type InventorySummary struct {
	BloodGroup     string `json:"blood_group"`
	TotalAvailable int    `json:"total_available"`
	TotalReserved  int    `json:"total_reserved"`
	HospitalCount  int    `json:"hospital_count"`
}
