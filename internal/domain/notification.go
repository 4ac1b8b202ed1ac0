package domain

import "time"

// Notification is a broadcast or targeted message. A nil UserID means
// system-wide; location and blood group filters narrow the audience.
type Notification struct {
	ID               int64      `json:"id"`
	UserID           *int64     `json:"user_id"`
	Title            string     `json:"title"`
	Message          string     `json:"message"`
	Type             string     `json:"type"`
	Priority         string     `json:"priority"`
	LocationFilter   *string    `json:"location_filter"`
	BloodGroupFilter *string    `json:"blood_group_filter"`
	IsRead           bool       `json:"is_read"`
	ReadAt           *time.Time `json:"read_at"`
	CreatedAt        time.Time  `json:"created_at"`
}

// NewNotification is the input for creating a notification.
type NewNotification struct {
	UserID           *int64
	Title            string
	Message          string
	Type             string
	Priority         string
	LocationFilter   *string
	BloodGroupFilter *string
}
