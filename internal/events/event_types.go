package events

import (
	"time"

	"github.com/spec-kit/bloodbridge/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDonationRecorded      EventType = "donation_recorded"
	EventBloodRequestCreated   EventType = "blood_request_created"
	EventHospitalVerified      EventType = "hospital_verified"
	EventNotificationBroadcast EventType = "notification_broadcast"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   int64       `json:"actor_id"`
	ActorRole domain.Role `json:"actor_role"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// DonationRecordedPayload payload.
type DonationRecordedPayload struct {
	DonationID     int64  `json:"donation_id"`
	DonorID        int64  `json:"donor_id"`
	HospitalID     int64  `json:"hospital_id"`
	BloodGroup     string `json:"blood_group"`
	UnitsDonated   int    `json:"units_donated"`
	CreditsAwarded int    `json:"credits_awarded"`
}

// BloodRequestCreatedPayload payload.
type BloodRequestCreatedPayload struct {
	RequestID  int64                 `json:"request_id"`
	HospitalID int64                 `json:"hospital_id"`
	BloodGroup string                `json:"blood_group"`
	Units      int                   `json:"units"`
	Urgency    domain.RequestUrgency `json:"urgency"`
}

// HospitalVerifiedPayload payload.
type HospitalVerifiedPayload struct {
	HospitalID int64                     `json:"hospital_id"`
	Status     domain.VerificationStatus `json:"status"`
}

// NotificationBroadcastPayload payload.
type NotificationBroadcastPayload struct {
	NotificationID   int64   `json:"notification_id"`
	Title            string  `json:"title"`
	Priority         string  `json:"priority"`
	LocationFilter   *string `json:"location_filter,omitempty"`
	BloodGroupFilter *string `json:"blood_group_filter,omitempty"`
}
