package dto

// MarkNotificationReadRequest payload for flagging a notification read.
type MarkNotificationReadRequest struct {
	NotificationID int64 `json:"notification_id"`
}
