package domain

import "time"

// Achievement is an earned donor reward.
type Achievement struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	EarnedDate  time.Time `json:"earned_date"`
}

// AchievementProgress describes a milestone and whether the donor has
// reached it.
type AchievementProgress struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Threshold   int    `json:"threshold"`
	Earned      bool   `json:"earned"`
}
