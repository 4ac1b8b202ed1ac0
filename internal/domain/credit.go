package domain

import "time"

// CreditType enumerates credit transaction kinds.
type CreditType string

const (
	CreditEarned   CreditType = "earned"
	CreditAdjusted CreditType = "adjusted"
)

// CreditEntry is one credit transaction on a user's reward balance.
type CreditEntry struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	Type          CreditType `json:"transaction_type"`
	Amount        int        `json:"amount"`
	Description   string     `json:"description"`
	ReferenceID   *int64     `json:"reference_id"`
	ReferenceType *string    `json:"reference_type"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CreditReport is the admin view joining the transaction with its owner.
type CreditReport struct {
	CreditEntry
	UserName string `json:"user_name"`
	UserType Role   `json:"user_type"`
}
