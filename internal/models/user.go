package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a user account.
type User struct {
	ID             int64           `json:"id" db:"id"`
	Name           string          `json:"name" db:"name"`
	Email          string          `json:"email" db:"email"`
	PasswordDigest string          `json:"-" db:"password_digest"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	Balance        decimal.Decimal `json:"balance" db:"balance"`
}
