package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Money goes over the wire as a JSON number.
	decimal.MarshalJSONWithoutQuotes = true
}

// Frequency is how often an expense or income recurs.
type Frequency string

const (
	FrequencyOneTime Frequency = "ONE_TIME"
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyYearly  Frequency = "YEARLY"
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyOneTime, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// PaymentMethod is how an expense is paid.
type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCard || m == PaymentMethodTransfer
}

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

// Valid reports whether s is one of the known statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// Expense represents a financial expense record owned by one user.
type Expense struct {
	ID            int64            `json:"id" db:"id"`
	UserID        int64            `json:"userId" db:"user_id"`
	Amount        *decimal.Decimal `json:"amount" db:"amount"`
	Category      string           `json:"category" db:"category"`
	Description   string           `json:"description,omitempty" db:"description"`
	Date          *Date            `json:"date" db:"date"`
	Frequency     Frequency        `json:"frequency" db:"frequency"`
	EndDate       *Date            `json:"endDate,omitempty" db:"end_date"`
	NextDueDate   *Date            `json:"nextDueDate,omitempty" db:"next_due_date"`
	PaymentMethod PaymentMethod    `json:"paymentMethod" db:"payment_method"`
}

// Payment settles exactly one expense.
type Payment struct {
	ID          int64            `json:"id" db:"id"`
	ExpenseID   int64            `json:"expenseId" db:"expense_id"`
	Name        string           `json:"name" db:"name"`
	Amount      *decimal.Decimal `json:"amount,omitempty" db:"amount"`
	Status      PaymentStatus    `json:"status" db:"status"`
	PaymentDate *Date            `json:"paymentDate" db:"payment_date"`
}

// Income represents money received by a user.
type Income struct {
	ID          int64            `json:"id" db:"id"`
	UserID      int64            `json:"userId" db:"user_id"`
	Amount      *decimal.Decimal `json:"amount" db:"amount"`
	Source      string           `json:"source" db:"source"`
	Date        *Date            `json:"date" db:"date"`
	Description string           `json:"description,omitempty" db:"description"`
	Frequency   Frequency        `json:"frequency,omitempty" db:"frequency"`
	EndDate     *Date            `json:"endDate,omitempty" db:"end_date"`
}

// Saving represents money put aside towards a goal.
type Saving struct {
	ID          int64            `json:"id" db:"id"`
	UserID      int64            `json:"userId" db:"user_id"`
	Amount      *decimal.Decimal `json:"amount" db:"amount"`
	Date        *Date            `json:"date,omitempty" db:"date"`
	Goal        string           `json:"goal" db:"goal"`
	Description string           `json:"description,omitempty" db:"description"`
}

// Activity is one entry of a user's account history.
type Activity struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"userId" db:"user_id"`
	ActivityType string    `json:"activityType" db:"activity_type"`
	Description  string    `json:"description" db:"description"`
	Icon         string    `json:"icon,omitempty" db:"icon"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
