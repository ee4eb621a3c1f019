// Package validation holds the per-entity business rules. Every applicable
// rule runs on each call and all violations are reported together.
package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"finance-tracker/internal/apperr"
	"finance-tracker/internal/models"
	"finance-tracker/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Messages shared with callers that report the same violation.
const (
	MsgEmailExists    = "Email already exists!"
	MsgPaymentExpense = "Payment must be linked to an Expense"
	MsgAmountScale    = "Amount must have at most 2 decimal places"
)

// moneyScale is the number of decimal places amount columns store.
const moneyScale = 2

// EmailOwnerLookup finds the account that currently holds an email address.
// It must return storage.ErrNotFound when nobody does.
type EmailOwnerLookup interface {
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

// UserInput is the part of a user account the rules look at. Password is the
// plaintext on registration and the stored digest when it is unchanged.
type UserInput struct {
	ID       int64
	Name     string
	Email    string
	Password string
}

// Engine evaluates rule sets. It is immutable and safe for concurrent use.
type Engine struct {
	fields *validator.Validate
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock used for "not in the future" rules.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New returns an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		fields: validator.New(validator.WithRequiredStructEnabled()),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// violations accumulates messages in evaluation order.
type violations []string

func (v *violations) add(format string, args ...any) {
	*v = append(*v, fmt.Sprintf(format, args...))
}

func (v *violations) check(ok bool, msg string) {
	if !ok {
		v.add("%s", msg)
	}
}

func (v violations) err() error {
	if len(v) == 0 {
		return nil
	}
	return apperr.Validation(v...)
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// scale flags amounts storage would round.
func (v *violations) scale(d *decimal.Decimal) {
	if d != nil && !d.Equal(d.Round(moneyScale)) {
		v.add("%s", MsgAmountScale)
	}
}

func (e *Engine) today() models.Date { return models.Today(e.now()) }

// Expense validates an expense record.
func (e *Engine) Expense(x models.Expense) error {
	var v violations

	v.check(x.Amount != nil && x.Amount.IsPositive(), "Amount must be greater than 0")
	v.scale(x.Amount)
	v.check(!blank(x.Category), "Category cannot be empty")

	if x.Date == nil {
		v.add("Date cannot be null")
	} else if x.Date.After(e.today()) {
		v.add("Expense date cannot be in the future")
	}

	switch {
	case x.Frequency == "":
		v.add("Frequency must be set")
	case !x.Frequency.Valid():
		v.add("Invalid frequency: %s", x.Frequency)
	}

	switch {
	case x.PaymentMethod == "":
		v.add("Payment method must be set")
	case !x.PaymentMethod.Valid():
		v.add("Invalid payment method: %s", x.PaymentMethod)
	}

	if x.Date != nil && x.EndDate != nil && x.EndDate.Before(*x.Date) {
		v.add("End date cannot be before the expense date")
	}
	if x.Date != nil && x.NextDueDate != nil && x.NextDueDate.Before(*x.Date) {
		v.add("Next due date cannot be before the expense date")
	}

	return v.err()
}

// Income validates an income record.
func (e *Engine) Income(x models.Income) error {
	var v violations

	if x.Amount == nil {
		v.add("Amount cannot be null.")
	} else if !x.Amount.IsPositive() {
		v.add("Amount must be greater than zero.")
	}
	v.scale(x.Amount)

	if x.Date == nil {
		v.add("Date cannot be null.")
	} else if x.Date.After(e.today()) {
		v.add("Date cannot be in the future.")
	}

	v.check(!blank(x.Source), "Source cannot be empty.")

	if x.Frequency != "" && !x.Frequency.Valid() {
		v.add("Invalid frequency: %s", x.Frequency)
	}
	if x.Date != nil && x.EndDate != nil && x.EndDate.Before(*x.Date) {
		v.add("End date cannot be before the income date.")
	}

	return v.err()
}

// Payment validates the fields of a payment. Whether the referenced expense
// exists is checked by the payment service.
func (e *Engine) Payment(x models.Payment) error {
	var v violations

	v.check(!blank(x.Name), "Name cannot be empty")

	switch {
	case x.Status == "":
		v.add("Status must be set")
	case !x.Status.Valid():
		v.add("Invalid status: %s", x.Status)
	}

	v.check(x.PaymentDate != nil, "Payment date cannot be null")
	v.check(x.ExpenseID > 0, MsgPaymentExpense)

	if x.Amount != nil && !x.Amount.IsPositive() {
		v.add("Amount must be greater than 0")
	}
	v.scale(x.Amount)

	return v.err()
}

// Saving validates a saving record.
func (e *Engine) Saving(x models.Saving) error {
	var v violations

	if x.Amount == nil {
		v.add("Amount cannot be null")
	} else if x.Amount.IsNegative() {
		v.add("Amount cannot be negative")
	}
	v.scale(x.Amount)
	v.check(!blank(x.Goal), "Goal cannot be empty")

	return v.err()
}

// User validates account fields and, when owners is non-nil, that no other
// account holds the same email.
func (e *Engine) User(ctx context.Context, u UserInput, owners EmailOwnerLookup) error {
	var v violations

	v.check(!blank(u.Name), "Name cannot be empty")

	emailOK := false
	switch {
	case blank(u.Email):
		v.add("Email cannot be empty")
	case e.fields.Var(u.Email, "email") != nil:
		v.add("Email is not valid")
	default:
		emailOK = true
	}

	v.check(!blank(u.Password), "Password cannot be empty")

	if emailOK && owners != nil {
		owner, err := owners.GetUserByEmail(ctx, u.Email)
		switch {
		case err == nil:
			if owner.ID != u.ID {
				v.add("%s", MsgEmailExists)
			}
		case errors.Is(err, storage.ErrNotFound):
		default:
			return apperr.Internal(fmt.Errorf("email uniqueness lookup: %w", err))
		}
	}

	return v.err()
}
