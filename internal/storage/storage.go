package storage

import (
	"context"
	"errors"

	"finance-tracker/internal/models"
)

var (
	// ErrNotFound is returned when a lookup by key matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write breaks a uniqueness constraint.
	ErrConflict = errors.New("record conflicts with an existing one")
)

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	UpdateUser(ctx context.Context, u models.User) (models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// ExpenseFilter narrows ListExpenses. Zero fields do not filter.
type ExpenseFilter struct {
	UserID int64
}

// ExpenseRepository persists expenses.
type ExpenseRepository interface {
	CreateExpense(ctx context.Context, e models.Expense) (models.Expense, error)
	UpdateExpense(ctx context.Context, e models.Expense) (models.Expense, error)
	GetExpense(ctx context.Context, id int64) (models.Expense, error)
	ListExpenses(ctx context.Context, f ExpenseFilter) ([]models.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
}

// PaymentRepository persists payments.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, p models.Payment) (models.Payment, error)
	UpdatePayment(ctx context.Context, p models.Payment) (models.Payment, error)
	GetPayment(ctx context.Context, id int64) (models.Payment, error)
	GetPaymentByExpense(ctx context.Context, expenseID int64) (models.Payment, error)
	ListPayments(ctx context.Context) ([]models.Payment, error)
	DeletePayment(ctx context.Context, id int64) error
}

// IncomeRepository persists incomes.
type IncomeRepository interface {
	CreateIncome(ctx context.Context, i models.Income) (models.Income, error)
	UpdateIncome(ctx context.Context, i models.Income) (models.Income, error)
	GetIncome(ctx context.Context, id int64) (models.Income, error)
	ListIncomes(ctx context.Context) ([]models.Income, error)
	DeleteIncome(ctx context.Context, id int64) error
}

// SavingRepository persists savings.
type SavingRepository interface {
	CreateSaving(ctx context.Context, s models.Saving) (models.Saving, error)
	UpdateSaving(ctx context.Context, s models.Saving) (models.Saving, error)
	GetSaving(ctx context.Context, id int64) (models.Saving, error)
	ListSavings(ctx context.Context) ([]models.Saving, error)
	DeleteSaving(ctx context.Context, id int64) error
}

// ActivityRepository persists the account activity trail.
type ActivityRepository interface {
	CreateActivity(ctx context.Context, a models.Activity) (models.Activity, error)
	ListRecentActivities(ctx context.Context, userID int64, limit int) ([]models.Activity, error)
}

// Store is every repository at once.
type Store interface {
	UserRepository
	ExpenseRepository
	PaymentRepository
	IncomeRepository
	SavingRepository
	ActivityRepository
}
