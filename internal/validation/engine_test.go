package validation

import (
	"context"
	"errors"
	"testing"
	"time"

	"finance-tracker/internal/apperr"
	"finance-tracker/internal/models"
	"finance-tracker/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newEngine() *Engine {
	return New(WithClock(func() time.Time { return fixedNow }))
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func day(s string) *models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func details(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)
	e := apperr.As(err)
	require.NotNil(t, e, "expected *apperr.Error, got %T", err)
	require.Equal(t, apperr.KindValidation, e.Kind)
	return e.Details
}

func validExpense() models.Expense {
	return models.Expense{
		UserID:        1,
		Amount:        amount("100.50"),
		Category:      "Groceries",
		Date:          day("2025-06-15"),
		Frequency:     models.FrequencyOneTime,
		PaymentMethod: models.PaymentMethodCard,
	}
}

func TestExpense(t *testing.T) {
	e := newEngine()

	tests := []struct {
		name   string
		mutate func(*models.Expense)
		want   []string
	}{
		{"valid", func(*models.Expense) {}, nil},
		{"valid with dates", func(x *models.Expense) {
			x.EndDate = day("2025-12-31")
			x.NextDueDate = day("2025-06-15")
		}, nil},
		{"negative amount", func(x *models.Expense) { x.Amount = amount("-5") },
			[]string{"Amount must be greater than 0"}},
		{"zero amount", func(x *models.Expense) { x.Amount = amount("0") },
			[]string{"Amount must be greater than 0"}},
		{"missing amount", func(x *models.Expense) { x.Amount = nil },
			[]string{"Amount must be greater than 0"}},
		{"trailing zeros are fine", func(x *models.Expense) { x.Amount = amount("100.5000") }, nil},
		{"sub-cent amount", func(x *models.Expense) { x.Amount = amount("0.001") },
			[]string{MsgAmountScale}},
		{"negative amount and empty category", func(x *models.Expense) {
			x.Amount = amount("-5")
			x.Category = ""
		}, []string{"Amount must be greater than 0", "Category cannot be empty"}},
		{"blank category", func(x *models.Expense) { x.Category = "   " },
			[]string{"Category cannot be empty"}},
		{"future date", func(x *models.Expense) { x.Date = day("2025-06-16") },
			[]string{"Expense date cannot be in the future"}},
		{"missing date", func(x *models.Expense) { x.Date = nil },
			[]string{"Date cannot be null"}},
		{"missing enums", func(x *models.Expense) {
			x.Frequency = ""
			x.PaymentMethod = ""
		}, []string{"Frequency must be set", "Payment method must be set"}},
		{"unknown enums", func(x *models.Expense) {
			x.Frequency = "WEEKLY"
			x.PaymentMethod = "CASH"
		}, []string{"Invalid frequency: WEEKLY", "Invalid payment method: CASH"}},
		{"end date before date", func(x *models.Expense) { x.EndDate = day("2025-06-14") },
			[]string{"End date cannot be before the expense date"}},
		{"next due before date", func(x *models.Expense) { x.NextDueDate = day("2025-01-01") },
			[]string{"Next due date cannot be before the expense date"}},
		{"everything wrong", func(x *models.Expense) {
			*x = models.Expense{EndDate: day("2020-01-01")}
		}, []string{
			"Amount must be greater than 0",
			"Category cannot be empty",
			"Date cannot be null",
			"Frequency must be set",
			"Payment method must be set",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := validExpense()
			tt.mutate(&x)
			err := e.Expense(x)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, details(t, err))
		})
	}
}

func TestIncome(t *testing.T) {
	e := newEngine()
	valid := models.Income{UserID: 1, Amount: amount("2500"), Source: "Salary", Date: day("2025-06-01")}

	require.NoError(t, e.Income(valid))

	bad := models.Income{Amount: amount("0"), Date: day("2025-07-01"), Source: " ", Frequency: "HOURLY"}
	assert.Equal(t, []string{
		"Amount must be greater than zero.",
		"Date cannot be in the future.",
		"Source cannot be empty.",
		"Invalid frequency: HOURLY",
	}, details(t, e.Income(bad)))

	assert.Equal(t, []string{"Amount cannot be null.", "Date cannot be null."},
		details(t, e.Income(models.Income{Source: "Gift"})))
}

func TestPayment(t *testing.T) {
	e := newEngine()
	valid := models.Payment{ExpenseID: 3, Name: "Rent", Status: models.PaymentPaid, PaymentDate: day("2025-06-01")}
	require.NoError(t, e.Payment(valid))

	assert.Equal(t, []string{
		"Name cannot be empty",
		"Status must be set",
		"Payment date cannot be null",
		MsgPaymentExpense,
	}, details(t, e.Payment(models.Payment{})))

	withAmount := valid
	withAmount.Amount = amount("-1")
	withAmount.Status = "LOST"
	assert.Equal(t, []string{"Invalid status: LOST", "Amount must be greater than 0"},
		details(t, e.Payment(withAmount)))
}

func TestSaving(t *testing.T) {
	e := newEngine()

	assert.NoError(t, e.Saving(models.Saving{Amount: amount("0"), Goal: "Car"}))
	assert.Equal(t, []string{"Amount cannot be negative", "Goal cannot be empty"},
		details(t, e.Saving(models.Saving{Amount: amount("-2000")})))
	assert.Equal(t, []string{"Amount cannot be null"},
		details(t, e.Saving(models.Saving{Goal: "Apartment"})))
}

func TestAmountScale(t *testing.T) {
	e := newEngine()

	assert.Equal(t, []string{MsgAmountScale}, details(t, e.Income(models.Income{
		Amount: amount("2500.125"), Source: "Salary", Date: day("2025-06-01"),
	})))
	assert.Equal(t, []string{MsgAmountScale}, details(t, e.Payment(models.Payment{
		ExpenseID: 3, Name: "Rent", Status: models.PaymentPaid, PaymentDate: day("2025-06-01"), Amount: amount("9.999"),
	})))
	assert.Equal(t, []string{MsgAmountScale}, details(t, e.Saving(models.Saving{Amount: amount("0.005"), Goal: "Car"})))
	assert.NoError(t, e.Saving(models.Saving{Amount: amount("10.25"), Goal: "Car"}))
}

type fakeOwners map[string]models.User

func (f fakeOwners) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	if u, ok := f[email]; ok {
		return u, nil
	}
	return models.User{}, storage.ErrNotFound
}

type brokenOwners struct{}

func (brokenOwners) GetUserByEmail(context.Context, string) (models.User, error) {
	return models.User{}, errors.New("connection reset")
}

func TestUser(t *testing.T) {
	e := newEngine()
	ctx := context.Background()
	owners := fakeOwners{"taken@example.com": {ID: 1, Email: "taken@example.com"}}

	assert.NoError(t, e.User(ctx, UserInput{Name: "Ana", Email: "ana@example.com", Password: "pw"}, owners))

	assert.Equal(t, []string{MsgEmailExists},
		details(t, e.User(ctx, UserInput{Name: "Bob", Email: "taken@example.com", Password: "pw"}, owners)))

	// the holder of the address may keep it
	assert.NoError(t, e.User(ctx, UserInput{ID: 1, Name: "Taken", Email: "taken@example.com", Password: "pw"}, owners))

	assert.Equal(t, []string{"Name cannot be empty", "Email cannot be empty", "Password cannot be empty"},
		details(t, e.User(ctx, UserInput{}, owners)))

	assert.Equal(t, []string{"Email is not valid"},
		details(t, e.User(ctx, UserInput{Name: "C", Email: "not-an-email", Password: "pw"}, owners)))

	assert.NoError(t, e.User(ctx, UserInput{Name: "D", Email: "taken@example.com", Password: "pw"}, nil))
}

func TestUser_LookupFailureIsInternal(t *testing.T) {
	err := newEngine().User(context.Background(),
		UserInput{Name: "A", Email: "a@b.com", Password: "pw"}, brokenOwners{})
	assert.True(t, apperr.IsKind(err, apperr.KindInternal))
}
