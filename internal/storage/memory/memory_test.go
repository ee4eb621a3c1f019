package memory

import (
	"context"
	"testing"

	"finance-tracker/internal/models"
	"finance-tracker/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) (*Store, models.User, models.Expense) {
	t.Helper()
	ctx := context.Background()
	s := New()

	u, err := s.CreateUser(ctx, models.User{Name: "Ann", Email: "ann@example.com", PasswordDigest: "d"})
	require.NoError(t, err)

	amt := decimal.NewFromInt(10)
	d := models.NewDate(u.CreatedAt)
	e, err := s.CreateExpense(ctx, models.Expense{
		UserID: u.ID, Amount: &amt, Category: "food", Date: &d,
		Frequency: models.FrequencyOneTime, PaymentMethod: models.PaymentMethodCard,
	})
	require.NoError(t, err)
	return s, u, e
}

func TestUniqueEmail(t *testing.T) {
	s, u, _ := seed(t)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, models.User{Name: "Other", Email: "ann@example.com"})
	assert.ErrorIs(t, err, storage.ErrConflict)

	other, err := s.CreateUser(ctx, models.User{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)
	other.Email = u.Email
	_, err = s.UpdateUser(ctx, other)
	assert.ErrorIs(t, err, storage.ErrConflict)

	// keeping your own email is fine
	u.Name = "Ann B"
	_, err = s.UpdateUser(ctx, u)
	assert.NoError(t, err)
}

func TestSinglePaymentPerExpense(t *testing.T) {
	s, _, e := seed(t)
	ctx := context.Background()

	_, err := s.CreatePayment(ctx, models.Payment{ExpenseID: e.ID, Name: "card", Status: models.PaymentPaid})
	require.NoError(t, err)

	_, err = s.CreatePayment(ctx, models.Payment{ExpenseID: e.ID, Name: "again", Status: models.PaymentPaid})
	assert.ErrorIs(t, err, storage.ErrConflict)

	_, err = s.CreatePayment(ctx, models.Payment{ExpenseID: 999, Name: "x", Status: models.PaymentPaid})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	s, u, e := seed(t)
	ctx := context.Background()

	p, err := s.CreatePayment(ctx, models.Payment{ExpenseID: e.ID, Name: "card", Status: models.PaymentPaid})
	require.NoError(t, err)
	_, err = s.CreateActivity(ctx, models.Activity{UserID: u.ID, ActivityType: "LOGIN"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(ctx, u.ID))

	_, err = s.GetExpense(ctx, e.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.GetPayment(ctx, p.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	recent, err := s.ListRecentActivities(ctx, u.ID, 5)
	require.NoError(t, err)
	assert.Empty(t, recent)

	assert.ErrorIs(t, s.DeleteUser(ctx, u.ID), storage.ErrNotFound)
}

func TestListRecentActivitiesLimit(t *testing.T) {
	s, u, _ := seed(t)
	ctx := context.Background()
	for _, kind := range []string{"A", "B", "C"} {
		_, err := s.CreateActivity(ctx, models.Activity{UserID: u.ID, ActivityType: kind})
		require.NoError(t, err)
	}

	recent, err := s.ListRecentActivities(ctx, u.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "C", recent[0].ActivityType)
	assert.Equal(t, "B", recent[1].ActivityType)
}

func TestOwnerMustExist(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.CreateIncome(ctx, models.Income{UserID: 1})
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.CreateSaving(ctx, models.Saving{UserID: 1})
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.CreateExpense(ctx, models.Expense{UserID: 1})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
