package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"finance-tracker/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewWithConn(conn, DriverPostgres), mock
}

func TestPostgresPlaceholders(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_digest", "created_at", "balance"}).
			AddRow(7, "Ann", "ann@example.com", "digest", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), "3.50"))

	u, err := db.GetUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, "3.5", u.Balance.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO payments`).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value"})

	_, err := db.CreatePayment(context.Background(), models.Payment{ExpenseID: 1, Name: "x", Status: models.PaymentPaid})
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresNoRows(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT .* FROM expenses WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnError(sql.ErrNoRows)

	_, err := db.GetExpense(context.Background(), 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteNothingAffected(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`DELETE FROM incomes WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, db.DeleteIncome(context.Background(), 5), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
