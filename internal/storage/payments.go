package storage

import (
	"context"

	"finance-tracker/internal/models"
)

const paymentColumns = "id, expense_id, name, amount, status, payment_date"

// CreatePayment inserts p. A second payment for the same expense is ErrConflict.
func (db *DB) CreatePayment(ctx context.Context, p models.Payment) (models.Payment, error) {
	err := db.conn.QueryRowxContext(ctx, db.rebind(
		`INSERT INTO payments (expense_id, name, amount, status, payment_date)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`),
		p.ExpenseID, p.Name, p.Amount, p.Status, p.PaymentDate,
	).Scan(&p.ID)
	if err != nil {
		return models.Payment{}, translate(err)
	}
	return p, nil
}

// UpdatePayment overwrites an existing payment.
func (db *DB) UpdatePayment(ctx context.Context, p models.Payment) (models.Payment, error) {
	res, err := db.conn.ExecContext(ctx, db.rebind(
		`UPDATE payments SET expense_id = ?, name = ?, amount = ?, status = ?, payment_date = ?
		 WHERE id = ?`),
		p.ExpenseID, p.Name, p.Amount, p.Status, p.PaymentDate, p.ID,
	)
	if err := affected(res, err); err != nil {
		return models.Payment{}, err
	}
	return db.GetPayment(ctx, p.ID)
}

// GetPayment retrieves a payment by id.
func (db *DB) GetPayment(ctx context.Context, id int64) (models.Payment, error) {
	var p models.Payment
	err := db.conn.GetContext(ctx, &p, db.rebind("SELECT "+paymentColumns+" FROM payments WHERE id = ?"), id)
	return p, translate(err)
}

// GetPaymentByExpense retrieves the payment settling an expense.
func (db *DB) GetPaymentByExpense(ctx context.Context, expenseID int64) (models.Payment, error) {
	var p models.Payment
	err := db.conn.GetContext(ctx, &p,
		db.rebind("SELECT "+paymentColumns+" FROM payments WHERE expense_id = ?"), expenseID)
	return p, translate(err)
}

// ListPayments returns all payments ordered by id.
func (db *DB) ListPayments(ctx context.Context) ([]models.Payment, error) {
	payments := []models.Payment{}
	err := db.conn.SelectContext(ctx, &payments, "SELECT "+paymentColumns+" FROM payments ORDER BY id")
	return payments, translate(err)
}

// DeletePayment removes a payment by id.
func (db *DB) DeletePayment(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, db.rebind("DELETE FROM payments WHERE id = ?"), id)
	return affected(res, err)
}
