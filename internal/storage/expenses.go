package storage

import (
	"context"

	"finance-tracker/internal/models"
)

const expenseColumns = `id, user_id, amount, category, description, date, frequency,
	end_date, next_due_date, payment_method`

// CreateExpense inserts e and returns it with its generated id.
func (db *DB) CreateExpense(ctx context.Context, e models.Expense) (models.Expense, error) {
	err := db.conn.QueryRowxContext(ctx, db.rebind(
		`INSERT INTO expenses (user_id, amount, category, description, date, frequency,
			end_date, next_due_date, payment_method)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		e.UserID, e.Amount, e.Category, e.Description, e.Date, e.Frequency,
		e.EndDate, e.NextDueDate, e.PaymentMethod,
	).Scan(&e.ID)
	if err != nil {
		return models.Expense{}, translate(err)
	}
	return e, nil
}

// UpdateExpense overwrites an existing expense.
func (db *DB) UpdateExpense(ctx context.Context, e models.Expense) (models.Expense, error) {
	res, err := db.conn.ExecContext(ctx, db.rebind(
		`UPDATE expenses SET user_id = ?, amount = ?, category = ?, description = ?, date = ?,
			frequency = ?, end_date = ?, next_due_date = ?, payment_method = ?
		 WHERE id = ?`),
		e.UserID, e.Amount, e.Category, e.Description, e.Date,
		e.Frequency, e.EndDate, e.NextDueDate, e.PaymentMethod, e.ID,
	)
	if err := affected(res, err); err != nil {
		return models.Expense{}, err
	}
	return db.GetExpense(ctx, e.ID)
}

// GetExpense retrieves a single expense by ID.
func (db *DB) GetExpense(ctx context.Context, id int64) (models.Expense, error) {
	var e models.Expense
	err := db.conn.GetContext(ctx, &e, db.rebind("SELECT "+expenseColumns+" FROM expenses WHERE id = ?"), id)
	return e, translate(err)
}

// ListExpenses returns expenses ordered by date descending.
func (db *DB) ListExpenses(ctx context.Context, f ExpenseFilter) ([]models.Expense, error) {
	query := "SELECT " + expenseColumns + " FROM expenses"
	var args []any
	if f.UserID != 0 {
		query += " WHERE user_id = ?"
		args = append(args, f.UserID)
	}
	query += " ORDER BY date DESC, id DESC"

	expenses := []models.Expense{}
	err := db.conn.SelectContext(ctx, &expenses, db.rebind(query), args...)
	return expenses, translate(err)
}

// DeleteExpense removes an expense and its payment.
func (db *DB) DeleteExpense(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, db.rebind("DELETE FROM expenses WHERE id = ?"), id)
	return affected(res, err)
}
