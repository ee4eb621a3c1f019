package storage

import (
	"context"

	"finance-tracker/internal/models"
)

const incomeColumns = "id, user_id, amount, source, date, description, frequency, end_date"

// CreateIncome inserts i and returns it with its generated id.
func (db *DB) CreateIncome(ctx context.Context, i models.Income) (models.Income, error) {
	err := db.conn.QueryRowxContext(ctx, db.rebind(
		`INSERT INTO incomes (user_id, amount, source, date, description, frequency, end_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		i.UserID, i.Amount, i.Source, i.Date, i.Description, i.Frequency, i.EndDate,
	).Scan(&i.ID)
	if err != nil {
		return models.Income{}, translate(err)
	}
	return i, nil
}

// UpdateIncome overwrites an existing income.
func (db *DB) UpdateIncome(ctx context.Context, i models.Income) (models.Income, error) {
	res, err := db.conn.ExecContext(ctx, db.rebind(
		`UPDATE incomes SET user_id = ?, amount = ?, source = ?, date = ?, description = ?,
			frequency = ?, end_date = ?
		 WHERE id = ?`),
		i.UserID, i.Amount, i.Source, i.Date, i.Description, i.Frequency, i.EndDate, i.ID,
	)
	if err := affected(res, err); err != nil {
		return models.Income{}, err
	}
	return db.GetIncome(ctx, i.ID)
}

// GetIncome retrieves an income by id.
func (db *DB) GetIncome(ctx context.Context, id int64) (models.Income, error) {
	var i models.Income
	err := db.conn.GetContext(ctx, &i, db.rebind("SELECT "+incomeColumns+" FROM incomes WHERE id = ?"), id)
	return i, translate(err)
}

// ListIncomes returns incomes ordered by date descending.
func (db *DB) ListIncomes(ctx context.Context) ([]models.Income, error) {
	incomes := []models.Income{}
	err := db.conn.SelectContext(ctx, &incomes,
		"SELECT "+incomeColumns+" FROM incomes ORDER BY date DESC, id DESC")
	return incomes, translate(err)
}

// DeleteIncome removes an income by id.
func (db *DB) DeleteIncome(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, db.rebind("DELETE FROM incomes WHERE id = ?"), id)
	return affected(res, err)
}
