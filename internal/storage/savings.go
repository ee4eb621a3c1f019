package storage

import (
	"context"

	"finance-tracker/internal/models"
)

const savingColumns = "id, user_id, amount, date, goal, description"

// CreateSaving inserts s and returns it with its generated id.
func (db *DB) CreateSaving(ctx context.Context, s models.Saving) (models.Saving, error) {
	err := db.conn.QueryRowxContext(ctx, db.rebind(
		`INSERT INTO savings (user_id, amount, date, goal, description)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`),
		s.UserID, s.Amount, s.Date, s.Goal, s.Description,
	).Scan(&s.ID)
	if err != nil {
		return models.Saving{}, translate(err)
	}
	return s, nil
}

// UpdateSaving overwrites an existing saving.
func (db *DB) UpdateSaving(ctx context.Context, s models.Saving) (models.Saving, error) {
	res, err := db.conn.ExecContext(ctx, db.rebind(
		`UPDATE savings SET user_id = ?, amount = ?, date = ?, goal = ?, description = ? WHERE id = ?`),
		s.UserID, s.Amount, s.Date, s.Goal, s.Description, s.ID,
	)
	if err := affected(res, err); err != nil {
		return models.Saving{}, err
	}
	return db.GetSaving(ctx, s.ID)
}

// GetSaving retrieves a saving by id.
func (db *DB) GetSaving(ctx context.Context, id int64) (models.Saving, error) {
	var s models.Saving
	err := db.conn.GetContext(ctx, &s, db.rebind("SELECT "+savingColumns+" FROM savings WHERE id = ?"), id)
	return s, translate(err)
}

// ListSavings returns all savings ordered by id.
func (db *DB) ListSavings(ctx context.Context) ([]models.Saving, error) {
	savings := []models.Saving{}
	err := db.conn.SelectContext(ctx, &savings, "SELECT "+savingColumns+" FROM savings ORDER BY id")
	return savings, translate(err)
}

// DeleteSaving removes a saving by id.
func (db *DB) DeleteSaving(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, db.rebind("DELETE FROM savings WHERE id = ?"), id)
	return affected(res, err)
}
