package storage

import (
	"context"
	"time"

	"finance-tracker/internal/models"
)

// CreateActivity appends an entry to a user's activity trail.
func (db *DB) CreateActivity(ctx context.Context, a models.Activity) (models.Activity, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	err := db.conn.QueryRowxContext(ctx, db.rebind(
		`INSERT INTO user_activities (user_id, activity_type, description, icon, created_at)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`),
		a.UserID, a.ActivityType, a.Description, a.Icon, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		return models.Activity{}, translate(err)
	}
	return a, nil
}

// ListRecentActivities returns at most limit entries for userID, newest first.
func (db *DB) ListRecentActivities(ctx context.Context, userID int64, limit int) ([]models.Activity, error) {
	activities := []models.Activity{}
	err := db.conn.SelectContext(ctx, &activities, db.rebind(
		`SELECT id, user_id, activity_type, description, icon, created_at
		 FROM user_activities WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`),
		userID, limit,
	)
	return activities, translate(err)
}
