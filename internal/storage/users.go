package storage

import (
	"context"
	"time"

	"finance-tracker/internal/models"
)

const userColumns = "id, name, email, password_digest, created_at, balance"

// CreateUser inserts u and returns it with its generated id.
func (db *DB) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	err := db.conn.QueryRowxContext(ctx, db.rebind(
		`INSERT INTO users (name, email, password_digest, created_at, balance)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`),
		u.Name, u.Email, u.PasswordDigest, u.CreatedAt, u.Balance,
	).Scan(&u.ID)
	if err != nil {
		return models.User{}, translate(err)
	}
	return u, nil
}

// UpdateUser overwrites the mutable fields of an existing user.
func (db *DB) UpdateUser(ctx context.Context, u models.User) (models.User, error) {
	res, err := db.conn.ExecContext(ctx, db.rebind(
		`UPDATE users SET name = ?, email = ?, password_digest = ?, balance = ? WHERE id = ?`),
		u.Name, u.Email, u.PasswordDigest, u.Balance, u.ID,
	)
	if err := affected(res, err); err != nil {
		return models.User{}, err
	}
	return db.GetUser(ctx, u.ID)
}

// GetUser retrieves a user by id.
func (db *DB) GetUser(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := db.conn.GetContext(ctx, &u, db.rebind("SELECT "+userColumns+" FROM users WHERE id = ?"), id)
	return u, translate(err)
}

// GetUserByEmail retrieves a user by email.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := db.conn.GetContext(ctx, &u, db.rebind("SELECT "+userColumns+" FROM users WHERE email = ?"), email)
	return u, translate(err)
}

// ListUsers returns all users ordered by id.
func (db *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := db.conn.SelectContext(ctx, &users, "SELECT "+userColumns+" FROM users ORDER BY id")
	return users, translate(err)
}

// DeleteUser removes a user and everything the user owns.
func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, db.rebind("DELETE FROM users WHERE id = ?"), id)
	return affected(res, err)
}

// UserCount returns the number of users in the database.
func (db *DB) UserCount(ctx context.Context) (int, error) {
	var count int
	err := db.conn.GetContext(ctx, &count, "SELECT COUNT(*) FROM users")
	return count, err
}
