package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"finance-tracker/internal/apperr"
	"finance-tracker/internal/auth"
	"finance-tracker/internal/models"
	"finance-tracker/internal/storage"
	"finance-tracker/internal/validation"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// NewUser is a registration or admin-created account.
type NewUser struct {
	Name     string
	Email    string
	Password string
	Balance  *decimal.Decimal
}

// UserUpdate replaces name and email. A non-empty Password is a password
// change and needs CurrentPassword.
type UserUpdate struct {
	ID              int64
	Name            string
	Email           string
	Password        string
	CurrentPassword string
	Balance         *decimal.Decimal
}

// UserService manages accounts.
type UserService struct {
	users      storage.UserRepository
	hasher     auth.Hasher
	rules      *validation.Engine
	activities *ActivityService
	log        zerolog.Logger
}

// NewUserService wires a UserService. activities may be nil.
func NewUserService(users storage.UserRepository, hasher auth.Hasher, rules *validation.Engine,
	activities *ActivityService, log zerolog.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, rules: rules, activities: activities, log: log}
}

// Create validates and stores a new account with a hashed password.
func (s *UserService) Create(ctx context.Context, in NewUser) (models.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	err := s.rules.User(ctx, validation.UserInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	}, s.users)
	if err != nil {
		s.log.Info().Str("email", in.Email).Err(err).Msg("User rejected")
		return models.User{}, err
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, apperr.Internal(fmt.Errorf("hash password: %w", err))
	}

	u := models.User{Name: in.Name, Email: in.Email, PasswordDigest: digest}
	if in.Balance != nil {
		u.Balance = *in.Balance
	}

	created, err := s.users.CreateUser(ctx, u)
	if errors.Is(err, storage.ErrConflict) {
		return models.User{}, apperr.Validation(validation.MsgEmailExists)
	}
	if err != nil {
		return models.User{}, apperr.Internal(fmt.Errorf("create user: %w", err))
	}

	s.log.Debug().Int64("user_id", created.ID).Msg("User created")
	return created, nil
}

// Get returns the user with id.
func (s *UserService) Get(ctx context.Context, id int64) (models.User, error) {
	u, err := s.users.GetUser(ctx, id)
	if err != nil {
		return models.User{}, lookupErr(entityUser, id, err)
	}
	return u, nil
}

// GetByEmail returns the user holding email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (models.User, error) {
	if strings.TrimSpace(email) == "" {
		return models.User{}, apperr.InvalidArgument("Email must not be blank")
	}
	u, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return models.User{}, apperr.NotFoundf("User with email %s not found", email)
	}
	if err != nil {
		return models.User{}, apperr.Internal(fmt.Errorf("load user by email: %w", err))
	}
	return u, nil
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list users: %w", err))
	}
	return users, nil
}

// Update applies in to an existing account. On any rejection the stored
// account, digest included, is left unchanged.
func (s *UserService) Update(ctx context.Context, in UserUpdate) (models.User, error) {
	existing, err := s.users.GetUser(ctx, in.ID)
	if err != nil {
		return models.User{}, lookupErr(entityUser, in.ID, err)
	}

	changingPassword := in.Password != ""
	digest := existing.PasswordDigest
	if changingPassword {
		if in.CurrentPassword == "" {
			return models.User{}, apperr.InvalidArgument("Current password is required to change password")
		}
		if !s.hasher.Verify(in.CurrentPassword, existing.PasswordDigest) {
			return models.User{}, apperr.InvalidArgument("Current password is incorrect")
		}
	}

	in.Email = strings.TrimSpace(in.Email)
	password := digest
	if changingPassword {
		password = in.Password
	}
	err = s.rules.User(ctx, validation.UserInput{
		ID:       in.ID,
		Name:     in.Name,
		Email:    in.Email,
		Password: password,
	}, s.users)
	if err != nil {
		s.log.Info().Int64("user_id", in.ID).Err(err).Msg("User update rejected")
		return models.User{}, err
	}

	if changingPassword {
		if digest, err = s.hasher.Hash(in.Password); err != nil {
			return models.User{}, apperr.Internal(fmt.Errorf("hash password: %w", err))
		}
	}

	existing.Name = in.Name
	existing.Email = in.Email
	existing.PasswordDigest = digest
	if in.Balance != nil {
		existing.Balance = *in.Balance
	}

	updated, err := s.users.UpdateUser(ctx, existing)
	if errors.Is(err, storage.ErrConflict) {
		return models.User{}, apperr.Validation(validation.MsgEmailExists)
	}
	if err != nil {
		return models.User{}, writeErr("update", entityUser, in.ID, err)
	}

	s.activities.record(ctx, updated.ID, ActivityProfileUpdate, "Profile updated", iconProfileUpdate)
	if changingPassword {
		s.activities.record(ctx, updated.ID, ActivityPasswordChange, "Password changed", iconPasswordChange)
	}
	s.log.Debug().Int64("user_id", updated.ID).Bool("password_changed", changingPassword).Msg("User updated")
	return updated, nil
}

// Delete removes the account and everything it owns.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.DeleteUser(ctx, id); err != nil {
		return lookupErr(entityUser, id, err)
	}
	s.log.Debug().Int64("user_id", id).Msg("User deleted")
	return nil
}
