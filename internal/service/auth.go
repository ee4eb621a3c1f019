package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"finance-tracker/internal/apperr"
	"finance-tracker/internal/auth"
	"finance-tracker/internal/storage"

	"github.com/rs/zerolog"
)

// MsgInvalidCredentials is the only message a failed login ever gets.
const MsgInvalidCredentials = "Invalid credentials"

// AuthService registers accounts and exchanges passwords for tokens.
type AuthService struct {
	users      *UserService
	lookup     storage.UserRepository
	hasher     auth.Hasher
	tokens     *auth.TokenCodec
	activities *ActivityService
	log        zerolog.Logger
}

func NewAuthService(users *UserService, lookup storage.UserRepository, hasher auth.Hasher,
	tokens *auth.TokenCodec, activities *ActivityService, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		lookup:     lookup,
		hasher:     hasher,
		tokens:     tokens,
		activities: activities,
		log:        log,
	}
}

// Register creates an account and returns the confirmation message.
func (s *AuthService) Register(ctx context.Context, in NewUser) (string, error) {
	u, err := s.users.Create(ctx, NewUser{Name: in.Name, Email: in.Email, Password: in.Password})
	if err != nil {
		return "", err
	}
	s.activities.record(ctx, u.ID, ActivityRegistration, "Account created successfully", iconRegistration)
	s.log.Info().Int64("user_id", u.ID).Msg("User registered")
	return fmt.Sprintf("User %s registered successfully.", u.Email), nil
}

// Login verifies the password and issues a token for the account's email.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", apperr.Unauthenticated(MsgInvalidCredentials)
	}

	u, err := s.lookup.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return "", apperr.Internal(fmt.Errorf("load user for login: %w", err))
	}
	if err != nil || !s.hasher.Verify(password, u.PasswordDigest) {
		s.log.Info().Msg("Login rejected")
		return "", apperr.Unauthenticated(MsgInvalidCredentials)
	}

	token, err := s.tokens.Issue(u.Email)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("issue token: %w", err))
	}

	s.activities.record(ctx, u.ID, ActivityLogin, "Logged in", iconLogin)
	s.log.Debug().Int64("user_id", u.ID).Msg("Token issued")
	return token, nil
}
