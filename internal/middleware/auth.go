// Package middleware provides the HTTP interceptor chain: request ids,
// logging, panic recovery, CORS and bearer authentication.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"finance-tracker/internal/auth"
	"finance-tracker/internal/models"
	"finance-tracker/internal/storage"

	"github.com/rs/zerolog"
)

const bearerPrefix = "Bearer "

// msgUnauthorized is the only message an authentication failure carries.
const msgUnauthorized = "Unauthorized"

// Identity is the authenticated caller of one request.
type Identity struct {
	SubjectEmail string
	UserID       int64
}

type identityKey struct{}

// IdentityFromContext returns the identity set by the Authenticator.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// TokenVerifier checks a credential and returns its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserLookup resolves a token subject to an account. It must return
// storage.ErrNotFound for unknown emails.
type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

// FailureCounter is told about every rejected request.
type FailureCounter interface {
	AuthFailure(reason string)
}

// PublicPath is a route that needs no credential. Prefix entries match any
// path starting with Path.
type PublicPath struct {
	Path   string
	Prefix bool
}

// DefaultPublicPaths are reachable without a token.
var DefaultPublicPaths = []PublicPath{
	{Path: "/api/auth/", Prefix: true},
	{Path: "/v3/api-docs", Prefix: true},
	{Path: "/swagger-ui", Prefix: true},
	{Path: "/swagger-ui.html"},
	{Path: "/health"},
	{Path: "/metrics"},
}

// Authenticator rejects requests without a valid bearer token whose subject
// is an existing account, and puts the caller's Identity in the context.
type Authenticator struct {
	tokens   TokenVerifier
	users    UserLookup
	public   []PublicPath
	failures FailureCounter
	log      zerolog.Logger
}

// AuthOption configures an Authenticator.
type AuthOption func(*Authenticator)

// WithPublicPaths replaces DefaultPublicPaths.
func WithPublicPaths(paths []PublicPath) AuthOption {
	return func(a *Authenticator) { a.public = paths }
}

// WithFailureCounter reports rejections, typically to metrics.
func WithFailureCounter(c FailureCounter) AuthOption {
	return func(a *Authenticator) { a.failures = c }
}

// NewAuthenticator creates the authentication middleware.
func NewAuthenticator(tokens TokenVerifier, users UserLookup, log zerolog.Logger, opts ...AuthOption) *Authenticator {
	a := &Authenticator{
		tokens: tokens,
		users:  users,
		public: DefaultPublicPaths,
		log:    log,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// IsPublic reports whether r may pass without a credential.
func (a *Authenticator) IsPublic(r *http.Request) bool {
	if r.Method == http.MethodOptions {
		return true
	}
	for _, p := range a.public {
		if p.Prefix && strings.HasPrefix(r.URL.Path, p.Path) {
			return true
		}
		if !p.Prefix && r.URL.Path == p.Path {
			return true
		}
	}
	return false
}

// Handler returns the middleware handler
func (a *Authenticator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.IsPublic(r) {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			a.reject(w, r, "missing", nil)
			return
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			a.reject(w, r, "malformed_header", nil)
			return
		}

		subject, err := a.tokens.Verify(header[len(bearerPrefix):])
		if err != nil {
			a.reject(w, r, auth.Reason(err), err)
			return
		}

		user, err := a.users.GetUserByEmail(r.Context(), subject)
		if errors.Is(err, storage.ErrNotFound) {
			a.reject(w, r, "unknown_subject", nil)
			return
		}
		if err != nil {
			a.log.Error().Err(err).Str("path", r.URL.Path).Msg("Identity lookup failed")
			WriteError(w, r, http.StatusInternalServerError, "Internal server error", nil)
			return
		}

		ctx := WithIdentity(r.Context(), Identity{SubjectEmail: user.Email, UserID: user.ID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// reject answers 401. The reason goes to logs and metrics, never to the client.
func (a *Authenticator) reject(w http.ResponseWriter, r *http.Request, reason string, err error) {
	if a.failures != nil {
		a.failures.AuthFailure(reason)
	}
	a.log.Warn().
		Err(err).
		Str("reason", reason).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("request_id", RequestIDFromContext(r.Context())).
		Msg("Authentication failed")

	WriteError(w, r, http.StatusUnauthorized, msgUnauthorized, nil)
}
