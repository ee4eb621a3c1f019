package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finance-tracker/internal/auth"
	"finance-tracker/internal/config"
	"finance-tracker/internal/handlers"
	"finance-tracker/internal/metrics"
	"finance-tracker/internal/middleware"
	"finance-tracker/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSetupRouter(t *testing.T) {
	// Setup dependencies
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err, "failed to create database")
	defer db.Close()

	log := zerolog.Nop()
	tokens, err := auth.NewTokenCodec([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	require.NoError(t, err)

	m := metrics.New()
	services := newServices(db, tokens, auth.NewBcryptHasher(bcrypt.MinCost), log)
	h := handlers.NewHandlers(services, m, log)
	authn := middleware.NewAuthenticator(tokens, db, log, middleware.WithFailureCounter(m))

	// Create router - this panics if a routing conflict exists
	mux := setupRouter(h, authn, m, []string{"http://localhost:4200"}, log)

	tests := []struct {
		name       string
		method     string
		path       string
		origin     string
		wantStatus int
	}{
		{
			name:       "Health is public",
			method:     "GET",
			path:       "/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Metrics are public",
			method:     "GET",
			path:       "/metrics",
			wantStatus: http.StatusOK,
		},
		{
			name:       "List Expenses requires auth",
			method:     "GET",
			path:       "/api/v1/expenses",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Preflight passes without a token",
			method:     "OPTIONS",
			path:       "/api/v1/expenses",
			origin:     "http://localhost:4200",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "Unknown route",
			method:     "GET",
			path:       "/nope",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
				req.Header.Set("Access-Control-Request-Method", "POST")
			}
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code, "%s %s returned unexpected status", tt.method, tt.path)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestSeedAdmin(t *testing.T) {
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	log := zerolog.Nop()
	tokens, err := auth.NewTokenCodec([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	require.NoError(t, err)
	services := newServices(db, tokens, auth.NewBcryptHasher(bcrypt.MinCost), log)

	cfg := config.Default()
	ctx := context.Background()

	// No admin configured
	require.NoError(t, seedAdmin(ctx, services.Users, db, cfg, log))
	count, err := db.UserCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	cfg.AdminEmail = "admin@example.com"
	cfg.AdminPassword = "changeme"
	require.NoError(t, seedAdmin(ctx, services.Users, db, cfg, log))
	// Second start finds the existing account
	require.NoError(t, seedAdmin(ctx, services.Users, db, cfg, log))

	count, err = db.UserCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	admin, err := db.GetUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Administrator", admin.Name)

	token, err := services.Auth.Login(ctx, "admin@example.com", "changeme")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLogUserCount(t *testing.T) {
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	buf := &bytes.Buffer{}
	log := zerolog.New(buf)

	count, err := logUserCount(ctx, db, log)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Contains(t, buf.String(), `"level":"warn"`)

	tokens, err := auth.NewTokenCodec([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	require.NoError(t, err)
	services := newServices(db, tokens, auth.NewBcryptHasher(bcrypt.MinCost), zerolog.Nop())
	cfg := config.Default()
	cfg.AdminEmail = "admin@example.com"
	cfg.AdminPassword = "changeme"
	require.NoError(t, seedAdmin(ctx, services.Users, db, cfg, zerolog.Nop()))

	buf.Reset()
	count, err = logUserCount(ctx, db, log)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Contains(t, buf.String(), `"users":1`)
}

func TestServiceLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := config.Default()
	cfg.DBDriver = "postgres"

	log := serviceLogger(zerolog.New(buf), cfg)
	log.Info().Msg("ready")

	assert.Contains(t, buf.String(), `"service":"finance-tracker"`)
	assert.Contains(t, buf.String(), `"db_driver":"postgres"`)
}
