package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance-tracker/internal/auth"
	"finance-tracker/internal/config"
	"finance-tracker/internal/handlers"
	"finance-tracker/internal/logger"
	"finance-tracker/internal/metrics"
	"finance-tracker/internal/middleware"
	"finance-tracker/internal/service"
	"finance-tracker/internal/storage"
	"finance-tracker/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(os.LookupEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := serviceLogger(logger.New(cfg.LogLevel, cfg.LogFormat), cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func run(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	db, err := storage.Open(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	log.Info().Str("path", cfg.DBPath).Msg("Database ready")

	tokens, err := auth.NewTokenCodec([]byte(cfg.JWTSecret), cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("token codec: %w", err)
	}

	m := metrics.New()
	services := newServices(db, tokens, auth.NewBcryptHasher(cfg.BcryptCost), log)

	if err := seedAdmin(ctx, services.Users, db, cfg, log); err != nil {
		return err
	}
	if _, err := logUserCount(ctx, db, log); err != nil {
		return err
	}

	h := handlers.NewHandlers(services, m, log)
	authn := middleware.NewAuthenticator(tokens, db, log, middleware.WithFailureCounter(m))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           setupRouter(h, authn, m, cfg.AllowedOrigins, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newServices wires every domain service over one store.
func newServices(store storage.Store, tokens *auth.TokenCodec, hasher auth.Hasher, log zerolog.Logger) handlers.Services {
	rules := validation.New()
	activities := service.NewActivityService(store, log)
	users := service.NewUserService(store, hasher, rules, activities, log)

	return handlers.Services{
		Users:      users,
		Auth:       service.NewAuthService(users, store, hasher, tokens, activities, log),
		Expenses:   service.NewExpenseService(store, store, rules, log),
		Payments:   service.NewPaymentService(store, store, rules, log),
		Incomes:    service.NewIncomeService(store, store, rules, log),
		Savings:    service.NewSavingService(store, store, rules, log),
		Activities: activities,
	}
}

// seedAdmin creates the configured admin account unless it already exists.
func seedAdmin(ctx context.Context, users *service.UserService, lookup storage.UserRepository, cfg config.Config, log zerolog.Logger) error {
	if cfg.AdminEmail == "" {
		return nil
	}

	_, err := lookup.GetUserByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		log.Debug().Str("email", cfg.AdminEmail).Msg("Admin user already exists")
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("look up admin user: %w", err)
	}

	u, err := users.Create(ctx, service.NewUser{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	log.Info().Int64("id", u.ID).Str("email", u.Email).Msg("Created admin user")
	return nil
}

// serviceLogger tags every line with the service name and database driver.
func serviceLogger(log zerolog.Logger, cfg config.Config) zerolog.Logger {
	return logger.WithFields(log, map[string]any{
		"service":   "finance-tracker",
		"db_driver": cfg.DBDriver,
	})
}

type userCounter interface {
	UserCount(ctx context.Context) (int, error)
}

// logUserCount reports how many accounts exist and warns when nobody can log in.
func logUserCount(ctx context.Context, users userCounter, log zerolog.Logger) (int, error) {
	count, err := users.UserCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	if count == 0 {
		log.Warn().Msg("No users yet: register one or set ADMIN_EMAIL and ADMIN_PASSWORD")
		return 0, nil
	}
	log.Info().Int("users", count).Msg("Users loaded")
	return count, nil
}

// setupRouter builds the interceptor chain around the API routes.
func setupRouter(h *handlers.Handlers, authn *middleware.Authenticator, m *metrics.Metrics,
	origins []string, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.CORS(origins))
	r.Use(m.Instrument)
	r.Use(authn.Handler)

	r.Method(http.MethodGet, "/metrics", m.Handler())
	h.Mount(r)

	return r
}
