package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"finance-tracker/internal/apperr"
	"finance-tracker/internal/logger"
	"finance-tracker/internal/metrics"
	"finance-tracker/internal/middleware"
	"finance-tracker/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// Services are the domain operations the handlers expose.
type Services struct {
	Users      *service.UserService
	Auth       *service.AuthService
	Expenses   *service.ExpenseService
	Payments   *service.PaymentService
	Incomes    *service.IncomeService
	Savings    *service.SavingService
	Activities *service.ActivityService
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	users      *service.UserService
	auth       *service.AuthService
	expenses   *service.ExpenseService
	payments   *service.PaymentService
	incomes    *service.IncomeService
	savings    *service.SavingService
	activities *service.ActivityService

	metrics *metrics.Metrics
	log     zerolog.Logger
	now     func() time.Time
}

// NewHandlers creates a new Handlers instance. m may be nil.
func NewHandlers(s Services, m *metrics.Metrics, log zerolog.Logger) *Handlers {
	return &Handlers{
		users:      s.Users,
		auth:       s.Auth,
		expenses:   s.Expenses,
		payments:   s.Payments,
		incomes:    s.Incomes,
		savings:    s.Savings,
		activities: s.Activities,
		metrics:    m,
		log:        log,
		now:        time.Now,
	}
}

// Mount registers every route on r.
func (h *Handlers) Mount(r chi.Router) {
	r.Get("/health", h.Health)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})

	r.Get("/api/activities/recent", h.RecentActivities)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Post("/", h.CreateUser)
			r.Get("/me", h.CurrentUser)
			r.Get("/by-email", h.GetUserByEmail)
			r.Get("/{id}", h.GetUser)
			r.Put("/{id}", h.UpdateUser)
			r.Delete("/{id}", h.DeleteUser)
		})
		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", h.ListExpenses)
			r.Post("/", h.CreateExpense)
			r.Get("/statistics", h.Statistics)
			r.Get("/{id}", h.GetExpense)
			r.Put("/{id}", h.UpdateExpense)
			r.Delete("/{id}", h.DeleteExpense)
		})
		r.Route("/payments", func(r chi.Router) {
			r.Get("/", h.ListPayments)
			r.Post("/", h.CreatePayment)
			r.Get("/{id}", h.GetPayment)
			r.Put("/{id}", h.UpdatePayment)
			r.Delete("/{id}", h.DeletePayment)
		})
		r.Route("/incomes", func(r chi.Router) {
			r.Get("/", h.ListIncomes)
			r.Post("/", h.CreateIncome)
			r.Get("/{id}", h.GetIncome)
			r.Put("/{id}", h.UpdateIncome)
			r.Delete("/{id}", h.DeleteIncome)
		})
		r.Route("/savings", func(r chi.Router) {
			r.Get("/", h.ListSavings)
			r.Post("/", h.CreateSaving)
			r.Get("/{id}", h.GetSaving)
			r.Put("/{id}", h.UpdateSaving)
			r.Delete("/{id}", h.DeleteSaving)
		})
	})
}

// Health reports that the server is up.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	middleware.WriteJSON(w, status, data)
}

// writeError is where every failure gets its status code.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := apperr.As(err)
	if e == nil {
		e = apperr.Internal(err)
	}

	log := logger.FromContextOr(r.Context(), h.log)
	if e.Kind == apperr.KindInternal {
		log.Error().Err(e.Err).Str("method", r.Method).Str("path", r.URL.Path).Msg("Request failed")
	} else {
		log.Debug().Str("kind", e.Kind.String()).Str("message", e.Message).Msg("Request rejected")
	}

	h.metrics.APIError(e.Kind.String())
	middleware.WriteError(w, r, e.Kind.HTTPStatus(), e.Message, e.Details)
}

// decode reads a JSON body into dst.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.InvalidArgument("Request body is required")
		}
		return apperr.InvalidArgument("Malformed request body: %v", err)
	}
	return nil
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.InvalidArgument("Invalid id: %s", raw)
	}
	return id, nil
}

// bodyID reconciles the id of a PUT body with the path. Zero adopts the path id.
func bodyID(pathID, bodyID int64) (int64, error) {
	if bodyID == 0 {
		return pathID, nil
	}
	if bodyID != pathID {
		return 0, apperr.InvalidArgument("ID in path and request body do not match.")
	}
	return bodyID, nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, key string, def int64) (int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.InvalidArgument("Invalid %s: %s", key, raw)
	}
	return v, nil
}

// identity returns the caller set by the authenticator.
func identity(r *http.Request) (middleware.Identity, error) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return middleware.Identity{}, apperr.Unauthenticated("Unauthorized")
	}
	return id, nil
}

// ownerOr returns userID, or the caller's id when userID is unset.
func ownerOr(r *http.Request, userID int64) (int64, error) {
	if userID != 0 {
		return userID, nil
	}
	id, err := identity(r)
	if err != nil {
		return 0, fmt.Errorf("default owner: %w", err)
	}
	return id.UserID, nil
}
