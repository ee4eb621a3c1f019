package service

import (
	"context"
	"errors"
	"fmt"

	"finance-tracker/internal/apperr"
	"finance-tracker/internal/models"
	"finance-tracker/internal/storage"
	"finance-tracker/internal/validation"

	"github.com/rs/zerolog"
)

// PaymentService manages payments. Each payment settles exactly one
// existing expense and an expense has at most one payment.
type PaymentService struct {
	payments storage.PaymentRepository
	expenses storage.ExpenseRepository
	rules    *validation.Engine
	log      zerolog.Logger
}

func NewPaymentService(payments storage.PaymentRepository, expenses storage.ExpenseRepository,
	rules *validation.Engine, log zerolog.Logger) *PaymentService {
	return &PaymentService{payments: payments, expenses: expenses, rules: rules, log: log}
}

func alreadyPaid(expenseID int64) error {
	return apperr.InvalidArgument("Expense %d already has a payment", expenseID)
}

func (s *PaymentService) resolve(ctx context.Context, p models.Payment, update bool) error {
	if update {
		if _, err := s.payments.GetPayment(ctx, p.ID); err != nil {
			return lookupErr(entityPayment, p.ID, err)
		}
	}

	_, err := s.expenses.GetExpense(ctx, p.ExpenseID)
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.InvalidArgument(validation.MsgPaymentExpense)
	}
	if err != nil {
		return apperr.Internal(fmt.Errorf("load expense %d: %w", p.ExpenseID, err))
	}

	other, err := s.payments.GetPaymentByExpense(ctx, p.ExpenseID)
	switch {
	case err == nil:
		if other.ID != p.ID {
			return alreadyPaid(p.ExpenseID)
		}
	case errors.Is(err, storage.ErrNotFound):
	default:
		return apperr.Internal(fmt.Errorf("load payment of expense %d: %w", p.ExpenseID, err))
	}
	return nil
}

func (s *PaymentService) persistErr(op string, p models.Payment, err error) error {
	if errors.Is(err, storage.ErrConflict) {
		return alreadyPaid(p.ExpenseID)
	}
	if errors.Is(err, storage.ErrNotFound) && op == "create" {
		return apperr.InvalidArgument(validation.MsgPaymentExpense)
	}
	return writeErr(op, entityPayment, p.ID, err)
}

// Create stores a payment for an unpaid expense.
func (s *PaymentService) Create(ctx context.Context, p models.Payment) (models.Payment, error) {
	if err := s.rules.Payment(p); err != nil {
		s.log.Info().Err(err).Msg("Payment rejected")
		return models.Payment{}, err
	}
	p.ID = 0
	if err := s.resolve(ctx, p, false); err != nil {
		return models.Payment{}, err
	}

	created, err := s.payments.CreatePayment(ctx, p)
	if err != nil {
		return models.Payment{}, s.persistErr("create", p, err)
	}
	s.log.Debug().Int64("payment_id", created.ID).Int64("expense_id", created.ExpenseID).Msg("Payment created")
	return created, nil
}

// Update replaces an existing payment.
func (s *PaymentService) Update(ctx context.Context, p models.Payment) (models.Payment, error) {
	if err := s.rules.Payment(p); err != nil {
		s.log.Info().Int64("payment_id", p.ID).Err(err).Msg("Payment update rejected")
		return models.Payment{}, err
	}
	if err := s.resolve(ctx, p, true); err != nil {
		return models.Payment{}, err
	}

	updated, err := s.payments.UpdatePayment(ctx, p)
	if err != nil {
		return models.Payment{}, s.persistErr("update", p, err)
	}
	s.log.Debug().Int64("payment_id", updated.ID).Msg("Payment updated")
	return updated, nil
}

// Get returns the payment with id.
func (s *PaymentService) Get(ctx context.Context, id int64) (models.Payment, error) {
	p, err := s.payments.GetPayment(ctx, id)
	if err != nil {
		return models.Payment{}, lookupErr(entityPayment, id, err)
	}
	return p, nil
}

// List returns every payment.
func (s *PaymentService) List(ctx context.Context) ([]models.Payment, error) {
	payments, err := s.payments.ListPayments(ctx)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list payments: %w", err))
	}
	return payments, nil
}

// Delete removes a payment.
func (s *PaymentService) Delete(ctx context.Context, id int64) error {
	if err := s.payments.DeletePayment(ctx, id); err != nil {
		return lookupErr(entityPayment, id, err)
	}
	return nil
}
