package service

import (
	"context"
	"fmt"

	"finance-tracker/internal/apperr"
	"finance-tracker/internal/models"
	"finance-tracker/internal/storage"
	"finance-tracker/internal/validation"

	"github.com/rs/zerolog"
)

// ExpenseService manages expenses.
type ExpenseService struct {
	expenses storage.ExpenseRepository
	users    storage.UserRepository
	rules    *validation.Engine
	log      zerolog.Logger
}

func NewExpenseService(expenses storage.ExpenseRepository, users storage.UserRepository,
	rules *validation.Engine, log zerolog.Logger) *ExpenseService {
	return &ExpenseService{expenses: expenses, users: users, rules: rules, log: log}
}

// resolve checks references. On update a zero UserID keeps the stored owner.
func (s *ExpenseService) resolve(ctx context.Context, e *models.Expense, update bool) error {
	if update {
		existing, err := s.expenses.GetExpense(ctx, e.ID)
		if err != nil {
			return lookupErr(entityExpense, e.ID, err)
		}
		if e.UserID == 0 {
			e.UserID = existing.UserID
		}
	}
	if _, err := s.users.GetUser(ctx, e.UserID); err != nil {
		return lookupErr(entityUser, e.UserID, err)
	}
	return nil
}

// Create stores a new expense for an existing user.
func (s *ExpenseService) Create(ctx context.Context, e models.Expense) (models.Expense, error) {
	if err := s.rules.Expense(e); err != nil {
		s.log.Info().Err(err).Msg("Expense rejected")
		return models.Expense{}, err
	}
	if err := s.resolve(ctx, &e, false); err != nil {
		return models.Expense{}, err
	}

	created, err := s.expenses.CreateExpense(ctx, e)
	if err != nil {
		return models.Expense{}, writeErr("create", entityUser, e.UserID, err)
	}
	s.log.Debug().Int64("expense_id", created.ID).Msg("Expense created")
	return created, nil
}

// Update replaces an existing expense.
func (s *ExpenseService) Update(ctx context.Context, e models.Expense) (models.Expense, error) {
	if err := s.rules.Expense(e); err != nil {
		s.log.Info().Int64("expense_id", e.ID).Err(err).Msg("Expense update rejected")
		return models.Expense{}, err
	}
	if err := s.resolve(ctx, &e, true); err != nil {
		return models.Expense{}, err
	}

	updated, err := s.expenses.UpdateExpense(ctx, e)
	if err != nil {
		return models.Expense{}, writeErr("update", entityExpense, e.ID, err)
	}
	s.log.Debug().Int64("expense_id", updated.ID).Msg("Expense updated")
	return updated, nil
}

// Get returns the expense with id.
func (s *ExpenseService) Get(ctx context.Context, id int64) (models.Expense, error) {
	e, err := s.expenses.GetExpense(ctx, id)
	if err != nil {
		return models.Expense{}, lookupErr(entityExpense, id, err)
	}
	return e, nil
}

// List returns expenses, optionally only those of one user.
func (s *ExpenseService) List(ctx context.Context, f storage.ExpenseFilter) ([]models.Expense, error) {
	expenses, err := s.expenses.ListExpenses(ctx, f)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list expenses: %w", err))
	}
	return expenses, nil
}

// Delete removes an expense and its payment.
func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	if err := s.expenses.DeleteExpense(ctx, id); err != nil {
		return lookupErr(entityExpense, id, err)
	}
	s.log.Debug().Int64("expense_id", id).Msg("Expense deleted")
	return nil
}
