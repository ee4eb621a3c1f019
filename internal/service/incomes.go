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

// IncomeService manages incomes.
type IncomeService struct {
	incomes storage.IncomeRepository
	users   storage.UserRepository
	rules   *validation.Engine
	log     zerolog.Logger
}

func NewIncomeService(incomes storage.IncomeRepository, users storage.UserRepository,
	rules *validation.Engine, log zerolog.Logger) *IncomeService {
	return &IncomeService{incomes: incomes, users: users, rules: rules, log: log}
}

// resolve checks references. On update a zero UserID keeps the stored owner.
func (s *IncomeService) resolve(ctx context.Context, i *models.Income, update bool) error {
	if update {
		existing, err := s.incomes.GetIncome(ctx, i.ID)
		if err != nil {
			return lookupErr(entityIncome, i.ID, err)
		}
		if i.UserID == 0 {
			i.UserID = existing.UserID
		}
	}
	if _, err := s.users.GetUser(ctx, i.UserID); err != nil {
		return lookupErr(entityUser, i.UserID, err)
	}
	return nil
}

// Create stores a new income for an existing user.
func (s *IncomeService) Create(ctx context.Context, i models.Income) (models.Income, error) {
	if err := s.rules.Income(i); err != nil {
		s.log.Info().Err(err).Msg("Income rejected")
		return models.Income{}, err
	}
	if err := s.resolve(ctx, &i, false); err != nil {
		return models.Income{}, err
	}

	created, err := s.incomes.CreateIncome(ctx, i)
	if err != nil {
		return models.Income{}, writeErr("create", entityUser, i.UserID, err)
	}
	s.log.Debug().Int64("income_id", created.ID).Msg("Income created")
	return created, nil
}

// Update replaces an existing income.
func (s *IncomeService) Update(ctx context.Context, i models.Income) (models.Income, error) {
	if err := s.rules.Income(i); err != nil {
		s.log.Info().Int64("income_id", i.ID).Err(err).Msg("Income update rejected")
		return models.Income{}, err
	}
	if err := s.resolve(ctx, &i, true); err != nil {
		return models.Income{}, err
	}

	updated, err := s.incomes.UpdateIncome(ctx, i)
	if err != nil {
		return models.Income{}, writeErr("update", entityIncome, i.ID, err)
	}
	return updated, nil
}

// Get returns the income with id.
func (s *IncomeService) Get(ctx context.Context, id int64) (models.Income, error) {
	i, err := s.incomes.GetIncome(ctx, id)
	if err != nil {
		return models.Income{}, lookupErr(entityIncome, id, err)
	}
	return i, nil
}

// List returns every income.
func (s *IncomeService) List(ctx context.Context) ([]models.Income, error) {
	incomes, err := s.incomes.ListIncomes(ctx)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list incomes: %w", err))
	}
	return incomes, nil
}

// Delete removes an income.
func (s *IncomeService) Delete(ctx context.Context, id int64) error {
	if err := s.incomes.DeleteIncome(ctx, id); err != nil {
		return lookupErr(entityIncome, id, err)
	}
	return nil
}
