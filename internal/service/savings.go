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

// SavingService manages savings.
type SavingService struct {
	savings storage.SavingRepository
	users   storage.UserRepository
	rules   *validation.Engine
	log     zerolog.Logger
}

func NewSavingService(savings storage.SavingRepository, users storage.UserRepository,
	rules *validation.Engine, log zerolog.Logger) *SavingService {
	return &SavingService{savings: savings, users: users, rules: rules, log: log}
}

// resolve checks references. On update a zero UserID keeps the stored owner.
func (s *SavingService) resolve(ctx context.Context, sv *models.Saving, update bool) error {
	if update {
		existing, err := s.savings.GetSaving(ctx, sv.ID)
		if err != nil {
			return lookupErr(entitySaving, sv.ID, err)
		}
		if sv.UserID == 0 {
			sv.UserID = existing.UserID
		}
	}
	if _, err := s.users.GetUser(ctx, sv.UserID); err != nil {
		return lookupErr(entityUser, sv.UserID, err)
	}
	return nil
}

// Create stores a new saving for an existing user.
func (s *SavingService) Create(ctx context.Context, sv models.Saving) (models.Saving, error) {
	if err := s.rules.Saving(sv); err != nil {
		s.log.Info().Err(err).Msg("Saving rejected")
		return models.Saving{}, err
	}
	if err := s.resolve(ctx, &sv, false); err != nil {
		return models.Saving{}, err
	}

	created, err := s.savings.CreateSaving(ctx, sv)
	if err != nil {
		return models.Saving{}, writeErr("create", entityUser, sv.UserID, err)
	}
	s.log.Debug().Int64("saving_id", created.ID).Msg("Saving created")
	return created, nil
}

// Update replaces an existing saving.
func (s *SavingService) Update(ctx context.Context, sv models.Saving) (models.Saving, error) {
	if err := s.rules.Saving(sv); err != nil {
		s.log.Info().Int64("saving_id", sv.ID).Err(err).Msg("Saving update rejected")
		return models.Saving{}, err
	}
	if err := s.resolve(ctx, &sv, true); err != nil {
		return models.Saving{}, err
	}

	updated, err := s.savings.UpdateSaving(ctx, sv)
	if err != nil {
		return models.Saving{}, writeErr("update", entitySaving, sv.ID, err)
	}
	return updated, nil
}

// Get returns the saving with id.
func (s *SavingService) Get(ctx context.Context, id int64) (models.Saving, error) {
	sv, err := s.savings.GetSaving(ctx, id)
	if err != nil {
		return models.Saving{}, lookupErr(entitySaving, id, err)
	}
	return sv, nil
}

// List returns every saving.
func (s *SavingService) List(ctx context.Context) ([]models.Saving, error) {
	savings, err := s.savings.ListSavings(ctx)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list savings: %w", err))
	}
	return savings, nil
}

// Delete removes a saving.
func (s *SavingService) Delete(ctx context.Context, id int64) error {
	if err := s.savings.DeleteSaving(ctx, id); err != nil {
		return lookupErr(entitySaving, id, err)
	}
	return nil
}
