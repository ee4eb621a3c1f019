package service

import (
	"context"
	"fmt"

	"finance-tracker/internal/apperr"
	"finance-tracker/internal/models"
	"finance-tracker/internal/storage"

	"github.com/rs/zerolog"
)

// Activity kinds and the icons the web client renders for them.
const (
	ActivityRegistration   = "REGISTRATION"
	ActivityLogin          = "LOGIN"
	ActivityProfileUpdate  = "PROFILE_UPDATE"
	ActivityPasswordChange = "PASSWORD_CHANGE"

	iconRegistration   = "pi pi-user-plus"
	iconLogin          = "pi pi-sign-in"
	iconProfileUpdate  = "pi pi-user-edit"
	iconPasswordChange = "pi pi-lock"
)

// Bounds for Recent.
const (
	DefaultActivityLimit = 5
	MaxActivityLimit     = 100
)

// ActivityService records and lists account events.
type ActivityService struct {
	repo storage.ActivityRepository
	log  zerolog.Logger
}

func NewActivityService(repo storage.ActivityRepository, log zerolog.Logger) *ActivityService {
	return &ActivityService{repo: repo, log: log}
}

// Log appends an entry to the user's trail.
func (s *ActivityService) Log(ctx context.Context, userID int64, kind, description, icon string) error {
	_, err := s.repo.CreateActivity(ctx, models.Activity{
		UserID:       userID,
		ActivityType: kind,
		Description:  description,
		Icon:         icon,
	})
	if err != nil {
		return fmt.Errorf("log %s activity: %w", kind, err)
	}
	return nil
}

// record logs an activity without failing the surrounding operation.
func (s *ActivityService) record(ctx context.Context, userID int64, kind, description, icon string) {
	if s == nil {
		return
	}
	if err := s.Log(ctx, userID, kind, description, icon); err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("Failed to record activity")
	}
}

// Recent returns the newest entries for userID. A non-positive limit means
// DefaultActivityLimit; larger limits are capped at MaxActivityLimit.
func (s *ActivityService) Recent(ctx context.Context, userID int64, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}
	activities, err := s.repo.ListRecentActivities(ctx, userID, limit)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list activities: %w", err))
	}
	return activities, nil
}
