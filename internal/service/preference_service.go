package service

import (
	"context"
	"log/slog"

	"github.com/kmazurek/teachme-api/internal/store"
)

// notificationsDefault is the value reported before the preference has ever
// been written. Notifications are opt-out.
const notificationsDefault = true

// PreferenceService exposes the durable notification preference.
type PreferenceService interface {
	// NotificationsEnabled returns the current preference, defaulting to
	// true when it was never set.
	NotificationsEnabled(ctx context.Context) (bool, error)

	// SetNotificationsEnabled durably stores the preference.
	SetNotificationsEnabled(ctx context.Context, enabled bool) error
}

// preferenceServiceImpl implements the PreferenceService interface.
type preferenceServiceImpl struct {
	prefStore store.PreferenceStore
	logger    *slog.Logger
}

// NewPreferenceService creates a new PreferenceService.
// It returns an error if the preference store is nil.
func NewPreferenceService(
	prefStore store.PreferenceStore,
	logger *slog.Logger,
) (PreferenceService, error) {
	if prefStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "prefStore cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &preferenceServiceImpl{
		prefStore: prefStore,
		logger:    logger.With("component", "preference_service"),
	}, nil
}

func (s *preferenceServiceImpl) NotificationsEnabled(ctx context.Context) (bool, error) {
	enabled, err := s.prefStore.GetBool(ctx, store.NotificationsEnabledKey, notificationsDefault)
	if err != nil {
		s.logger.Error("failed to read notification preference", "error", err)
		return false, NewServiceError(
			"get_notifications_enabled",
			"failed to read preference",
			err,
		)
	}
	return enabled, nil
}

func (s *preferenceServiceImpl) SetNotificationsEnabled(ctx context.Context, enabled bool) error {
	if err := s.prefStore.SetBool(ctx, store.NotificationsEnabledKey, enabled); err != nil {
		s.logger.Error("failed to store notification preference",
			"error", err,
			"enabled", enabled)
		return NewServiceError(
			"set_notifications_enabled",
			"failed to store preference",
			err,
		)
	}

	s.logger.Info("notification preference updated", "enabled", enabled)
	return nil
}
