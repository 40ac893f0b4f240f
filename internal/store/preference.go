package store

import "context"

// NotificationsEnabledKey is the stable key under which the notification
// preference is persisted across application runs.
const NotificationsEnabledKey = "notifications_enabled"

// PreferenceStore defines the interface for durable boolean preferences.
// There is a single preference today (new-lesson notifications) but the
// store is keyed so further flags do not need schema changes.
type PreferenceStore interface {
	// GetBool returns the value stored under key, or defaultValue when the
	// key has never been written.
	GetBool(ctx context.Context, key string, defaultValue bool) (bool, error)

	// SetBool durably stores value under key, overwriting any prior value.
	SetBool(ctx context.Context, key string, value bool) error
}
