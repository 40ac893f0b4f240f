package api

import (
	"log/slog"
	"net/http"

	"github.com/kmazurek/teachme-api/internal/api/shared"
	"github.com/kmazurek/teachme-api/internal/service"
)

// SettingsHandler handles settings HTTP requests. The only setting today is
// the new-lesson notification toggle.
type SettingsHandler struct {
	preferences service.PreferenceService
	logger      *slog.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(preferences service.PreferenceService, logger *slog.Logger) *SettingsHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SettingsHandler")
	}

	return &SettingsHandler{
		preferences: preferences,
		logger:      logger.With(slog.String("component", "settings_handler")),
	}
}

// NotificationSettingResponse represents the notification preference.
type NotificationSettingResponse struct {
	Enabled bool `json:"enabled"`
}

// UpdateNotificationSettingRequest represents the request body for updating
// the notification preference. Enabled is a pointer so a missing field is
// rejected instead of silently reading as false.
type UpdateNotificationSettingRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// GetNotificationSetting handles GET /settings/notifications requests.
func (h *SettingsHandler) GetNotificationSetting(w http.ResponseWriter, r *http.Request) {
	enabled, err := h.preferences.NotificationsEnabled(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to read notification setting", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NotificationSettingResponse{Enabled: enabled})
}

// UpdateNotificationSetting handles PUT /settings/notifications requests.
func (h *SettingsHandler) UpdateNotificationSetting(w http.ResponseWriter, r *http.Request) {
	var req UpdateNotificationSettingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "enabled is required")
		return
	}

	if err := h.preferences.SetNotificationsEnabled(r.Context(), *req.Enabled); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to update notification setting", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NotificationSettingResponse{Enabled: *req.Enabled})
}
