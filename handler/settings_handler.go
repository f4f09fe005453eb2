package handler

import (
	"context"
	"errors"
	"net/http"

	"go-ledger-api/common"
	"go-ledger-api/middleware"
	"go-ledger-api/model"
	"go-ledger-api/service"
)

type ISettingsService interface {
	Get(ctx context.Context, userID int64) (*model.UserSettings, error)
	Create(ctx context.Context, userID int64, req model.UserSettingsRequest) (*model.UserSettings, error)
	Update(ctx context.Context, userID int64, req model.UserSettingsRequest) (*model.UserSettings, error)
}

type SettingsHandler struct {
	service ISettingsService
}

func NewSettingsHandler(service ISettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// GetSettings godoc
// @Summary      Current user settings
// @Tags         user-settings
// @Produce      json
// @Param        X-User-Id  header    int  true  "Set by the gateway"
// @Success      200        {object}  model.UserSettings
// @Failure      401        {object}  common.AppError
// @Failure      404        {object}  common.AppError
// @Router       /user-settings [get]
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return common.NewAuthenticationError("Missing user identity", nil)
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	settings, err := h.service.Get(ctx, id.UserID)
	if err != nil {
		return settingsError(err)
	}
	common.WriteJSON(w, http.StatusOK, settings)
	return nil
}

// CreateSettings godoc
// @Summary      Create user settings
// @Description  Omitted fields take their defaults (light, notifications on, ja)
// @Tags         user-settings
// @Accept       json
// @Produce      json
// @Param        X-User-Id  header    int                        true  "Set by the gateway"
// @Param        request    body      model.UserSettingsRequest  true  "Settings"
// @Success      201        {object}  model.UserSettings
// @Failure      400        {object}  common.AppError
// @Failure      401        {object}  common.AppError
// @Router       /user-settings [post]
func (h *SettingsHandler) CreateSettings(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return common.NewAuthenticationError("Missing user identity", nil)
	}

	var req model.UserSettingsRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	settings, err := h.service.Create(ctx, id.UserID, req)
	if err != nil {
		return settingsError(err)
	}
	common.WriteJSON(w, http.StatusCreated, settings)
	return nil
}

// UpdateSettings godoc
// @Summary      Update user settings
// @Tags         user-settings
// @Accept       json
// @Produce      json
// @Param        X-User-Id  header    int                        true  "Set by the gateway"
// @Param        request    body      model.UserSettingsRequest  true  "Fields to change"
// @Success      200        {object}  model.UserSettings
// @Failure      401        {object}  common.AppError
// @Failure      404        {object}  common.AppError
// @Router       /user-settings [put]
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return common.NewAuthenticationError("Missing user identity", nil)
	}

	var req model.UserSettingsRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	settings, err := h.service.Update(ctx, id.UserID, req)
	if err != nil {
		return settingsError(err)
	}
	common.WriteJSON(w, http.StatusOK, settings)
	return nil
}

func settingsError(err error) *common.AppError {
	switch {
	case errors.Is(err, service.ErrSettingsNotFound):
		return common.NewNotFoundError("User settings not found", nil)
	case errors.Is(err, service.ErrSettingsExist):
		return common.NewValidationError("User settings already exist", nil)
	}
	return common.NewInternalError("Could not process user settings request", err)
}
