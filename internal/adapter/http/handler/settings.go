package handler

import (
	"context"
	"net/http"

	"github.com/Daniyar8k/park-ledger-system/internal/adapter/http/handler/dto"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
	wrap "github.com/Daniyar8k/park-ledger-system/pkg/logger/wrapper"
	"github.com/Daniyar8k/park-ledger-system/pkg/validator"
)

type SettingsService interface {
	Get() models.Settings
	Update(ctx context.Context, updated models.Settings, newPassword string) (models.Settings, error)
}

type Settings struct {
	settings SettingsService
	l        logger.Logger
}

func NewSettings(settings SettingsService, l logger.Logger) *Settings {
	return &Settings{
		settings: settings,
		l:        l,
	}
}

// Get godoc
// @Summary      Current settings
// @Tags         Settings
// @Produce      json
// @Success      200  {object}  dto.SettingsResponse
// @Security     BearerAuth
// @Router       /settings [get]
func (h *Settings) Get(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "settings_get")

	response := envelope{"settings": dto.SettingsFromModel(h.settings.Get())}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Update godoc
// @Summary      Update settings
// @Description  Replaces settings. A non-empty new_password rotates the operator password and invalidates existing sessions.
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        request body dto.SettingsRequest true "New settings"
// @Success      200  {object}  dto.SettingsResponse
// @Failure      422  {object}  map[string]string
// @Security     BearerAuth
// @Router       /settings [put]
func (h *Settings) Update(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionSettingsSave)

	req := &dto.SettingsRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateSettings(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	updated, err := h.settings.Update(ctx, req.ToModel(), req.NewPassword)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to update settings", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"settings": dto.SettingsFromModel(updated)}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
