package dto

import (
	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	"github.com/Daniyar8k/park-ledger-system/pkg/validator"
)

type TariffPayload struct {
	BaseHours    int     `json:"base_hours"`
	BaseFee      float64 `json:"base_fee"`
	ExtraHourFee float64 `json:"extra_hour_fee"`
}

type SettingsRequest struct {
	SiteName    string                   `json:"site_name"`
	ViewMode    string                   `json:"view_mode"`
	Username    string                   `json:"username"`
	NewPassword string                   `json:"new_password,omitempty"`
	Pricing     map[string]TariffPayload `json:"pricing"`
}

func (r *SettingsRequest) ToModel() models.Settings {
	pricing := make(models.PricingTable, len(r.Pricing))
	for vt, tariff := range r.Pricing {
		pricing[types.VehicleType(vt)] = models.Tariff{
			BaseHours:    tariff.BaseHours,
			BaseFee:      tariff.BaseFee,
			ExtraHourFee: tariff.ExtraHourFee,
		}
	}
	return models.Settings{
		SiteName: r.SiteName,
		ViewMode: types.ViewMode(r.ViewMode),
		Credentials: models.Credentials{
			Username: r.Username,
		},
		Pricing: pricing,
	}
}

func ValidateSettings(v *validator.Validator, req *SettingsRequest) {
	v.Check(req.SiteName != "", "site_name", "must be provided")
	v.Check(req.Username != "", "username", "must be provided")
	v.Check(validator.PermittedValue(req.ViewMode,
		types.ViewModeGrid.String(), types.ViewModeList.String()),
		"view_mode", "must be one of grid, list")
	v.Check(len(req.Pricing) > 0, "pricing", "must be provided")

	for vt, tariff := range req.Pricing {
		v.Check(validator.PermittedValue(vt,
			types.VehicleCar.String(), types.VehicleBike.String(), types.VehicleRickshaw.String()),
			"pricing."+vt, "unknown vehicle type")
		v.Check(tariff.BaseHours >= 0, "pricing."+vt+".base_hours", "must not be negative")
		v.Check(tariff.BaseFee >= 0, "pricing."+vt+".base_fee", "must not be negative")
		v.Check(tariff.ExtraHourFee >= 0, "pricing."+vt+".extra_hour_fee", "must not be negative")
	}

	if req.NewPassword != "" {
		v.Check(len(req.NewPassword) >= 8, "new_password", "must be at least 8 bytes long")
		v.Check(len(req.NewPassword) <= 50, "new_password", "must not be more than 50 bytes long")
	}
}

type SettingsResponse struct {
	SiteName string                   `json:"site_name"`
	ViewMode string                   `json:"view_mode"`
	Username string                   `json:"username"`
	Pricing  map[string]TariffPayload `json:"pricing"`
}

// SettingsFromModel never exposes the password hash over the API.
func SettingsFromModel(s models.Settings) SettingsResponse {
	pricing := make(map[string]TariffPayload, len(s.Pricing))
	for vt, tariff := range s.Pricing {
		pricing[vt.String()] = TariffPayload{
			BaseHours:    tariff.BaseHours,
			BaseFee:      tariff.BaseFee,
			ExtraHourFee: tariff.ExtraHourFee,
		}
	}
	return SettingsResponse{
		SiteName: s.SiteName,
		ViewMode: s.ViewMode.String(),
		Username: s.Credentials.Username,
		Pricing:  pricing,
	}
}
