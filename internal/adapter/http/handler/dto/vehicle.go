package dto

import (
	"time"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	"github.com/Daniyar8k/park-ledger-system/pkg/validator"
)

type VehicleEntryRequest struct {
	Type        string `json:"type"`
	IsPermanent bool   `json:"is_permanent,omitempty"`
}

func ValidateVehicleEntry(v *validator.Validator, req *VehicleEntryRequest) {
	v.Check(req.Type != "", "type", "must be provided")
	v.Check(validator.PermittedValue(req.Type,
		types.VehicleCar.String(), types.VehicleBike.String(), types.VehicleRickshaw.String()),
		"type", "must be one of car, bike, rickshaw")
}

type VehicleResponse struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	EntryTime     time.Time  `json:"entry_time"`
	ExitTime      *time.Time `json:"exit_time,omitempty"`
	Fee           *float64   `json:"fee,omitempty"`
	IsPermanent   bool       `json:"is_permanent"`
	PaymentStatus string     `json:"payment_status"`
}

func VehicleFromModel(rec models.VehicleRecord) VehicleResponse {
	return VehicleResponse{
		ID:            rec.ID.String(),
		Type:          rec.Type.String(),
		EntryTime:     rec.EntryTime,
		ExitTime:      rec.ExitTime,
		Fee:           rec.Fee,
		IsPermanent:   rec.IsPermanent,
		PaymentStatus: rec.PaymentStatus.String(),
	}
}

func VehiclesFromModels(records []models.VehicleRecord) []VehicleResponse {
	out := make([]VehicleResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, VehicleFromModel(rec))
	}
	return out
}
