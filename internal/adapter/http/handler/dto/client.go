package dto

import (
	"time"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	"github.com/Daniyar8k/park-ledger-system/pkg/validator"
)

type ClientRequest struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	PaymentStatus string `json:"payment_status,omitempty"`
}

func (r *ClientRequest) ToModel() models.PermanentClient {
	return models.PermanentClient{
		Name:          r.Name,
		Type:          types.VehicleType(r.Type),
		PaymentStatus: types.PaymentStatus(r.PaymentStatus),
	}
}

func ValidateClient(v *validator.Validator, req *ClientRequest) {
	v.Check(req.Name != "", "name", "must be provided")
	v.Check(len(req.Name) <= 200, "name", "must not be more than 200 bytes long")

	v.Check(req.Type != "", "type", "must be provided")
	v.Check(validator.PermittedValue(req.Type,
		types.VehicleCar.String(), types.VehicleBike.String(), types.VehicleRickshaw.String()),
		"type", "must be one of car, bike, rickshaw")

	if req.PaymentStatus != "" {
		v.Check(validator.PermittedValue(req.PaymentStatus,
			types.PaymentPaid.String(), types.PaymentUnpaid.String()),
			"payment_status", "must be one of paid, unpaid")
	}
}

type ClientResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ClientFromModel(c models.PermanentClient) ClientResponse {
	return ClientResponse{
		ID:            c.ID.String(),
		Name:          c.Name,
		Type:          c.Type.String(),
		PaymentStatus: c.PaymentStatus.String(),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func ClientsFromModels(clients []models.PermanentClient) []ClientResponse {
	out := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, ClientFromModel(c))
	}
	return out
}
