package handler

import (
	"context"
	"net/http"

	"github.com/Daniyar8k/park-ledger-system/internal/adapter/http/handler/dto"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
	wrap "github.com/Daniyar8k/park-ledger-system/pkg/logger/wrapper"
	"github.com/Daniyar8k/park-ledger-system/pkg/uuid"
	"github.com/Daniyar8k/park-ledger-system/pkg/validator"
)

type VehicleService interface {
	Add(ctx context.Context, vt types.VehicleType, isPermanent bool) (models.VehicleRecord, error)
	Exit(ctx context.Context, id uuid.UUID) (*models.VehicleRecord, error)
	Snapshot() []models.VehicleRecord
}

type Vehicle struct {
	ledger VehicleService
	l      logger.Logger
}

func NewVehicle(ledger VehicleService, l logger.Logger) *Vehicle {
	return &Vehicle{
		ledger: ledger,
		l:      l,
	}
}

// Enter godoc
// @Summary      Admit a vehicle
// @Description  Records a vehicle entry and returns the new ledger record
// @Tags         Vehicles
// @Accept       json
// @Produce      json
// @Param        request body dto.VehicleEntryRequest true "Vehicle entry"
// @Success      201  {object}  dto.VehicleResponse
// @Failure      400  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Security     BearerAuth
// @Router       /vehicles [post]
func (h *Vehicle) Enter(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionVehicleEntry)

	req := &dto.VehicleEntryRequest{}
	if err := readJSON(w, r, req); err != nil {
		h.l.Error(ctx, "failed to read request JSON data", err)
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateVehicleEntry(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	rec, err := h.ledger.Add(ctx, types.VehicleType(req.Type), req.IsPermanent)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to admit vehicle", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"vehicle": dto.VehicleFromModel(rec)}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Exit godoc
// @Summary      Record a vehicle exit
// @Description  Computes the fee and closes the ledger record. Exiting an unknown or already-exited vehicle is a no-op.
// @Tags         Vehicles
// @Produce      json
// @Param        vehicle_id path string true "Vehicle ID"
// @Success      200  {object}  dto.VehicleResponse
// @Success      204  "No parked vehicle with this id"
// @Failure      400  {object}  map[string]string
// @Security     BearerAuth
// @Router       /vehicles/{vehicle_id}/exit [post]
func (h *Vehicle) Exit(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionVehicleExit)

	id, err := uuid.Parse(r.PathValue("vehicle_id"))
	if err != nil {
		badRequestResponse(w, "invalid vehicle id")
		return
	}
	ctx = wrap.WithVehicleID(ctx, id.String())

	rec, err := h.ledger.Exit(ctx, id)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to record vehicle exit", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}
	if rec == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	response := envelope{"vehicle": dto.VehicleFromModel(*rec)}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// List godoc
// @Summary      List ledger records
// @Description  Returns the full vehicle ledger
// @Tags         Vehicles
// @Produce      json
// @Success      200  {array}  dto.VehicleResponse
// @Security     BearerAuth
// @Router       /vehicles [get]
func (h *Vehicle) List(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "vehicle_list")

	records := h.ledger.Snapshot()

	response := envelope{"vehicles": dto.VehiclesFromModels(records)}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
