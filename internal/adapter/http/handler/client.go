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

type ClientService interface {
	List() []models.PermanentClient
	Add(ctx context.Context, client models.PermanentClient) (models.PermanentClient, error)
	Update(ctx context.Context, client models.PermanentClient) (models.PermanentClient, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type Client struct {
	registry ClientService
	l        logger.Logger
}

func NewClient(registry ClientService, l logger.Logger) *Client {
	return &Client{
		registry: registry,
		l:        l,
	}
}

// List godoc
// @Summary      List permanent clients
// @Tags         Clients
// @Produce      json
// @Success      200  {array}  dto.ClientResponse
// @Security     BearerAuth
// @Router       /clients [get]
func (h *Client) List(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "client_list")

	response := envelope{"clients": dto.ClientsFromModels(h.registry.List())}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Create godoc
// @Summary      Register a permanent client
// @Tags         Clients
// @Accept       json
// @Produce      json
// @Param        request body dto.ClientRequest true "New client"
// @Success      201  {object}  dto.ClientResponse
// @Failure      422  {object}  map[string]string
// @Security     BearerAuth
// @Router       /clients [post]
func (h *Client) Create(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionClientCreate)

	req := &dto.ClientRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateClient(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	client, err := h.registry.Add(ctx, req.ToModel())
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to register client", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"client": dto.ClientFromModel(client)}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Update godoc
// @Summary      Update a permanent client
// @Tags         Clients
// @Accept       json
// @Produce      json
// @Param        client_id path string true "Client ID"
// @Param        request body dto.ClientRequest true "Updated client"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /clients/{client_id} [put]
func (h *Client) Update(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionClientUpdate)

	id, err := uuid.Parse(r.PathValue("client_id"))
	if err != nil {
		badRequestResponse(w, "invalid client id")
		return
	}

	req := &dto.ClientRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateClient(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	client := req.ToModel()
	client.ID = id

	updated, err := h.registry.Update(ctx, client)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to update client", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"client": dto.ClientFromModel(updated)}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Delete godoc
// @Summary      Remove a permanent client
// @Tags         Clients
// @Param        client_id path string true "Client ID"
// @Success      204  "Removed"
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /clients/{client_id} [delete]
func (h *Client) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionClientRemove)

	id, err := uuid.Parse(r.PathValue("client_id"))
	if err != nil {
		badRequestResponse(w, "invalid client id")
		return
	}

	if err := h.registry.Remove(ctx, id); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to remove client", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
