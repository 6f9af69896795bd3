package handler

import (
	"context"
	"net/http"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
	wrap "github.com/Daniyar8k/park-ledger-system/pkg/logger/wrapper"
)

type SyncService interface {
	RestoreOnce(ctx context.Context) error
	SyncOnce(ctx context.Context) error
}

type Sync struct {
	engine SyncService
	l      logger.Logger
}

func NewSync(engine SyncService, l logger.Logger) *Sync {
	return &Sync{
		engine: engine,
		l:      l,
	}
}

// Restore godoc
// @Summary      Manual restore
// @Description  Pulls the authoritative state, overwrites the local cache and reloads on drift
// @Tags         Sync
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Security     BearerAuth
// @Router       /sync/restore [post]
func (h *Sync) Restore(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionRestoreTick)

	if err := h.engine.RestoreOnce(ctx); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "manual restore failed", err)
		errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"status": "restored"}, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Backup godoc
// @Summary      Manual backup
// @Description  Publishes a snapshot of the authoritative state to the backup exchange
// @Tags         Sync
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Security     BearerAuth
// @Router       /sync/backup [post]
func (h *Sync) Backup(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionBackupTick)

	if err := h.engine.SyncOnce(ctx); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "manual backup failed", err)
		errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"status": "backed_up"}, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
