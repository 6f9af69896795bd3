package handler

import (
	"net/http"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
	wrap "github.com/Daniyar8k/park-ledger-system/pkg/logger/wrapper"
)

type StatsService interface {
	Current() []models.DailyStats
}

type Stats struct {
	stats StatsService
	l     logger.Logger
}

func NewStats(stats StatsService, l logger.Logger) *Stats {
	return &Stats{
		stats: stats,
		l:     l,
	}
}

// Daily godoc
// @Summary      Daily statistics
// @Description  Returns per-day counts, income and vehicle lists, newest day first
// @Tags         Stats
// @Produce      json
// @Success      200  {array}  models.DailyStats
// @Security     BearerAuth
// @Router       /stats/daily [get]
func (h *Stats) Daily(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "stats_daily")

	response := envelope{"daily_stats": h.stats.Current()}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
