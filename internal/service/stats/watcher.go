package stats

import (
	"context"
	"time"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	wrap "github.com/Daniyar8k/park-ledger-system/pkg/logger/wrapper"
)

const midnightCheckInterval = time.Minute

// Watch polls once a minute for the midnight boundary and forces a full
// rebuild when the calendar day changes, so the new day gets its own stats
// entry even if no vehicle moves. Blocks until ctx is cancelled.
func (s *Service) Watch(ctx context.Context, ledger LedgerSource) {
	ctx = wrap.WithAction(ctx, types.ActionMidnightCheck)

	ticker := time.NewTicker(midnightCheckInterval)
	defer ticker.Stop()

	lastDay := models.DayKey(time.Now())

	for {
		select {
		case <-ctx.Done():
			s.log.Debug(ctx, "midnight watcher stopped")
			return
		case <-ticker.C:
			day := models.DayKey(time.Now())
			if day == lastDay {
				continue
			}
			lastDay = day
			s.log.Info(ctx, "day boundary crossed, rebuilding stats", "day", day)
			s.RebuildFrom(ctx, ledger.Snapshot())
		}
	}
}
