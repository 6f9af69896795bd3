package stats

import (
	"context"
	"sync"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
	wrap "github.com/Daniyar8k/park-ledger-system/pkg/logger/wrapper"
)

type (
	// CacheStore persists the derived stats snapshot locally.
	CacheStore interface {
		SaveDailyStats(stats []models.DailyStats) error
	}

	// RemoteStore mirrors the derived snapshot to the authoritative store.
	RemoteStore interface {
		ReplaceDailyStats(ctx context.Context, stats []models.DailyStats) error
	}

	// LedgerSource provides the full ledger snapshot the rebuild runs on.
	LedgerSource interface {
		Snapshot() []models.VehicleRecord
	}
)

// Service owns the in-memory daily stats snapshot. The snapshot is derived
// data: every update is a full rebuild from the ledger, replaced atomically.
type Service struct {
	mu      sync.RWMutex
	current []models.DailyStats

	cache  CacheStore
	remote RemoteStore
	log    logger.Logger
}

func New(cache CacheStore, remote RemoteStore, log logger.Logger) *Service {
	return &Service{
		cache:  cache,
		remote: remote,
		log:    log,
	}
}

// Current returns the latest rebuilt snapshot, newest date first.
func (s *Service) Current() []models.DailyStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.DailyStats, len(s.current))
	copy(out, s.current)
	return out
}

// RebuildFrom recomputes daily stats from the given ledger snapshot, replaces
// the in-memory copy, persists it to the local cache and mirrors it to the
// remote store best-effort. A remote failure is logged, never surfaced: the
// local snapshot is already consistent and reconciliation will converge later.
func (s *Service) RebuildFrom(ctx context.Context, snapshot []models.VehicleRecord) []models.DailyStats {
	ctx = wrap.WithAction(ctx, types.ActionStatsRebuild)

	rebuilt := Rebuild(snapshot)

	s.mu.Lock()
	s.current = rebuilt
	s.mu.Unlock()

	if err := s.cache.SaveDailyStats(rebuilt); err != nil {
		s.log.Error(ctx, "failed to persist daily stats to cache", err)
	}

	if s.remote != nil {
		if err := s.remote.ReplaceDailyStats(ctx, rebuilt); err != nil {
			s.log.Warn(ctx, "failed to mirror daily stats to remote store", "err", err.Error())
		}
	}

	s.log.Debug(ctx, "daily stats rebuilt", "days", len(rebuilt), "records", len(snapshot))

	return rebuilt
}
