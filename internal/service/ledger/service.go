package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
	wrap "github.com/Daniyar8k/park-ledger-system/pkg/logger/wrapper"
	"github.com/Daniyar8k/park-ledger-system/pkg/metrics"
	"github.com/Daniyar8k/park-ledger-system/pkg/uuid"
)

// Service is the vehicle ledger: an append/mutate-only log of parking
// records. Every mutation commits to the in-memory ledger and the local
// cache first; the remote write is best-effort. Records are never deleted
// and become immutable once exited.
type Service struct {
	mu      sync.RWMutex
	records []models.VehicleRecord

	remote    RemoteStore
	cache     CacheStore
	calc      Calculator
	tariffs   TariffSource
	rebuilder Rebuilder

	remoteWrites sync.WaitGroup

	retryDelay time.Duration
	now        func() time.Time

	log logger.Logger
}

func New(
	remote RemoteStore,
	cache CacheStore,
	calc Calculator,
	tariffs TariffSource,
	rebuilder Rebuilder,
	retryDelay time.Duration,
	log logger.Logger,
) *Service {
	return &Service{
		remote:     remote,
		cache:      cache,
		calc:       calc,
		tariffs:    tariffs,
		rebuilder:  rebuilder,
		retryDelay: retryDelay,
		now:        time.Now,
		log:        log,
	}
}

// Add admits a vehicle: assigns a sortable ID, appends to the ledger,
// persists the local cache and attempts a single best-effort remote write.
// A remote failure is logged only; the entry has already committed locally.
func (s *Service) Add(ctx context.Context, vt types.VehicleType, isPermanent bool) (models.VehicleRecord, error) {
	ctx = wrap.WithAction(ctx, types.ActionVehicleEntry)

	if !vt.Valid() {
		return models.VehicleRecord{}, fmt.Errorf("%w: %q", types.ErrUnknownVehicleType, vt)
	}

	id, err := uuid.New()
	if err != nil {
		return models.VehicleRecord{}, wrap.Error(ctx, fmt.Errorf("could not generate vehicle id: %w", err))
	}

	rec := models.VehicleRecord{
		ID:          id,
		Type:        vt,
		EntryTime:   s.now(),
		IsPermanent: isPermanent,
	}
	if isPermanent {
		rec.PaymentStatus = types.PaymentUnpaid
	}

	ctx = wrap.WithVehicleID(ctx, id.String())

	s.mu.Lock()
	s.records = append(s.records, rec)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)

	err = s.remote.AddVehicle(ctx, rec)
	metrics.RecordRemoteWrite("add_vehicle", err)
	if err != nil {
		s.log.Warn(ctx, "remote vehicle write failed, continuing on local state", "err", err.Error())
	}

	metrics.VehiclesEnteredTotal.WithLabelValues(vt.String()).Inc()
	metrics.VehiclesActiveGauge.Inc()

	s.rebuilder.RebuildFrom(ctx, snapshot)

	s.log.Info(ctx, "vehicle admitted", "type", vt.String(), "permanent", isPermanent)

	return rec, nil
}

// Exit closes the active record with the given id. Exiting an unknown or
// already-exited id is a no-op and returns (nil, nil): the ledger must never
// be corrupted by a stale exit request. The local record is updated and
// persisted regardless of the remote outcome; the remote write runs in the
// background and is retried exactly once after a fixed delay, so the caller
// never waits on the remote store.
func (s *Service) Exit(ctx context.Context, id uuid.UUID) (*models.VehicleRecord, error) {
	ctx = wrap.WithAction(ctx, types.ActionVehicleExit)
	ctx = wrap.WithVehicleID(ctx, id.String())

	exitAt := s.now()

	s.mu.Lock()
	idx := -1
	for i := range s.records {
		if s.records[i].ID == id && !s.records[i].Exited() {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		s.log.Debug(ctx, "exit requested for unknown or already-exited vehicle, ignoring")
		return nil, nil
	}

	rec := s.records[idx]
	fee, err := s.calc.Fee(rec.EntryTime, exitAt, rec.Type, s.tariffs.PricingTable())
	if err != nil {
		s.mu.Unlock()
		return nil, wrap.Error(ctx, fmt.Errorf("could not compute fee: %w", err))
	}

	s.records[idx].ExitTime = &exitAt
	s.records[idx].Fee = &fee
	rec = s.records[idx]
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)

	metrics.VehiclesExitedTotal.WithLabelValues(rec.Type.String()).Inc()
	metrics.VehiclesActiveGauge.Dec()
	metrics.FeesCollectedTotal.Add(fee)

	s.rebuilder.RebuildFrom(ctx, snapshot)

	// The write must outlive the request: detach from its cancellation but
	// keep the log fields.
	writeCtx := context.WithoutCancel(ctx)
	s.remoteWrites.Add(1)
	go func() {
		defer s.remoteWrites.Done()
		s.writeExitRemote(writeCtx, rec)
	}()

	s.log.Info(ctx, "vehicle exited", "type", rec.Type.String(), "fee", fee)

	return &rec, nil
}

// writeExitRemote pushes the exit to the authoritative store with exactly
// one retry. Failures are logged, never surfaced: local truth may diverge
// from remote truth until the next successful reconciliation poll.
func (s *Service) writeExitRemote(ctx context.Context, rec models.VehicleRecord) {
	err := s.remote.ExitVehicle(ctx, rec)
	metrics.RecordRemoteWrite("exit_vehicle", err)
	if err == nil {
		return
	}

	s.log.Warn(ctx, "remote exit write failed, retrying once",
		"retry_delay", s.retryDelay.String(),
		"err", err.Error(),
	)

	select {
	case <-ctx.Done():
		s.log.Warn(ctx, "context cancelled before exit retry", "err", ctx.Err().Error())
		return
	case <-time.After(s.retryDelay):
	}

	err = s.remote.ExitVehicle(ctx, rec)
	metrics.RecordRemoteWrite("exit_vehicle", err)
	if err != nil {
		s.log.Error(ctx, "remote exit write failed after retry", err)
	}
}

// Snapshot returns a copy of the full ledger.
func (s *Service) Snapshot() []models.VehicleRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Service) snapshotLocked() []models.VehicleRecord {
	out := make([]models.VehicleRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Replace swaps the whole ledger for the given snapshot. Used by the
// reconciliation reload: the remote store is authoritative, so there is no
// per-record merge, only whole-snapshot replacement.
func (s *Service) Replace(records []models.VehicleRecord) {
	s.mu.Lock()
	s.records = make([]models.VehicleRecord, len(records))
	copy(s.records, records)
	active := 0
	for i := range s.records {
		if !s.records[i].Exited() {
			active++
		}
	}
	s.mu.Unlock()

	metrics.VehiclesActiveGauge.Set(float64(active))
}

// Load restores the ledger from the local cache on startup and triggers the
// initial stats rebuild.
func (s *Service) Load(ctx context.Context) error {
	records, err := s.cache.LoadVehicles()
	if err != nil {
		return fmt.Errorf("ledger: load from cache: %w", err)
	}

	s.Replace(records)
	s.rebuilder.RebuildFrom(ctx, s.Snapshot())

	s.log.Info(ctx, "ledger loaded from cache", "records", len(records))

	return nil
}

func (s *Service) persist(ctx context.Context, snapshot []models.VehicleRecord) {
	if err := s.cache.SaveVehicles(snapshot); err != nil {
		s.log.Error(ctx, "failed to persist ledger to cache", err)
	}
}

// WithClock overrides the time source. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}
