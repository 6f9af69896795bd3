package recon

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
	wrap "github.com/Daniyar8k/park-ledger-system/pkg/logger/wrapper"
)

const (
	defaultRestoreInterval = time.Minute
	defaultSyncInterval    = 2 * time.Minute

	kindRestore = "restore"
	kindSync    = "sync"
)

// Config controls the engine explicitly. Nothing here is read from ambient
// state: the caller decides which timers run and how often.
type Config struct {
	AutoRestore     bool
	AutoSync        bool
	RestoreInterval time.Duration
	SyncInterval    time.Duration
}

func (c Config) withDefaults() Config {
	if c.RestoreInterval <= 0 {
		c.RestoreInterval = defaultRestoreInterval
	}
	if c.SyncInterval <= 0 {
		c.SyncInterval = defaultSyncInterval
	}
	return c
}

type (
	// RemoteSource reads authoritative snapshots.
	RemoteSource interface {
		FetchVehicles(ctx context.Context) ([]models.VehicleRecord, error)
		FetchClients(ctx context.Context) ([]models.PermanentClient, error)
		FetchSettings(ctx context.Context) (models.Settings, error)
		FetchDailyStats(ctx context.Context) ([]models.DailyStats, error)
	}

	// LocalState exposes the current in-memory state for drift comparison.
	LocalState interface {
		Vehicles() []models.VehicleRecord
		Clients() []models.PermanentClient
		Settings() models.Settings
	}

	// CacheStore is overwritten wholesale with every restore tick.
	CacheStore interface {
		SaveVehicles(records []models.VehicleRecord) error
		SaveClients(clients []models.PermanentClient) error
		SaveSettings(settings models.Settings) error
		SaveDailyStats(stats []models.DailyStats) error
	}

	// Reloader swaps the whole application state for the given snapshot.
	Reloader interface {
		Reload(ctx context.Context, snapshot models.BackupSnapshot)
	}

	// BackupPublisher ships a snapshot to the backup exchange.
	BackupPublisher interface {
		PublishBackup(ctx context.Context, snapshot models.BackupSnapshot) error
	}
)

// Engine keeps local state converged with the remote store. It owns two
// timers: restore pulls remote state in and reloads on drift, sync pushes
// a backup of the authoritative state out.
type Engine struct {
	cfg       Config
	remote    RemoteSource
	local     LocalState
	cache     CacheStore
	reloader  Reloader
	publisher BackupPublisher
	obs       Observer
	now       func() time.Time
	log       logger.Logger
}

func NewEngine(
	cfg Config,
	remote RemoteSource,
	local LocalState,
	cache CacheStore,
	reloader Reloader,
	publisher BackupPublisher,
	obs Observer,
	log logger.Logger,
) *Engine {
	return &Engine{
		cfg:       cfg.withDefaults(),
		remote:    remote,
		local:     local,
		cache:     cache,
		reloader:  reloader,
		publisher: publisher,
		obs:       obs,
		now:       time.Now,
		log:       log,
	}
}

// Run starts the configured timers and blocks until ctx is cancelled.
// A failed tick is reported to the observer and never stops future ticks.
func (e *Engine) Run(ctx context.Context) {
	var wg sync.WaitGroup

	if e.cfg.AutoRestore {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.loop(ctx, e.cfg.RestoreInterval, e.restoreOnce)
		}()
	}
	if e.cfg.AutoSync {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.loop(ctx, e.cfg.SyncInterval, e.syncOnce)
		}()
	}

	e.log.Info(ctx, "reconciliation engine started",
		"auto_restore", e.cfg.AutoRestore,
		"auto_sync", e.cfg.AutoSync,
		"restore_interval", e.cfg.RestoreInterval.String(),
		"sync_interval", e.cfg.SyncInterval.String(),
	)

	wg.Wait()
}

func (e *Engine) loop(ctx context.Context, interval time.Duration, tick func(ctx context.Context) Outcome) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.obs.Observe(ctx, tick(ctx))
		}
	}
}

// RestoreOnce runs a single restore tick outside the timer, for the manual
// restore endpoint. The outcome still goes through the observer.
func (e *Engine) RestoreOnce(ctx context.Context) error {
	out := e.restoreOnce(ctx)
	e.obs.Observe(ctx, out)
	return out.Err
}

// SyncOnce runs a single sync tick outside the timer.
func (e *Engine) SyncOnce(ctx context.Context) error {
	out := e.syncOnce(ctx)
	e.obs.Observe(ctx, out)
	return out.Err
}

func (e *Engine) restoreOnce(ctx context.Context) Outcome {
	ctx = wrap.WithAction(ctx, types.ActionRestoreTick)
	start := e.now()

	snapshot, err := e.fetchSnapshot(ctx)
	if err != nil {
		return Outcome{Kind: kindRestore, Status: classify(err), Err: err, Duration: e.now().Sub(start)}
	}

	// The cache mirrors the remote unconditionally, drift or not.
	e.overwriteCache(ctx, snapshot)

	drift := VehiclesSignature(snapshot.Vehicles) != VehiclesSignature(e.local.Vehicles()) ||
		ClientsSignature(snapshot.Clients) != ClientsSignature(e.local.Clients()) ||
		SettingsSignature(snapshot.Settings) != SettingsSignature(e.local.Settings())

	if drift {
		e.reloader.Reload(ctx, snapshot)
	}

	return Outcome{Kind: kindRestore, Status: StatusOK, Drift: drift, Duration: e.now().Sub(start)}
}

func (e *Engine) syncOnce(ctx context.Context) Outcome {
	ctx = wrap.WithAction(ctx, types.ActionBackupTick)
	start := e.now()

	snapshot, err := e.fetchSnapshot(ctx)
	if err != nil {
		return Outcome{Kind: kindSync, Status: classify(err), Err: err, Duration: e.now().Sub(start)}
	}

	if err := e.publisher.PublishBackup(ctx, snapshot); err != nil {
		err = fmt.Errorf("publish backup: %w", err)
		return Outcome{Kind: kindSync, Status: classify(err), Err: err, Duration: e.now().Sub(start)}
	}

	return Outcome{Kind: kindSync, Status: StatusOK, Duration: e.now().Sub(start)}
}

func (e *Engine) fetchSnapshot(ctx context.Context) (models.BackupSnapshot, error) {
	vehicles, err := e.remote.FetchVehicles(ctx)
	if err != nil {
		return models.BackupSnapshot{}, fmt.Errorf("fetch vehicles: %w", err)
	}
	clients, err := e.remote.FetchClients(ctx)
	if err != nil {
		return models.BackupSnapshot{}, fmt.Errorf("fetch clients: %w", err)
	}
	settings, err := e.remote.FetchSettings(ctx)
	if err != nil {
		return models.BackupSnapshot{}, fmt.Errorf("fetch settings: %w", err)
	}
	stats, err := e.remote.FetchDailyStats(ctx)
	if err != nil {
		return models.BackupSnapshot{}, fmt.Errorf("fetch daily stats: %w", err)
	}

	return models.BackupSnapshot{
		TakenAt:    e.now(),
		Vehicles:   vehicles,
		Clients:    clients,
		Settings:   settings,
		DailyStats: stats,
	}, nil
}

func (e *Engine) overwriteCache(ctx context.Context, snapshot models.BackupSnapshot) {
	if err := e.cache.SaveVehicles(snapshot.Vehicles); err != nil {
		e.log.Error(ctx, "failed to overwrite vehicle cache", err)
	}
	if err := e.cache.SaveClients(snapshot.Clients); err != nil {
		e.log.Error(ctx, "failed to overwrite client cache", err)
	}
	if err := e.cache.SaveSettings(snapshot.Settings); err != nil {
		e.log.Error(ctx, "failed to overwrite settings cache", err)
	}
	if err := e.cache.SaveDailyStats(snapshot.DailyStats); err != nil {
		e.log.Error(ctx, "failed to overwrite daily stats cache", err)
	}
}

func classify(err error) Status {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return StatusFatal
	}
	return StatusRecoverable
}
