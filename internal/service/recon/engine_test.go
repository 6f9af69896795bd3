package recon

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
)

type fakeRemote struct {
	mu       sync.Mutex
	vehicles []models.VehicleRecord
	clients  []models.PermanentClient
	settings models.Settings
	stats    []models.DailyStats
	err      error
}

func (f *fakeRemote) FetchVehicles(ctx context.Context) ([]models.VehicleRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.vehicles, f.err
}

func (f *fakeRemote) FetchClients(ctx context.Context) ([]models.PermanentClient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clients, f.err
}

func (f *fakeRemote) FetchSettings(ctx context.Context) (models.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settings, f.err
}

func (f *fakeRemote) FetchDailyStats(ctx context.Context) ([]models.DailyStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats, f.err
}

type fakeLocal struct {
	vehicles []models.VehicleRecord
	clients  []models.PermanentClient
	settings models.Settings
}

func (f *fakeLocal) Vehicles() []models.VehicleRecord  { return f.vehicles }
func (f *fakeLocal) Clients() []models.PermanentClient { return f.clients }
func (f *fakeLocal) Settings() models.Settings         { return f.settings }

type fakeCache struct {
	mu            sync.Mutex
	vehicleSaves  int
	clientSaves   int
	settingsSaves int
	statsSaves    int
}

func (f *fakeCache) SaveVehicles(records []models.VehicleRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vehicleSaves++
	return nil
}

func (f *fakeCache) SaveClients(clients []models.PermanentClient) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clientSaves++
	return nil
}

func (f *fakeCache) SaveSettings(settings models.Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settingsSaves++
	return nil
}

func (f *fakeCache) SaveDailyStats(stats []models.DailyStats) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statsSaves++
	return nil
}

type fakeReloader struct {
	mu    sync.Mutex
	calls int
	last  models.BackupSnapshot
}

func (f *fakeReloader) Reload(ctx context.Context, snapshot models.BackupSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = snapshot
}

type fakePublisher struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakePublisher) PublishBackup(ctx context.Context, snapshot models.BackupSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []Outcome
}

func (o *recordingObserver) Observe(ctx context.Context, out Outcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, out)
}

func (o *recordingObserver) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.outcomes)
}

type engineParts struct {
	remote    *fakeRemote
	local     *fakeLocal
	cache     *fakeCache
	reloader  *fakeReloader
	publisher *fakePublisher
	obs       *recordingObserver
}

func newTestEngine(cfg Config) (*Engine, *engineParts) {
	parts := &engineParts{
		remote:    &fakeRemote{},
		local:     &fakeLocal{},
		cache:     &fakeCache{},
		reloader:  &fakeReloader{},
		publisher: &fakePublisher{},
		obs:       &recordingObserver{},
	}
	log := logger.InitLogger("recon-test", logger.LevelError)
	engine := NewEngine(cfg, parts.remote, parts.local, parts.cache, parts.reloader, parts.publisher, parts.obs, log)
	return engine, parts
}

func TestRestoreNoDriftStillOverwritesCache(t *testing.T) {
	engine, parts := newTestEngine(Config{})

	if err := engine.RestoreOnce(context.Background()); err != nil {
		t.Fatalf("RestoreOnce: %v", err)
	}

	if parts.reloader.calls != 0 {
		t.Errorf("reload calls = %d, want 0 when states match", parts.reloader.calls)
	}
	if parts.cache.vehicleSaves != 1 || parts.cache.clientSaves != 1 ||
		parts.cache.settingsSaves != 1 || parts.cache.statsSaves != 1 {
		t.Error("cache must be overwritten on every restore tick")
	}

	out := parts.obs.outcomes[0]
	if out.Status != StatusOK || out.Drift {
		t.Errorf("outcome = %+v, want ok without drift", out)
	}
}

func TestRestoreDriftReloadsOnce(t *testing.T) {
	engine, parts := newTestEngine(Config{})
	parts.remote.vehicles = []models.VehicleRecord{{ID: mustID(t), Type: types.VehicleCar}}

	if err := engine.RestoreOnce(context.Background()); err != nil {
		t.Fatalf("RestoreOnce: %v", err)
	}

	if parts.reloader.calls != 1 {
		t.Fatalf("reload calls = %d, want exactly 1 per drifted tick", parts.reloader.calls)
	}
	if len(parts.reloader.last.Vehicles) != 1 {
		t.Error("reload must receive the remote snapshot")
	}
	if !parts.obs.outcomes[0].Drift {
		t.Error("outcome must carry the drift flag")
	}
}

func TestRestoreSettingsDrift(t *testing.T) {
	engine, parts := newTestEngine(Config{})
	parts.local.settings.Credentials.PasswordHash = "old"
	parts.remote.settings.Credentials.PasswordHash = "rotated"

	if err := engine.RestoreOnce(context.Background()); err != nil {
		t.Fatalf("RestoreOnce: %v", err)
	}
	if parts.reloader.calls != 1 {
		t.Errorf("reload calls = %d, want 1 on credential rotation", parts.reloader.calls)
	}
}

func TestRestoreFetchFailureIsRecoverable(t *testing.T) {
	engine, parts := newTestEngine(Config{})
	parts.remote.err = errors.New("connection refused")

	if err := engine.RestoreOnce(context.Background()); err == nil {
		t.Fatal("expected error from failed fetch")
	}

	if parts.reloader.calls != 0 {
		t.Error("a failed fetch must not reload state")
	}
	if parts.cache.vehicleSaves != 0 {
		t.Error("a failed fetch must not touch the cache")
	}
	if out := parts.obs.outcomes[0]; out.Status != StatusRecoverable {
		t.Errorf("status = %q, want recoverable", out.Status)
	}
}

func TestSyncPublishesBackup(t *testing.T) {
	engine, parts := newTestEngine(Config{})

	if err := engine.SyncOnce(context.Background()); err != nil {
		t.Fatalf("SyncOnce: %v", err)
	}
	if parts.publisher.calls != 1 {
		t.Errorf("publish calls = %d, want 1", parts.publisher.calls)
	}
	if parts.reloader.calls != 0 {
		t.Error("sync must never reload local state")
	}
}

func TestSyncPublishFailureIsRecoverable(t *testing.T) {
	engine, parts := newTestEngine(Config{})
	parts.publisher.err = errors.New("channel closed")

	if err := engine.SyncOnce(context.Background()); err == nil {
		t.Fatal("expected error from failed publish")
	}
	if out := parts.obs.outcomes[0]; out.Status != StatusRecoverable {
		t.Errorf("status = %q, want recoverable", out.Status)
	}
}

func TestRunKeepsTickingAfterFailures(t *testing.T) {
	engine, parts := newTestEngine(Config{
		AutoRestore:     true,
		RestoreInterval: 5 * time.Millisecond,
	})
	parts.remote.err = errors.New("connection refused")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		engine.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for parts.obs.count() < 3 {
		select {
		case <-deadline:
			t.Fatal("engine stopped ticking after failures")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on context cancellation")
	}
}

func TestRunRespectsDisabledTimers(t *testing.T) {
	engine, _ := newTestEngine(Config{})

	done := make(chan struct{})
	go func() {
		engine.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run with no enabled timers must return immediately")
	}
}
