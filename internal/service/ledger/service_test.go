package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	"github.com/Daniyar8k/park-ledger-system/internal/service/pricing"
	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
	"github.com/Daniyar8k/park-ledger-system/pkg/uuid"
)

type fakeRemote struct {
	mu        sync.Mutex
	addCalls  int
	exitCalls int

	// failExits counts down: while positive, ExitVehicle fails.
	failExits int
	failAdds  int
}

func (f *fakeRemote) AddVehicle(ctx context.Context, rec models.VehicleRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls++
	if f.failAdds > 0 {
		f.failAdds--
		return errors.New("remote unavailable")
	}
	return nil
}

func (f *fakeRemote) ExitVehicle(ctx context.Context, rec models.VehicleRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exitCalls++
	if f.failExits > 0 {
		f.failExits--
		return errors.New("remote unavailable")
	}
	return nil
}

type fakeCache struct {
	mu       sync.Mutex
	saved    [][]models.VehicleRecord
	existing []models.VehicleRecord
}

func (f *fakeCache) SaveVehicles(records []models.VehicleRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]models.VehicleRecord, len(records))
	copy(cp, records)
	f.saved = append(f.saved, cp)
	return nil
}

func (f *fakeCache) LoadVehicles() ([]models.VehicleRecord, error) {
	return f.existing, nil
}

type fakeRebuilder struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeRebuilder) RebuildFrom(ctx context.Context, snapshot []models.VehicleRecord) []models.DailyStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return nil
}

type fixedTariffs struct{}

func (fixedTariffs) PricingTable() models.PricingTable {
	return models.PricingTable{
		types.VehicleCar:  {BaseHours: 2, BaseFee: 50, ExtraHourFee: 20},
		types.VehicleBike: {BaseHours: 2, BaseFee: 20, ExtraHourFee: 10},
	}
}

func newTestService(remote *fakeRemote, cache *fakeCache, rebuilder *fakeRebuilder) *Service {
	log := logger.InitLogger("ledger-test", logger.LevelError)
	return New(remote, cache, pricing.New(), fixedTariffs{}, rebuilder, time.Millisecond, log)
}

func TestAdd_CommitsLocallyOnRemoteFailure(t *testing.T) {
	remote := &fakeRemote{failAdds: 1}
	cache := &fakeCache{}
	rebuilder := &fakeRebuilder{}
	svc := newTestService(remote, cache, rebuilder)

	rec, err := svc.Add(context.Background(), types.VehicleCar, false)
	if err != nil {
		t.Fatalf("Add must succeed on remote failure, got %v", err)
	}
	if rec.ID.IsZero() {
		t.Fatal("Add did not assign an id")
	}
	if got := len(svc.Snapshot()); got != 1 {
		t.Fatalf("ledger size = %d, want 1", got)
	}
	if remote.addCalls != 1 {
		t.Fatalf("remote add calls = %d, want 1 (no retry for entries)", remote.addCalls)
	}
	if len(cache.saved) == 0 {
		t.Fatal("ledger was not persisted to cache")
	}
	if rebuilder.calls != 1 {
		t.Fatalf("rebuild calls = %d, want 1", rebuilder.calls)
	}
}

func TestExit_FeeIffExitTime(t *testing.T) {
	svc := newTestService(&fakeRemote{}, &fakeCache{}, &fakeRebuilder{})

	rec, err := svc.Add(context.Background(), types.VehicleCar, false)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	for _, r := range svc.Snapshot() {
		if (r.ExitTime == nil) != (r.Fee == nil) {
			t.Fatalf("invariant violated before exit: exit=%v fee=%v", r.ExitTime, r.Fee)
		}
	}

	exited, err := svc.Exit(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("Exit: %v", err)
	}
	if exited == nil {
		t.Fatal("Exit returned nil for an active record")
	}
	if exited.ExitTime == nil || exited.Fee == nil {
		t.Fatal("exited record must carry both exit time and fee")
	}
	if *exited.Fee < 0 {
		t.Fatalf("fee must be non-negative, got %v", *exited.Fee)
	}
	if exited.ExitTime.Before(exited.EntryTime) {
		t.Fatal("exit time before entry time")
	}

	for _, r := range svc.Snapshot() {
		if (r.ExitTime == nil) != (r.Fee == nil) {
			t.Fatalf("invariant violated after exit: exit=%v fee=%v", r.ExitTime, r.Fee)
		}
	}
}

func TestExit_UnknownOrExitedIsNoop(t *testing.T) {
	remote := &fakeRemote{}
	svc := newTestService(remote, &fakeCache{}, &fakeRebuilder{})

	unknown, err := uuid.New()
	if err != nil {
		t.Fatalf("uuid.New: %v", err)
	}
	rec, err := svc.Exit(context.Background(), unknown)
	if err != nil || rec != nil {
		t.Fatalf("exit of unknown id must be a no-op, got rec=%v err=%v", rec, err)
	}

	added, err := svc.Add(context.Background(), types.VehicleBike, false)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := svc.Exit(context.Background(), added.ID); err != nil {
		t.Fatalf("first Exit: %v", err)
	}
	svc.remoteWrites.Wait()

	before := svc.Snapshot()
	exitCallsBefore := remote.exitCalls

	rec, err = svc.Exit(context.Background(), added.ID)
	if err != nil || rec != nil {
		t.Fatalf("second exit must be a no-op, got rec=%v err=%v", rec, err)
	}

	after := svc.Snapshot()
	if len(before) != len(after) {
		t.Fatal("ledger changed on no-op exit")
	}
	if remote.exitCalls != exitCallsBefore {
		t.Fatal("no-op exit must not touch the remote store")
	}
	for i := range before {
		if !after[i].ExitTime.Equal(*before[i].ExitTime) || *after[i].Fee != *before[i].Fee {
			t.Fatal("record mutated on no-op exit")
		}
	}
}

func TestExit_RetriesExactlyOnce(t *testing.T) {
	tests := []struct {
		name      string
		failExits int
		wantCalls int
	}{
		{"fails once then succeeds", 1, 2},
		{"fails both attempts", 5, 2},
		{"succeeds first try", 0, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			remote := &fakeRemote{failExits: tc.failExits}
			svc := newTestService(remote, &fakeCache{}, &fakeRebuilder{})

			rec, err := svc.Add(context.Background(), types.VehicleCar, false)
			if err != nil {
				t.Fatalf("Add: %v", err)
			}

			exited, err := svc.Exit(context.Background(), rec.ID)
			if err != nil {
				t.Fatalf("Exit: %v", err)
			}
			if exited == nil || exited.ExitTime == nil {
				t.Fatal("local record must reflect the exit regardless of remote outcome")
			}

			svc.remoteWrites.Wait()
			if remote.exitCalls != tc.wantCalls {
				t.Fatalf("remote exit calls = %d, want %d", remote.exitCalls, tc.wantCalls)
			}
		})
	}
}

func TestExit_ReturnsBeforeRemoteRetry(t *testing.T) {
	remote := &fakeRemote{failExits: 2}
	log := logger.InitLogger("ledger-test", logger.LevelError)
	svc := New(remote, &fakeCache{}, pricing.New(), fixedTariffs{}, &fakeRebuilder{}, time.Minute, log)

	rec, err := svc.Add(context.Background(), types.VehicleCar, false)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	start := time.Now()
	exited, err := svc.Exit(context.Background(), rec.ID)
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Exit: %v", err)
	}
	if exited == nil || exited.ExitTime == nil {
		t.Fatal("local record must reflect the exit immediately")
	}
	if elapsed >= time.Second {
		t.Fatalf("Exit blocked %v on the remote retry delay", elapsed)
	}
}

func TestReplace_WholeSnapshot(t *testing.T) {
	svc := newTestService(&fakeRemote{}, &fakeCache{}, &fakeRebuilder{})

	if _, err := svc.Add(context.Background(), types.VehicleCar, false); err != nil {
		t.Fatalf("Add: %v", err)
	}

	id, err := uuid.New()
	if err != nil {
		t.Fatalf("uuid.New: %v", err)
	}
	authoritative := []models.VehicleRecord{
		{ID: id, Type: types.VehicleBike, EntryTime: time.Now()},
	}

	svc.Replace(authoritative)

	got := svc.Snapshot()
	if len(got) != 1 || got[0].ID != id {
		t.Fatalf("Replace did not install the authoritative snapshot: %+v", got)
	}
}

func TestLoad_FromCache(t *testing.T) {
	id, err := uuid.New()
	if err != nil {
		t.Fatalf("uuid.New: %v", err)
	}
	cache := &fakeCache{existing: []models.VehicleRecord{
		{ID: id, Type: types.VehicleCar, EntryTime: time.Now()},
	}}
	rebuilder := &fakeRebuilder{}
	svc := newTestService(&fakeRemote{}, cache, rebuilder)

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(svc.Snapshot()); got != 1 {
		t.Fatalf("ledger size after load = %d, want 1", got)
	}
	if rebuilder.calls != 1 {
		t.Fatalf("load must trigger a rebuild, calls = %d", rebuilder.calls)
	}
}
