package stats

import (
	"reflect"
	"testing"
	"time"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	"github.com/Daniyar8k/park-ledger-system/pkg/uuid"
)

func newID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.New()
	if err != nil {
		t.Fatalf("uuid.New: %v", err)
	}
	return id
}

func record(t *testing.T, vt types.VehicleType, entry time.Time, exit *time.Time, fee *float64) models.VehicleRecord {
	t.Helper()
	return models.VehicleRecord{
		ID:        newID(t),
		Type:      vt,
		EntryTime: entry,
		ExitTime:  exit,
		Fee:       fee,
	}
}

func ptrTime(t time.Time) *time.Time { return &t }
func ptrFee(f float64) *float64      { return &f }

func TestRebuild_CrossDayAttribution(t *testing.T) {
	d1Entry := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	d2Exit := time.Date(2025, 3, 11, 2, 0, 0, 0, time.UTC)

	snapshot := []models.VehicleRecord{
		record(t, types.VehicleCar, d1Entry, ptrTime(d2Exit), ptrFee(90)),
	}

	got := Rebuild(snapshot)

	if len(got) != 2 {
		t.Fatalf("expected 2 days, got %d", len(got))
	}

	// Newest first
	d2, d1 := got[0], got[1]
	if d2.Date != "2025-03-11" || d1.Date != "2025-03-10" {
		t.Fatalf("unexpected order: %s, %s", d2.Date, d1.Date)
	}

	// Entry day carries the count, exit day carries the income — never the reverse.
	if d1.TotalVehicles != 1 || d1.TotalIncome != 0 {
		t.Errorf("entry day: vehicles=%d income=%v", d1.TotalVehicles, d1.TotalIncome)
	}
	if d2.TotalVehicles != 0 || d2.TotalIncome != 90 {
		t.Errorf("exit day: vehicles=%d income=%v", d2.TotalVehicles, d2.TotalIncome)
	}
	if d1.Counts[types.VehicleCar] != 1 {
		t.Errorf("entry day car count = %d", d1.Counts[types.VehicleCar])
	}
	if len(d1.Vehicles) != 1 || len(d2.Vehicles) != 0 {
		t.Errorf("vehicle lists: entry day %d, exit day %d", len(d1.Vehicles), len(d2.Vehicles))
	}
}

func TestRebuild_Idempotent(t *testing.T) {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	snapshot := []models.VehicleRecord{
		record(t, types.VehicleCar, base, ptrTime(base.Add(3*time.Hour)), ptrFee(70)),
		record(t, types.VehicleBike, base.Add(time.Hour), nil, nil),
		record(t, types.VehicleRickshaw, base.Add(26*time.Hour), nil, nil),
	}

	first := Rebuild(snapshot)
	second := Rebuild(snapshot)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("rebuild is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestRebuild_OrderIndependent(t *testing.T) {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	a := record(t, types.VehicleCar, base, nil, nil)
	b := record(t, types.VehicleBike, base.Add(time.Minute), nil, nil)
	c := record(t, types.VehicleCar, base.Add(2*time.Minute), ptrTime(base.Add(time.Hour)), ptrFee(50))

	forward := Rebuild([]models.VehicleRecord{a, b, c})
	backward := Rebuild([]models.VehicleRecord{c, b, a})

	if !reflect.DeepEqual(forward, backward) {
		t.Fatalf("rebuild depends on snapshot order")
	}
}

func TestRebuild_CountsByType(t *testing.T) {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	snapshot := []models.VehicleRecord{
		record(t, types.VehicleCar, base, nil, nil),
		record(t, types.VehicleCar, base.Add(time.Minute), nil, nil),
		record(t, types.VehicleBike, base.Add(2*time.Minute), nil, nil),
	}

	got := Rebuild(snapshot)
	if len(got) != 1 {
		t.Fatalf("expected 1 day, got %d", len(got))
	}

	day := got[0]
	if day.Counts[types.VehicleCar] != 2 || day.Counts[types.VehicleBike] != 1 {
		t.Errorf("counts: %+v", day.Counts)
	}
	if day.TotalVehicles != 3 {
		t.Errorf("total vehicles = %d", day.TotalVehicles)
	}
}

func TestRebuild_EmptySnapshot(t *testing.T) {
	if got := Rebuild(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %d days", len(got))
	}
}
