package pricing

import (
	"errors"
	"testing"
	"time"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
)

var testTable = models.PricingTable{
	types.VehicleCar: {BaseHours: 2, BaseFee: 50, ExtraHourFee: 20},
}

func at(hour, min int) time.Time {
	return time.Date(2025, time.March, 10, hour, min, 0, 0, time.UTC)
}

func TestFee_TierBoundaries(t *testing.T) {
	calc := New()

	tests := []struct {
		name  string
		entry time.Time
		exit  time.Time
		want  float64
	}{
		{"exactly base hours", at(10, 0), at(12, 0), 50},
		{"partial hour rounds up past base", at(10, 0), at(13, 30), 90}, // ceil(3.5)=4h => 50 + 20*2
		{"under one hour bills minimum", at(10, 0), at(10, 45), 50},
		{"zero duration bills minimum", at(10, 0), at(10, 0), 50},
		{"one extra hour", at(10, 0), at(13, 0), 70},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := calc.Fee(tc.entry, tc.exit, types.VehicleCar, testTable)
			if err != nil {
				t.Fatalf("Fee: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Fee = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFee_ExitBeforeEntry(t *testing.T) {
	calc := New()

	_, err := calc.Fee(at(12, 0), at(10, 0), types.VehicleCar, testTable)
	if !errors.Is(err, types.ErrExitBeforeEntry) {
		t.Fatalf("expected ErrExitBeforeEntry, got %v", err)
	}
}

func TestFee_UnknownVehicleType(t *testing.T) {
	calc := New()

	_, err := calc.Fee(at(10, 0), at(11, 0), types.VehicleBike, testTable)
	if !errors.Is(err, types.ErrUnknownVehicleType) {
		t.Fatalf("expected ErrUnknownVehicleType, got %v", err)
	}
}

func TestFee_Deterministic(t *testing.T) {
	calc := New()

	first, err := calc.Fee(at(9, 15), at(14, 40), types.VehicleCar, testTable)
	if err != nil {
		t.Fatalf("Fee: %v", err)
	}
	for range 10 {
		got, err := calc.Fee(at(9, 15), at(14, 40), types.VehicleCar, testTable)
		if err != nil || got != first {
			t.Fatalf("Fee not deterministic: got %v (%v), want %v", got, err, first)
		}
	}
}
