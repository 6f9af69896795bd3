package types

import (
	"errors"
	"testing"
)

func TestParseVehicleType(t *testing.T) {
	tests := []struct {
		in      string
		want    VehicleType
		wantErr bool
	}{
		{"car", VehicleCar, false},
		{"bike", VehicleBike, false},
		{"rickshaw", VehicleRickshaw, false},
		{"truck", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		got, err := ParseVehicleType(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrUnknownVehicleType) {
				t.Errorf("ParseVehicleType(%q) err = %v, want ErrUnknownVehicleType", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseVehicleType(%q) = %q, %v, want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestStringRoundTrips(t *testing.T) {
	if got := VehicleCar.String(); got != "car" {
		t.Errorf("VehicleCar.String() = %q", got)
	}
	if got := PaymentUnpaid.String(); got != "unpaid" {
		t.Errorf("PaymentUnpaid.String() = %q", got)
	}
	if got := ViewModeGrid.String(); got != "grid" {
		t.Errorf("ViewModeGrid.String() = %q", got)
	}
	if got := ViewModeList.String(); got != "list" {
		t.Errorf("ViewModeList.String() = %q", got)
	}
}
