package models

import "github.com/Daniyar8k/park-ledger-system/internal/domain/types"

// DailyStats is fully derived data: it is recomputed wholesale from the
// ledger on every mutation and on every load, never mutated independently.
type DailyStats struct {
	Date          string                    `json:"date"`
	Counts        map[types.VehicleType]int `json:"counts"`
	TotalVehicles int                       `json:"total_vehicles"`
	TotalIncome   float64                   `json:"total_income"`

	// Vehicles that entered on this day.
	Vehicles []VehicleRecord `json:"vehicles"`
}
