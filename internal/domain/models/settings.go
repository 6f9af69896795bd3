package models

import "github.com/Daniyar8k/park-ledger-system/internal/domain/types"

// Tariff is the fee schedule for a single vehicle type.
// All values are non-negative.
type Tariff struct {
	BaseHours    int     `json:"base_hours"`
	BaseFee      float64 `json:"base_fee"`
	ExtraHourFee float64 `json:"extra_hour_fee"`
}

// PricingTable maps vehicle types to their tariffs. Mutated only through a
// settings update; read-only during fee computation.
type PricingTable map[types.VehicleType]Tariff

// Credentials are the authoritative operator credentials. The password is
// stored as a bcrypt hash, never plaintext.
type Credentials struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

// Settings is the remote-authoritative configuration snapshot.
type Settings struct {
	SiteName    string         `json:"site_name"`
	ViewMode    types.ViewMode `json:"view_mode"`
	Credentials Credentials    `json:"credentials"`
	Pricing     PricingTable   `json:"pricing"`
}
