package ledger

import (
	"context"
	"time"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
)

type (
	// RemoteStore is the authoritative store. Writes against it are
	// best-effort: the ledger commits locally first.
	RemoteStore interface {
		AddVehicle(ctx context.Context, rec models.VehicleRecord) error
		ExitVehicle(ctx context.Context, rec models.VehicleRecord) error
	}

	// CacheStore is the durable local mirror of the ledger.
	CacheStore interface {
		SaveVehicles(records []models.VehicleRecord) error
		LoadVehicles() ([]models.VehicleRecord, error)
	}

	// TariffSource exposes the current pricing table for fee computation.
	TariffSource interface {
		PricingTable() models.PricingTable
	}

	// Rebuilder is notified with a full ledger snapshot after every mutation.
	Rebuilder interface {
		RebuildFrom(ctx context.Context, snapshot []models.VehicleRecord) []models.DailyStats
	}

	// Calculator computes the parking fee on exit.
	Calculator interface {
		Fee(entry, exit time.Time, vt types.VehicleType, table models.PricingTable) (float64, error)
	}
)
