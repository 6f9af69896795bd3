package pricing

import (
	"math"
	"time"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
)

// Calculator computes parking fees from the tariff table. Implementations
// must be pure: no side effects, safe to call concurrently.
type Calculator interface {
	Fee(entry, exit time.Time, vt types.VehicleType, table models.PricingTable) (float64, error)
}

type CalculatorImpl struct{}

func New() *CalculatorImpl {
	return &CalculatorImpl{}
}

// Fee applies the tiered schedule: any stay is billed for at least one hour,
// partial hours round up, and hours beyond the tariff's base window are billed
// at the extra-hour rate.
func (c *CalculatorImpl) Fee(entry, exit time.Time, vt types.VehicleType, table models.PricingTable) (float64, error) {
	if exit.Before(entry) {
		return 0, types.ErrExitBeforeEntry
	}

	tariff, ok := table[vt]
	if !ok {
		return 0, types.ErrUnknownVehicleType
	}

	elapsedHours := int(math.Ceil(exit.Sub(entry).Hours()))
	if elapsedHours < 1 {
		elapsedHours = 1
	}

	if elapsedHours <= tariff.BaseHours {
		return tariff.BaseFee, nil
	}

	return tariff.BaseFee + tariff.ExtraHourFee*float64(elapsedHours-tariff.BaseHours), nil
}
