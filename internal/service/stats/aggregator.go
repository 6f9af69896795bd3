package stats

import (
	"sort"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
)

// Rebuild recomputes the full set of daily statistics from a ledger snapshot.
// A day appears in the result when any record entered or exited on it.
// Entries determine the vehicle counts for a day; exits determine its income,
// so a vehicle entering on D1 and leaving on D2 counts toward D1 and pays
// into D2. The result is ordered newest date first.
//
// The rebuild is deterministic and idempotent: the same snapshot always
// produces identical output.
func Rebuild(snapshot []models.VehicleRecord) []models.DailyStats {
	days := make(map[string]*models.DailyStats)

	touch := func(day string) *models.DailyStats {
		if d, ok := days[day]; ok {
			return d
		}
		d := &models.DailyStats{
			Date:   day,
			Counts: make(map[types.VehicleType]int),
		}
		days[day] = d
		return d
	}

	for _, rec := range snapshot {
		entered := touch(rec.EntryDay())
		entered.Counts[rec.Type]++
		entered.TotalVehicles++
		entered.Vehicles = append(entered.Vehicles, rec)

		if rec.Exited() {
			exited := touch(rec.ExitDay())
			if rec.Fee != nil {
				exited.TotalIncome += *rec.Fee
			}
		}
	}

	result := make([]models.DailyStats, 0, len(days))
	for _, d := range days {
		// Stable per-day vehicle order regardless of snapshot order.
		sort.Slice(d.Vehicles, func(i, j int) bool {
			return d.Vehicles[i].ID.Compare(d.Vehicles[j].ID) < 0
		})
		result = append(result, *d)
	}

	// ISO day keys sort lexicographically; newest first.
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})

	return result
}
