package recon

import (
	"testing"
	"time"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	"github.com/Daniyar8k/park-ledger-system/pkg/uuid"
)

func mustID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.New()
	if err != nil {
		t.Fatalf("uuid: %v", err)
	}
	return id
}

func TestVehiclesSignatureOrderIndependent(t *testing.T) {
	a := models.VehicleRecord{ID: mustID(t), Type: types.VehicleCar}
	b := models.VehicleRecord{ID: mustID(t), Type: types.VehicleBike}

	if VehiclesSignature([]models.VehicleRecord{a, b}) != VehiclesSignature([]models.VehicleRecord{b, a}) {
		t.Error("storage order must not affect the signature")
	}
}

func TestVehiclesSignatureIgnoresFeeAndTimes(t *testing.T) {
	rec := models.VehicleRecord{ID: mustID(t), Type: types.VehicleCar, EntryTime: time.Now()}
	before := VehiclesSignature([]models.VehicleRecord{rec})

	fee := 50.0
	rec.Fee = &fee
	rec.EntryTime = rec.EntryTime.Add(time.Hour)
	if VehiclesSignature([]models.VehicleRecord{rec}) != before {
		t.Error("fee and timestamp changes alone must not count as drift")
	}

	exit := time.Now()
	rec.ExitTime = &exit
	if VehiclesSignature([]models.VehicleRecord{rec}) == before {
		t.Error("flipping the exited flag must change the signature")
	}
}

func TestClientsSignature(t *testing.T) {
	a := models.PermanentClient{ID: mustID(t), Name: "a"}
	b := models.PermanentClient{ID: mustID(t), Name: "b"}

	if ClientsSignature([]models.PermanentClient{a, b}) != ClientsSignature([]models.PermanentClient{b, a}) {
		t.Error("storage order must not affect the signature")
	}

	renamed := a
	renamed.Name = "renamed"
	if ClientsSignature([]models.PermanentClient{a}) != ClientsSignature([]models.PermanentClient{renamed}) {
		t.Error("only the id set participates in the client signature")
	}

	if ClientsSignature([]models.PermanentClient{a}) == ClientsSignature([]models.PermanentClient{a, b}) {
		t.Error("adding a client must change the signature")
	}
}

func TestSettingsSignature(t *testing.T) {
	base := models.Settings{
		SiteName: "Lot",
		ViewMode: types.ViewModeGrid,
		Credentials: models.Credentials{
			Username:     "admin",
			PasswordHash: "hash1",
		},
	}

	rotated := base
	rotated.Credentials.PasswordHash = "hash2"
	if SettingsSignature(base) == SettingsSignature(rotated) {
		t.Error("password hash rotation must change the signature")
	}

	repriced := base
	repriced.Pricing = models.PricingTable{types.VehicleCar: {BaseHours: 1, BaseFee: 99}}
	if SettingsSignature(base) != SettingsSignature(repriced) {
		t.Error("pricing changes must not participate in the settings signature")
	}
}
