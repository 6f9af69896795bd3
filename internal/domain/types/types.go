package types

import "fmt"

// VehicleType enumerates the vehicle categories the lot admits.
type VehicleType string

const (
	VehicleCar      VehicleType = "car"
	VehicleBike     VehicleType = "bike"
	VehicleRickshaw VehicleType = "rickshaw"
)

func (v VehicleType) String() string {
	return string(v)
}

func (v VehicleType) Valid() bool {
	switch v {
	case VehicleCar, VehicleBike, VehicleRickshaw:
		return true
	default:
		return false
	}
}

// ParseVehicleType validates a raw string coming from the API or storage.
func ParseVehicleType(s string) (VehicleType, error) {
	vt := VehicleType(s)
	if !vt.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownVehicleType, s)
	}
	return vt, nil
}

// PaymentStatus is meaningful for permanent clients only.
type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentUnpaid PaymentStatus = "unpaid"
)

func (p PaymentStatus) String() string {
	return string(p)
}

// ViewMode is a UI hint stored in settings. The engine treats it as an
// opaque value that participates in the settings drift signature.
type ViewMode string

const (
	ViewModeGrid ViewMode = "grid"
	ViewModeList ViewMode = "list"
)

func (v ViewMode) String() string {
	return string(v)
}
