package types

import "errors"

var (
	// Pricing
	ErrExitBeforeEntry    = errors.New("exit time is before entry time")
	ErrUnknownVehicleType = errors.New("unknown vehicle type")

	// Registry
	ErrClientNotFound = errors.New("permanent client not found")

	// Settings
	ErrSettingsNotFound = errors.New("settings not found")

	// Auth
	ErrInvalidToken = errors.New("invalid token")
	ErrStaleSession = errors.New("session invalidated by credential change")
)
