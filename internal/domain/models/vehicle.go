package models

import (
	"time"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	"github.com/Daniyar8k/park-ledger-system/pkg/uuid"
)

// VehicleRecord is one row of the parking ledger. A record is created on
// entry and mutated exactly once on exit; exited records are immutable.
// Fee is set if and only if ExitTime is set.
type VehicleRecord struct {
	ID          uuid.UUID         `json:"id"`
	Type        types.VehicleType `json:"type"`
	EntryTime   time.Time         `json:"entry_time"`
	ExitTime    *time.Time        `json:"exit_time,omitempty"`
	Fee         *float64          `json:"fee,omitempty"`
	IsPermanent bool              `json:"is_permanent"`

	// Meaningful for permanent clients only.
	PaymentStatus types.PaymentStatus `json:"payment_status,omitempty"`
}

// Exited reports whether the record reached its terminal state.
func (v VehicleRecord) Exited() bool {
	return v.ExitTime != nil
}

// EntryDay returns the calendar-day key of the entry timestamp.
func (v VehicleRecord) EntryDay() string {
	return DayKey(v.EntryTime)
}

// ExitDay returns the calendar-day key of the exit timestamp,
// or "" while the vehicle is still inside.
func (v VehicleRecord) ExitDay() string {
	if v.ExitTime == nil {
		return ""
	}
	return DayKey(*v.ExitTime)
}

// DayKey formats a timestamp as the calendar-day key used by daily stats.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
