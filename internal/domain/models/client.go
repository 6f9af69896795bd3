package models

import (
	"time"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	"github.com/Daniyar8k/park-ledger-system/pkg/uuid"
)

// PermanentClient lives in its own registry with a full CRUD lifecycle,
// independent of the daily ledger.
type PermanentClient struct {
	ID            uuid.UUID           `json:"id"`
	Name          string              `json:"name"`
	Type          types.VehicleType   `json:"type"`
	EntryTime     time.Time           `json:"entry_time"`
	ExitTime      *time.Time          `json:"exit_time,omitempty"`
	Fee           *float64            `json:"fee,omitempty"`
	PaymentStatus types.PaymentStatus `json:"payment_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
