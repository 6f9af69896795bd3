package models

import "time"

// BackupSnapshot is the envelope published to the backup exchange on every
// sync tick: a point-in-time copy of the authoritative state.
type BackupSnapshot struct {
	TakenAt    time.Time         `json:"taken_at"`
	Vehicles   []VehicleRecord   `json:"vehicles"`
	Clients    []PermanentClient `json:"clients"`
	Settings   Settings          `json:"settings"`
	DailyStats []DailyStats      `json:"daily_stats"`
}
