package types

// Log actions used across the service for structured log context.
const (
	ActionVehicleEntry  = "vehicle_entry"
	ActionVehicleExit   = "vehicle_exit"
	ActionClientCreate  = "client_create"
	ActionClientUpdate  = "client_update"
	ActionClientRemove  = "client_remove"
	ActionSettingsSave  = "settings_save"
	ActionStatsRebuild  = "stats_rebuild"
	ActionLogin         = "login"
	ActionLogout        = "logout"
	ActionRestoreTick   = "restore_tick"
	ActionBackupTick    = "backup_tick"
	ActionStateReload   = "state_reload"
	ActionMidnightCheck = "midnight_check"
)
