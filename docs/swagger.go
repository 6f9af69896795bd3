package docs

// @title           Park Ledger API
// @version         1.0
// @description     Parking lot ledger service: vehicle entries and exits, tiered fee calculation, permanent client registry, daily statistics and state reconciliation against the authoritative store.

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
