package server

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Daniyar8k/park-ledger-system/docs"
)

// setupRoutes - setups http routes
func (a *API) setupRoutes() {
	// System health
	a.mux.HandleFunc("/health", a.routes.health.HealthCheck)

	// Auth
	a.mux.HandleFunc("POST /auth/login", a.routes.auth.Login)
	a.mux.Handle("POST /auth/logout", a.m.RequireSession(a.routes.auth.Logout))

	// Vehicle ledger
	a.mux.Handle("POST /vehicles", a.m.RequireSession(a.routes.vehicle.Enter))                  // Admit a vehicle
	a.mux.Handle("POST /vehicles/{vehicle_id}/exit", a.m.RequireSession(a.routes.vehicle.Exit)) // Record an exit
	a.mux.Handle("GET /vehicles", a.m.RequireSession(a.routes.vehicle.List))                    // Full ledger

	// Permanent clients
	a.mux.Handle("GET /clients", a.m.RequireSession(a.routes.client.List))
	a.mux.Handle("POST /clients", a.m.RequireSession(a.routes.client.Create))
	a.mux.Handle("PUT /clients/{client_id}", a.m.RequireSession(a.routes.client.Update))
	a.mux.Handle("DELETE /clients/{client_id}", a.m.RequireSession(a.routes.client.Delete))

	// Derived data
	a.mux.Handle("GET /stats/daily", a.m.RequireSession(a.routes.stats.Daily))

	// Settings
	a.mux.Handle("GET /settings", a.m.RequireSession(a.routes.settings.Get))
	a.mux.Handle("PUT /settings", a.m.RequireSession(a.routes.settings.Update))

	// Reconciliation, manual single-shot
	a.mux.Handle("POST /sync/restore", a.m.RequireSession(a.routes.sync.Restore))
	a.mux.Handle("POST /sync/backup", a.m.RequireSession(a.routes.sync.Backup))

	// Operator event stream
	a.mux.HandleFunc("GET /ws/operators", a.routes.operators.Handle)

	a.setupSwaggerRoutes()
	a.setupMetricsRoute()
}

// setupSwaggerRoutes configures the Swagger UI endpoint
func (a *API) setupSwaggerRoutes() {
	a.mux.HandleFunc("/swagger/", httpSwagger.Handler())
}

// setupMetricsRoute configures the Prometheus metrics endpoint
func (a *API) setupMetricsRoute() {
	a.mux.Handle("/metrics", promhttp.Handler())
}
