package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Daniyar8k/park-ledger-system/config"
	"github.com/Daniyar8k/park-ledger-system/internal/adapter/http/handler"
	"github.com/Daniyar8k/park-ledger-system/internal/adapter/http/middleware"
	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
	wrap "github.com/Daniyar8k/park-ledger-system/pkg/logger/wrapper"
	ws "github.com/Daniyar8k/park-ledger-system/pkg/wsHub"
)

const serverIPAddress = "%s:%s"

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	addr string
	cfg  config.Config
	log  logger.Logger
}

type handlers struct {
	vehicle   *handler.Vehicle
	client    *handler.Client
	stats     *handler.Stats
	settings  *handler.Settings
	auth      *handler.Auth
	sync      *handler.Sync
	operators *handler.Operators
	health    *handler.Health
}

type Services struct {
	Ledger   handler.VehicleService
	Clients  handler.ClientService
	Stats    handler.StatsService
	Settings handler.SettingsService
	Session  handler.SessionService
	Tokens   handler.TokenIssuer
	Sync     handler.SyncService

	TokenValidator middleware.TokenValidator
	SessionChecker middleware.SessionChecker

	Hub *ws.ConnectionHub
}

func New(cfg config.Config, svc Services, log logger.Logger) (*API, error) {
	if svc.Session == nil || svc.Tokens == nil {
		return nil, errors.New("session service is required")
	}

	routes := &handlers{
		vehicle:   handler.NewVehicle(svc.Ledger, log),
		client:    handler.NewClient(svc.Clients, log),
		stats:     handler.NewStats(svc.Stats, log),
		settings:  handler.NewSettings(svc.Settings, log),
		auth:      handler.NewAuth(svc.Session, svc.Tokens, log),
		sync:      handler.NewSync(svc.Sync, log),
		operators: handler.NewOperators(svc.Hub, log),
		health:    handler.NewHealth(cfg.ServiceName, log),
	}

	mid := middleware.NewMiddleware(svc.TokenValidator, svc.SessionChecker, log)

	api := &API{
		mux:    http.NewServeMux(),
		routes: routes,
		m:      mid,
		addr:   fmt.Sprintf(serverIPAddress, cfg.HTTP.Host, cfg.HTTP.Port),
		cfg:    cfg,
		log:    log,
	}

	api.setupRoutes()

	api.server = &http.Server{
		Addr:    api.addr,
		Handler: api.withMiddleware(),
	}

	return api, nil
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

// withMiddleware applies middlewares to the mux
func (a *API) withMiddleware() http.Handler {
	return a.m.Recover(a.m.RequestID(a.m.Metrics(a.m.Logging(a.mux))))
}
