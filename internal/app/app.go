package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Daniyar8k/park-ledger-system/config"
	"github.com/Daniyar8k/park-ledger-system/internal/adapter/cache"
	"github.com/Daniyar8k/park-ledger-system/internal/adapter/http/server"
	repo "github.com/Daniyar8k/park-ledger-system/internal/adapter/postgres"
	rabbitAdapter "github.com/Daniyar8k/park-ledger-system/internal/adapter/rabbit"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	"github.com/Daniyar8k/park-ledger-system/internal/service/clients"
	"github.com/Daniyar8k/park-ledger-system/internal/service/ledger"
	"github.com/Daniyar8k/park-ledger-system/internal/service/pricing"
	"github.com/Daniyar8k/park-ledger-system/internal/service/recon"
	"github.com/Daniyar8k/park-ledger-system/internal/service/session"
	"github.com/Daniyar8k/park-ledger-system/internal/service/settings"
	"github.com/Daniyar8k/park-ledger-system/internal/service/stats"
	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
	wrap "github.com/Daniyar8k/park-ledger-system/pkg/logger/wrapper"
	"github.com/Daniyar8k/park-ledger-system/pkg/postgres"
	"github.com/Daniyar8k/park-ledger-system/pkg/rabbit"
	"github.com/Daniyar8k/park-ledger-system/pkg/trm"
	ws "github.com/Daniyar8k/park-ledger-system/pkg/wsHub"
)

// App owns every component of the service and wires the reconciliation
// engine back into the in-memory state through Reload.
type App struct {
	postgresDB *postgres.PostgreDB
	rabbitMQ   *rabbit.RabbitMQ
	httpServer *server.API

	ledger   *ledger.Service
	clients  *clients.Service
	settings *settings.Service
	stats    *stats.Service
	guard    *session.Guard
	engine   *recon.Engine
	hub      *ws.ConnectionHub

	settingsRepo *repo.SettingsRepo

	cancel context.CancelFunc
	cfg    config.Config
	log    logger.Logger
}

// remoteSource aggregates the per-entity repositories into the snapshot
// source the reconciliation engine reads from.
type remoteSource struct {
	*repo.VehicleRepo
	*repo.ClientRepo
	*repo.SettingsRepo
	*repo.StatsRepo
}

// localState exposes current in-memory state for drift comparison.
type localState struct {
	ledger   *ledger.Service
	clients  *clients.Service
	settings *settings.Service
}

func (l localState) Vehicles() []models.VehicleRecord  { return l.ledger.Snapshot() }
func (l localState) Clients() []models.PermanentClient { return l.clients.List() }
func (l localState) Settings() models.Settings         { return l.settings.Get() }

func NewApplication(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	postgresDB, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		log.Error(ctx, "failed to setup database", err)
		return nil, err
	}

	rabbitMQ, err := rabbit.New(ctx, cfg.RabbitMQ.GetDSN(), log)
	if err != nil {
		log.Error(ctx, "failed to setup rabbitmq", err)
		return nil, err
	}

	cacheStore, err := cache.New(cfg.Cache.Dir, log)
	if err != nil {
		log.Error(ctx, "failed to setup local cache", err)
		return nil, err
	}

	vehicleRepo := repo.NewVehicleRepo(postgresDB.Pool)
	clientRepo := repo.NewClientRepo(postgresDB.Pool)
	settingsRepo := repo.NewSettingsRepo(postgresDB.Pool)
	statsRepo := repo.NewStatsRepo(postgresDB.Pool)
	txManager := trm.New(postgresDB.Pool)

	settingsService := settings.New(settingsRepo, cacheStore, txManager, log)
	if err := settingsService.Load(ctx); err != nil {
		return nil, err
	}

	statsService := stats.New(cacheStore, statsRepo, log)
	ledgerService := ledger.New(
		vehicleRepo,
		cacheStore,
		pricing.New(),
		settingsService,
		statsService,
		cfg.Recon.ExitRetryDelay,
		log,
	)
	if err := ledgerService.Load(ctx); err != nil {
		return nil, err
	}
	statsService.RebuildFrom(ctx, ledgerService.Snapshot())

	clientsService := clients.New(clientRepo, cacheStore, log)
	if err := clientsService.Load(ctx); err != nil {
		return nil, err
	}

	guard := session.NewGuard(cacheStore, settingsService, log)
	guard.Revalidate(ctx)

	tokens := session.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	backupProducer, err := rabbitAdapter.NewBackupProducer(rabbitMQ, cfg.RabbitMQ.BackupExchange, log)
	if err != nil {
		log.Error(ctx, "failed to setup backup producer", err)
		return nil, err
	}

	hub := ws.NewConnHub(log)

	app := &App{
		postgresDB:   postgresDB,
		rabbitMQ:     rabbitMQ,
		ledger:       ledgerService,
		clients:      clientsService,
		settings:     settingsService,
		stats:        statsService,
		guard:        guard,
		hub:          hub,
		settingsRepo: settingsRepo,
		cfg:          cfg,
		log:          log,
	}

	app.engine = recon.NewEngine(
		recon.Config{
			AutoRestore:     cfg.Recon.AutoRestore,
			AutoSync:        cfg.Recon.AutoSync,
			RestoreInterval: cfg.Recon.RestoreInterval,
			SyncInterval:    cfg.Recon.SyncInterval,
		},
		remoteSource{vehicleRepo, clientRepo, settingsRepo, statsRepo},
		localState{ledgerService, clientsService, settingsService},
		cacheStore,
		app,
		backupProducer,
		recon.NewMetricsObserver(log),
		log,
	)

	httpServer, err := server.New(cfg, server.Services{
		Ledger:         ledgerService,
		Clients:        clientsService,
		Stats:          statsService,
		Settings:       settingsService,
		Session:        guard,
		Tokens:         tokens,
		Sync:           app.engine,
		TokenValidator: tokens,
		SessionChecker: guard,
		Hub:            hub,
	}, log)
	if err != nil {
		log.Error(ctx, "failed to setup http server", err)
		return nil, err
	}
	app.httpServer = httpServer

	return app, nil
}

// Reload swaps the whole in-memory state for the authoritative snapshot.
// Called by the reconciliation engine when a restore tick detects drift.
func (a *App) Reload(ctx context.Context, snapshot models.BackupSnapshot) {
	ctx = wrap.WithAction(ctx, types.ActionStateReload)

	a.ledger.Replace(snapshot.Vehicles)
	a.clients.Replace(snapshot.Clients)
	a.settings.Replace(snapshot.Settings)
	a.stats.RebuildFrom(ctx, a.ledger.Snapshot())
	a.guard.Revalidate(ctx)

	a.hub.Broadcast(map[string]any{
		"type":     "state_reloaded",
		"taken_at": snapshot.TakenAt,
	})

	a.log.Info(ctx, "state reloaded from authoritative store",
		"vehicles", len(snapshot.Vehicles),
		"clients", len(snapshot.Clients),
	)
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	// Settings may never have been written remotely; seed them so restore
	// ticks have a row to read. Best-effort.
	if err := a.settingsRepo.SaveSettings(ctx, a.settings.Get()); err != nil {
		a.log.Warn(ctx, "failed to seed remote settings", "err", err.Error())
	}

	go a.engine.Run(runCtx)
	go a.stats.Watch(runCtx, a.ledger)

	a.httpServer.Run(ctx, errCh)
	defer func() {
		a.close(ctx)
		a.log.Info(ctx, "park ledger service closed")
	}()

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	a.log.Info(ctx, "park ledger service started")

	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		a.log.Info(ctx, "shutting down application", "signal", sig.String())
		return nil
	}
}

func (a *App) close(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}

	if a.httpServer != nil {
		if err := a.httpServer.Stop(ctx); err != nil {
			a.log.Warn(ctx, "failed to gracefully close http server", "error", err.Error())
		}
	}

	if a.hub != nil {
		a.hub.Close()
	}

	if a.rabbitMQ != nil {
		if err := a.rabbitMQ.Close(ctx); err != nil {
			a.log.Warn(ctx, "failed to gracefully close rabbitmq", "error", err.Error())
		}
	}

	if a.postgresDB != nil && a.postgresDB.Pool != nil {
		a.postgresDB.Pool.Close()
	}
}
