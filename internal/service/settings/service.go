package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
	wrap "github.com/Daniyar8k/park-ledger-system/pkg/logger/wrapper"
	"github.com/Daniyar8k/park-ledger-system/pkg/metrics"
	"github.com/Daniyar8k/park-ledger-system/pkg/passhash"
	"github.com/Daniyar8k/park-ledger-system/pkg/trm"
)

type (
	// RemoteStore holds the authoritative settings row.
	RemoteStore interface {
		SaveSettings(ctx context.Context, settings models.Settings) error
	}

	// CacheStore mirrors settings locally. LoadSettings reports false when
	// the mirror has never been written.
	CacheStore interface {
		SaveSettings(settings models.Settings) error
		LoadSettings() (models.Settings, bool, error)
	}
)

// Service holds the in-memory settings snapshot. It feeds the pricing table
// to fee computation and the operator credentials to the session guard.
type Service struct {
	mu      sync.RWMutex
	current models.Settings

	remote RemoteStore
	cache  CacheStore
	trm    trm.TxManager
	log    logger.Logger
}

func New(remote RemoteStore, cache CacheStore, txManager trm.TxManager, log logger.Logger) *Service {
	return &Service{
		current: Defaults(),
		remote:  remote,
		cache:   cache,
		trm:     txManager,
		log:     log,
	}
}

// Defaults is the bootstrap configuration used before any operator has
// saved settings. The default password is "admin" and must be rotated.
func Defaults() models.Settings {
	hash, err := passhash.HashPassword("admin")
	if err != nil {
		panic(fmt.Sprintf("settings: hashing default password: %v", err))
	}

	return models.Settings{
		SiteName: "Parking Lot",
		ViewMode: types.ViewModeGrid,
		Credentials: models.Credentials{
			Username:     "admin",
			PasswordHash: hash,
		},
		Pricing: models.PricingTable{
			types.VehicleCar:      {BaseHours: 2, BaseFee: 50, ExtraHourFee: 20},
			types.VehicleBike:     {BaseHours: 2, BaseFee: 20, ExtraHourFee: 10},
			types.VehicleRickshaw: {BaseHours: 2, BaseFee: 30, ExtraHourFee: 15},
		},
	}
}

// Get returns the current settings snapshot.
func (s *Service) Get() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// PricingTable returns the active fee schedule.
func (s *Service) PricingTable() models.PricingTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Pricing
}

// Credentials returns the active operator credentials.
func (s *Service) Credentials() models.Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Credentials
}

// Update applies the given settings. A non-empty newPassword replaces the
// stored hash; an empty one keeps the current hash regardless of what the
// caller put in Credentials. Commits locally first, remote is best-effort.
func (s *Service) Update(ctx context.Context, updated models.Settings, newPassword string) (models.Settings, error) {
	ctx = wrap.WithAction(ctx, types.ActionSettingsSave)

	for vt, tariff := range updated.Pricing {
		if !vt.Valid() {
			return models.Settings{}, fmt.Errorf("%w: %q", types.ErrUnknownVehicleType, vt)
		}
		if tariff.BaseHours < 0 || tariff.BaseFee < 0 || tariff.ExtraHourFee < 0 {
			return models.Settings{}, fmt.Errorf("settings: negative tariff for %q", vt)
		}
	}

	s.mu.Lock()
	if newPassword != "" {
		hash, err := passhash.HashPassword(newPassword)
		if err != nil {
			s.mu.Unlock()
			return models.Settings{}, wrap.Error(ctx, fmt.Errorf("could not hash password: %w", err))
		}
		updated.Credentials.PasswordHash = hash
	} else {
		updated.Credentials.PasswordHash = s.current.Credentials.PasswordHash
	}

	s.current = updated
	s.mu.Unlock()

	if err := s.cache.SaveSettings(updated); err != nil {
		s.log.Error(ctx, "failed to persist settings to cache", err)
	}

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		return s.remote.SaveSettings(ctx, updated)
	})
	metrics.RecordRemoteWrite("save_settings", err)
	if err != nil {
		s.log.Warn(ctx, "remote settings write failed, continuing on local state", "err", err.Error())
	}

	s.log.Info(ctx, "settings updated", "site_name", updated.SiteName, "view_mode", updated.ViewMode.String())

	return updated, nil
}

// Replace swaps the snapshot for the authoritative one during a reload.
func (s *Service) Replace(settings models.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = settings
}

// Load restores settings from the local cache, falling back to defaults
// when the mirror is empty.
func (s *Service) Load(ctx context.Context) error {
	settings, ok, err := s.cache.LoadSettings()
	if err != nil {
		return fmt.Errorf("settings: load from cache: %w", err)
	}
	if !ok {
		s.log.Info(ctx, "no cached settings found, using defaults")
		settings = Defaults()
	}

	s.Replace(settings)

	return nil
}
