package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
)

// One file per namespace. The cache mirrors whatever the services last
// committed; it is never the source of truth, so a corrupt file degrades
// to an empty namespace instead of failing startup.
const (
	vehiclesFile   = "vehicles.json"
	clientsFile    = "permanent_clients.json"
	settingsFile   = "settings.json"
	dailyStatsFile = "daily_stats.json"
	sessionFile    = "session.json"
)

// Store is a JSON file cache. Writes go through a temp file and rename, so
// a crash mid-write leaves the previous snapshot intact.
type Store struct {
	dir string
	mu  sync.Mutex
	log logger.Logger
}

func New(dir string, log logger.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create dir %q: %w", dir, err)
	}
	return &Store{dir: dir, log: log}, nil
}

func (s *Store) SaveVehicles(records []models.VehicleRecord) error {
	if records == nil {
		records = []models.VehicleRecord{}
	}
	return s.write(vehiclesFile, records)
}

// LoadVehicles decodes the vehicle mirror record by record: a single
// malformed entry is skipped and logged, the rest of the file survives.
func (s *Store) LoadVehicles() ([]models.VehicleRecord, error) {
	raw, ok := s.readRaw(vehiclesFile)
	if !ok {
		return nil, nil
	}

	records := make([]models.VehicleRecord, 0, len(raw))
	for i, item := range raw {
		var rec models.VehicleRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			s.log.Warn(context.Background(), "skipping malformed cached vehicle record",
				"file", vehiclesFile, "index", i, "err", err.Error())
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *Store) SaveClients(clients []models.PermanentClient) error {
	if clients == nil {
		clients = []models.PermanentClient{}
	}
	return s.write(clientsFile, clients)
}

func (s *Store) LoadClients() ([]models.PermanentClient, error) {
	raw, ok := s.readRaw(clientsFile)
	if !ok {
		return nil, nil
	}

	clients := make([]models.PermanentClient, 0, len(raw))
	for i, item := range raw {
		var c models.PermanentClient
		if err := json.Unmarshal(item, &c); err != nil {
			s.log.Warn(context.Background(), "skipping malformed cached client record",
				"file", clientsFile, "index", i, "err", err.Error())
			continue
		}
		clients = append(clients, c)
	}
	return clients, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	return s.write(settingsFile, settings)
}

// LoadSettings reports false when the mirror is absent or unreadable, in
// which case the caller falls back to defaults.
func (s *Store) LoadSettings() (models.Settings, bool, error) {
	var settings models.Settings
	ok := s.readInto(settingsFile, &settings)
	return settings, ok, nil
}

func (s *Store) SaveDailyStats(stats []models.DailyStats) error {
	if stats == nil {
		stats = []models.DailyStats{}
	}
	return s.write(dailyStatsFile, stats)
}

func (s *Store) LoadDailyStats() ([]models.DailyStats, error) {
	var stats []models.DailyStats
	if !s.readInto(dailyStatsFile, &stats) {
		return nil, nil
	}
	return stats, nil
}

func (s *Store) SaveSession(state models.SessionState) error {
	return s.write(sessionFile, state)
}

func (s *Store) LoadSession() (models.SessionState, error) {
	var state models.SessionState
	s.readInto(sessionFile, &state)
	return state, nil
}

func (s *Store) write(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("cache: marshal %s: %w", name, err)
	}

	target := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("cache: create temp for %s: %w", name, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: close temp for %s: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: rename %s: %w", name, err)
	}
	return nil
}

// readRaw loads a JSON array file as raw elements. Returns false when the
// file is absent or unreadable as an array.
func (s *Store) readRaw(name string) ([]json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn(context.Background(), "cache file unreadable, starting empty",
				"file", name, "err", err.Error())
		}
		return nil, false
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.log.Warn(context.Background(), "cache file malformed, starting empty",
			"file", name, "err", err.Error())
		return nil, false
	}
	return raw, true
}

func (s *Store) readInto(name string, v any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn(context.Background(), "cache file unreadable, starting empty",
				"file", name, "err", err.Error())
		}
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		s.log.Warn(context.Background(), "cache file malformed, starting empty",
			"file", name, "err", err.Error())
		return false
	}
	return true
}
