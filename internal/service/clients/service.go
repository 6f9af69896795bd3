package clients

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
	wrap "github.com/Daniyar8k/park-ledger-system/pkg/logger/wrapper"
	"github.com/Daniyar8k/park-ledger-system/pkg/metrics"
	"github.com/Daniyar8k/park-ledger-system/pkg/uuid"
)

type (
	// RemoteStore holds the authoritative client registry.
	RemoteStore interface {
		AddClient(ctx context.Context, client models.PermanentClient) error
		UpdateClient(ctx context.Context, client models.PermanentClient) error
		RemoveClient(ctx context.Context, id uuid.UUID) error
	}

	// CacheStore is the durable local mirror of the registry.
	CacheStore interface {
		SaveClients(clients []models.PermanentClient) error
		LoadClients() ([]models.PermanentClient, error)
	}
)

// Service is the permanent-client registry. Unlike the ledger it has a full
// CRUD lifecycle, but follows the same local-first write discipline: the
// local mirror commits unconditionally, remote writes are best-effort.
type Service struct {
	mu      sync.RWMutex
	clients []models.PermanentClient

	remote RemoteStore
	cache  CacheStore
	now    func() time.Time
	log    logger.Logger
}

func New(remote RemoteStore, cache CacheStore, log logger.Logger) *Service {
	return &Service{
		remote: remote,
		cache:  cache,
		now:    time.Now,
		log:    log,
	}
}

// List returns a copy of the registry.
func (s *Service) List() []models.PermanentClient {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.PermanentClient, len(s.clients))
	copy(out, s.clients)
	return out
}

// Add registers a new permanent client.
func (s *Service) Add(ctx context.Context, client models.PermanentClient) (models.PermanentClient, error) {
	ctx = wrap.WithAction(ctx, types.ActionClientCreate)

	if !client.Type.Valid() {
		return models.PermanentClient{}, fmt.Errorf("%w: %q", types.ErrUnknownVehicleType, client.Type)
	}

	id, err := uuid.New()
	if err != nil {
		return models.PermanentClient{}, wrap.Error(ctx, fmt.Errorf("could not generate client id: %w", err))
	}

	now := s.now()
	client.ID = id
	client.CreatedAt = now
	client.UpdatedAt = now
	if client.PaymentStatus == "" {
		client.PaymentStatus = types.PaymentUnpaid
	}
	if client.EntryTime.IsZero() {
		client.EntryTime = now
	}

	s.mu.Lock()
	s.clients = append(s.clients, client)
	snapshot := s.listLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)

	err = s.remote.AddClient(ctx, client)
	metrics.RecordRemoteWrite("add_client", err)
	if err != nil {
		s.log.Warn(ctx, "remote client write failed, continuing on local state", "err", err.Error())
	}

	s.log.Info(ctx, "permanent client added", "client_id", id.String(), "name", client.Name)

	return client, nil
}

// Update replaces the stored client with the same id.
func (s *Service) Update(ctx context.Context, client models.PermanentClient) (models.PermanentClient, error) {
	ctx = wrap.WithAction(ctx, types.ActionClientUpdate)

	s.mu.Lock()
	idx := s.indexLocked(client.ID)
	if idx < 0 {
		s.mu.Unlock()
		return models.PermanentClient{}, types.ErrClientNotFound
	}

	// Only the profile fields are updatable. Ledger fields and timestamps
	// carry over from the stored record.
	stored := s.clients[idx]
	client.CreatedAt = stored.CreatedAt
	client.EntryTime = stored.EntryTime
	client.ExitTime = stored.ExitTime
	client.Fee = stored.Fee
	if client.PaymentStatus == "" {
		client.PaymentStatus = stored.PaymentStatus
	}
	client.UpdatedAt = s.now()
	s.clients[idx] = client
	snapshot := s.listLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)

	err := s.remote.UpdateClient(ctx, client)
	metrics.RecordRemoteWrite("update_client", err)
	if err != nil {
		s.log.Warn(ctx, "remote client update failed, continuing on local state", "err", err.Error())
	}

	s.log.Info(ctx, "permanent client updated", "client_id", client.ID.String())

	return client, nil
}

// Remove deletes the client with the given id from the registry.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	ctx = wrap.WithAction(ctx, types.ActionClientRemove)

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return types.ErrClientNotFound
	}

	s.clients = append(s.clients[:idx], s.clients[idx+1:]...)
	snapshot := s.listLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)

	err := s.remote.RemoveClient(ctx, id)
	metrics.RecordRemoteWrite("remove_client", err)
	if err != nil {
		s.log.Warn(ctx, "remote client removal failed, continuing on local state", "err", err.Error())
	}

	s.log.Info(ctx, "permanent client removed", "client_id", id.String())

	return nil
}

// Replace swaps the whole registry for the authoritative snapshot.
func (s *Service) Replace(clients []models.PermanentClient) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients = make([]models.PermanentClient, len(clients))
	copy(s.clients, clients)
}

// Load restores the registry from the local cache on startup.
func (s *Service) Load(ctx context.Context) error {
	clients, err := s.cache.LoadClients()
	if err != nil {
		return fmt.Errorf("clients: load from cache: %w", err)
	}

	s.Replace(clients)

	s.log.Info(ctx, "client registry loaded from cache", "clients", len(clients))

	return nil
}

func (s *Service) indexLocked(id uuid.UUID) int {
	for i := range s.clients {
		if s.clients[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) listLocked() []models.PermanentClient {
	out := make([]models.PermanentClient, len(s.clients))
	copy(out, s.clients)
	return out
}

func (s *Service) persist(ctx context.Context, snapshot []models.PermanentClient) {
	if err := s.cache.SaveClients(snapshot); err != nil {
		s.log.Error(ctx, "failed to persist client registry to cache", err)
	}
}
