package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	"github.com/Daniyar8k/park-ledger-system/pkg/postgres"
	"github.com/Daniyar8k/park-ledger-system/pkg/uuid"
)

type ClientRepo struct {
	db *pgxpool.Pool
}

func NewClientRepo(db *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{db: db}
}

func (r *ClientRepo) AddClient(ctx context.Context, client models.PermanentClient) error {
	q := TxorDB(ctx, r.db)

	query := `INSERT INTO permanent_clients (id, name, type, entry_time, exit_time, fee, payment_status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`

	_, err := q.Exec(ctx, query,
		client.ID, client.Name, client.Type.String(), client.EntryTime, client.ExitTime,
		client.Fee, client.PaymentStatus.String(), client.CreatedAt, client.UpdatedAt)
	if err != nil {
		// A replayed local-first write may hit an id that already landed.
		if postgres.IsUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("client repo: AddClient: %w", err)
	}
	return nil
}

func (r *ClientRepo) UpdateClient(ctx context.Context, client models.PermanentClient) error {
	q := TxorDB(ctx, r.db)

	query := `UPDATE permanent_clients
              SET name = $2, type = $3, entry_time = $4, exit_time = $5, fee = $6,
                  payment_status = $7, updated_at = $8
              WHERE id = $1;`

	tag, err := q.Exec(ctx, query,
		client.ID, client.Name, client.Type.String(), client.EntryTime, client.ExitTime,
		client.Fee, client.PaymentStatus.String(), client.UpdatedAt)
	if err != nil {
		return fmt.Errorf("client repo: UpdateClient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrClientNotFound
	}
	return nil
}

func (r *ClientRepo) RemoveClient(ctx context.Context, id uuid.UUID) error {
	q := TxorDB(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM permanent_clients WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("client repo: RemoveClient: %w", err)
	}
	return nil
}

func (r *ClientRepo) FetchClients(ctx context.Context) ([]models.PermanentClient, error) {
	q := TxorDB(ctx, r.db)

	query := `SELECT id, name, type, entry_time, exit_time, fee, payment_status, created_at, updated_at
              FROM permanent_clients
              ORDER BY id;`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("client repo: FetchClients: %w", err)
	}
	defer rows.Close()

	var clients []models.PermanentClient
	for rows.Next() {
		var (
			c      models.PermanentClient
			vt, ps string
		)
		if err := rows.Scan(&c.ID, &c.Name, &vt, &c.EntryTime, &c.ExitTime, &c.Fee, &ps, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("client repo: FetchClients (scan): %w", err)
		}
		c.Type = types.VehicleType(vt)
		c.PaymentStatus = types.PaymentStatus(ps)
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("client repo: FetchClients (rows): %w", err)
	}
	return clients, nil
}
