package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
)

type VehicleRepo struct {
	db *pgxpool.Pool
}

func NewVehicleRepo(db *pgxpool.Pool) *VehicleRepo {
	return &VehicleRepo{db: db}
}

func (r *VehicleRepo) AddVehicle(ctx context.Context, rec models.VehicleRecord) error {
	q := TxorDB(ctx, r.db)

	query := `INSERT INTO vehicles (id, type, entry_time, exit_time, fee, is_permanent, payment_status)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              ON CONFLICT (id) DO NOTHING;`

	_, err := q.Exec(ctx, query,
		rec.ID, rec.Type.String(), rec.EntryTime, rec.ExitTime, rec.Fee, rec.IsPermanent, rec.PaymentStatus.String())
	if err != nil {
		return fmt.Errorf("vehicle repo: AddVehicle: %w", err)
	}
	return nil
}

func (r *VehicleRepo) ExitVehicle(ctx context.Context, rec models.VehicleRecord) error {
	q := TxorDB(ctx, r.db)

	query := `UPDATE vehicles
              SET exit_time = $2, fee = $3, payment_status = $4
              WHERE id = $1;`

	tag, err := q.Exec(ctx, query, rec.ID, rec.ExitTime, rec.Fee, rec.PaymentStatus.String())
	if err != nil {
		return fmt.Errorf("vehicle repo: ExitVehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// The remote missed the entry; repair it with the full record.
		if err := r.AddVehicle(ctx, rec); err != nil {
			return fmt.Errorf("vehicle repo: ExitVehicle (repair): %w", err)
		}
	}
	return nil
}

func (r *VehicleRepo) FetchVehicles(ctx context.Context) ([]models.VehicleRecord, error) {
	q := TxorDB(ctx, r.db)

	query := `SELECT id, type, entry_time, exit_time, fee, is_permanent, payment_status
              FROM vehicles
              ORDER BY id;`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vehicle repo: FetchVehicles: %w", err)
	}
	defer rows.Close()

	var records []models.VehicleRecord
	for rows.Next() {
		var (
			rec    models.VehicleRecord
			vt, ps string
		)
		if err := rows.Scan(&rec.ID, &vt, &rec.EntryTime, &rec.ExitTime, &rec.Fee, &rec.IsPermanent, &ps); err != nil {
			return nil, fmt.Errorf("vehicle repo: FetchVehicles (scan): %w", err)
		}
		rec.Type = types.VehicleType(vt)
		rec.PaymentStatus = types.PaymentStatus(ps)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("vehicle repo: FetchVehicles (rows): %w", err)
	}
	return records, nil
}
