package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
)

// Daily stats are derived data: the whole table is replaced on every write,
// one jsonb payload per day.
type StatsRepo struct {
	db *pgxpool.Pool
}

func NewStatsRepo(db *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{db: db}
}

func (r *StatsRepo) ReplaceDailyStats(ctx context.Context, stats []models.DailyStats) error {
	q := TxorDB(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM daily_stats;`); err != nil {
		return fmt.Errorf("stats repo: ReplaceDailyStats (clear): %w", err)
	}

	query := `INSERT INTO daily_stats (date, payload) VALUES ($1, $2);`
	for _, day := range stats {
		payload, err := json.Marshal(day)
		if err != nil {
			return fmt.Errorf("stats repo: ReplaceDailyStats (marshal %s): %w", day.Date, err)
		}
		if _, err := q.Exec(ctx, query, day.Date, payload); err != nil {
			return fmt.Errorf("stats repo: ReplaceDailyStats (insert %s): %w", day.Date, err)
		}
	}
	return nil
}

func (r *StatsRepo) FetchDailyStats(ctx context.Context) ([]models.DailyStats, error) {
	q := TxorDB(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT payload FROM daily_stats ORDER BY date DESC;`)
	if err != nil {
		return nil, fmt.Errorf("stats repo: FetchDailyStats: %w", err)
	}
	defer rows.Close()

	var stats []models.DailyStats
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("stats repo: FetchDailyStats (scan): %w", err)
		}
		var day models.DailyStats
		if err := json.Unmarshal(payload, &day); err != nil {
			return nil, fmt.Errorf("stats repo: FetchDailyStats (unmarshal): %w", err)
		}
		stats = append(stats, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stats repo: FetchDailyStats (rows): %w", err)
	}
	return stats, nil
}
