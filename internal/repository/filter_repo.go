package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EmilioNacato/DashboardProcesador/internal/model"
)

// FilterRepository persists each dashboard client's last-used date-range
// filter. One row per client key, overwritten on save.
type FilterRepository struct {
	pool *pgxpool.Pool
}

func NewFilterRepository(pool *pgxpool.Pool) *FilterRepository {
	return &FilterRepository{pool: pool}
}

func (r *FilterRepository) Get(ctx context.Context, clientID string) (*model.SavedFilter, error) {
	f := &model.SavedFilter{ClientID: clientID}
	err := r.pool.QueryRow(ctx,
		`SELECT date_from, time_from, date_to, time_to, updated_at
		FROM saved_filters WHERE client_id = $1`,
		clientID,
	).Scan(&f.DateFrom, &f.TimeFrom, &f.DateTo, &f.TimeTo, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *FilterRepository) Save(ctx context.Context, f *model.SavedFilter) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO saved_filters (client_id, date_from, time_from, date_to, time_to, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (client_id) DO UPDATE SET
			date_from = EXCLUDED.date_from,
			time_from = EXCLUDED.time_from,
			date_to = EXCLUDED.date_to,
			time_to = EXCLUDED.time_to,
			updated_at = now()
		RETURNING updated_at`,
		f.ClientID, f.DateFrom, f.TimeFrom, f.DateTo, f.TimeTo,
	).Scan(&f.UpdatedAt)
}
