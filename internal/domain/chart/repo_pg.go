package chart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type chartRepoPG struct{ pool *pgxpool.Pool }

func NewChartRepoPG(pool *pgxpool.Pool) ChartRepository {
	return &chartRepoPG{pool: pool}
}

const chartCols = `id, account_id, file_no, chart_type, visit_date, data, version, created_at, updated_at`

func (r *chartRepoPG) scanRow(row pgx.Row) (*Chart, error) {
	var ch Chart
	var data []byte
	err := row.Scan(&ch.ID, &ch.AccountID, &ch.FileNo, &ch.ChartType, &ch.VisitDate,
		&data, &ch.Version, &ch.CreatedAt, &ch.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &ch.Data); err != nil {
		return nil, fmt.Errorf("decode chart data: %w", err)
	}
	return &ch, nil
}

func (r *chartRepoPG) Upsert(ctx context.Context, ch *Chart, expectedVersion int) error {
	data, err := json.Marshal(ch.Data)
	if err != nil {
		return fmt.Errorf("encode chart data: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	existing := &Chart{}
	err = tx.QueryRow(ctx, `
		SELECT id, chart_type, version, created_at FROM visit_charts
		WHERE account_id = $1 AND file_no = $2
		FOR UPDATE`,
		ch.AccountID, ch.FileNo).
		Scan(&existing.ID, &existing.ChartType, &existing.Version, &existing.CreatedAt)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		ch.ID = uuid.New()
		ch.Version = 1
		err = tx.QueryRow(ctx, `
			INSERT INTO visit_charts (id, account_id, file_no, chart_type, visit_date, data, version)
			VALUES ($1,$2,$3,$4,$5,$6,1)
			RETURNING created_at, updated_at`,
			ch.ID, ch.AccountID, ch.FileNo, ch.ChartType, ch.VisitDate, data).
			Scan(&ch.CreatedAt, &ch.UpdatedAt)
		if err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if existing.ChartType != ch.ChartType {
			return ErrChartTypeImmutable
		}
		if expectedVersion != 0 && existing.Version != expectedVersion {
			return ErrConflict
		}
		ch.ID = existing.ID
		ch.CreatedAt = existing.CreatedAt
		ch.Version = existing.Version + 1
		err = tx.QueryRow(ctx, `
			UPDATE visit_charts SET visit_date=$3, data=$4, version=$5, updated_at=NOW()
			WHERE id = $1 AND account_id = $2
			RETURNING updated_at`,
			ch.ID, ch.AccountID, ch.VisitDate, data, ch.Version).
			Scan(&ch.UpdatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *chartRepoPG) GetByFileNo(ctx context.Context, accountID uuid.UUID, fileNo string) (*Chart, error) {
	return r.scanRow(r.pool.QueryRow(ctx,
		`SELECT `+chartCols+` FROM visit_charts WHERE account_id = $1 AND file_no = $2`,
		accountID, fileNo))
}

func (r *chartRepoPG) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Chart, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+chartCols+` FROM visit_charts WHERE account_id = $1 ORDER BY updated_at DESC`,
		accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Chart
	for rows.Next() {
		ch, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, ch)
	}
	return items, rows.Err()
}

func (r *chartRepoPG) Delete(ctx context.Context, accountID uuid.UUID, fileNo string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM visit_charts WHERE account_id = $1 AND file_no = $2`, accountID, fileNo)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
