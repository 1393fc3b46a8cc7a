package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type accountRepoPG struct{ pool *pgxpool.Pool }

func NewAccountRepoPG(pool *pgxpool.Pool) AccountRepository {
	return &accountRepoPG{pool: pool}
}

const acctCols = `id, username, password_hash, clinic_name, practitioner_name,
	license_no, is_admin, is_approved, approved_at, approved_by,
	created_at, updated_at`

func (r *accountRepoPG) scanRow(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.ClinicName, &a.PractitionerName,
		&a.LicenseNo, &a.IsAdmin, &a.IsApproved, &a.ApprovedAt, &a.ApprovedBy,
		&a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &a, err
}

func (r *accountRepoPG) Create(ctx context.Context, a *Account) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (id, username, password_hash, clinic_name, practitioner_name,
			license_no, is_admin, is_approved, approved_at, approved_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at, updated_at`,
		a.ID, a.Username, a.PasswordHash, a.ClinicName, a.PractitionerName,
		a.LicenseNo, a.IsAdmin, a.IsApproved, a.ApprovedAt, a.ApprovedBy).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateUsername
	}
	return err
}

func (r *accountRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return r.scanRow(r.pool.QueryRow(ctx, `SELECT `+acctCols+` FROM accounts WHERE id = $1`, id))
}

func (r *accountRepoPG) GetByUsername(ctx context.Context, username string) (*Account, error) {
	return r.scanRow(r.pool.QueryRow(ctx, `SELECT `+acctCols+` FROM accounts WHERE username = $1`, username))
}

func (r *accountRepoPG) Update(ctx context.Context, a *Account) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE accounts SET clinic_name=$2, practitioner_name=$3, license_no=$4,
			is_admin=$5, is_approved=$6, approved_at=$7, approved_by=$8,
			updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.ClinicName, a.PractitionerName, a.LicenseNo,
		a.IsAdmin, a.IsApproved, a.ApprovedAt, a.ApprovedBy)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *accountRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *accountRepoPG) List(ctx context.Context) ([]*Account, error) {
	return r.listWhere(ctx, ``)
}

func (r *accountRepoPG) ListPending(ctx context.Context) ([]*Account, error) {
	return r.listWhere(ctx, `WHERE is_approved = FALSE`)
}

func (r *accountRepoPG) listWhere(ctx context.Context, where string) ([]*Account, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+acctCols+` FROM accounts `+where+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Account
	for rows.Next() {
		a, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
