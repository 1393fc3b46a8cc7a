package clinic

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type profileRepoPG struct{ pool *pgxpool.Pool }

func NewProfileRepoPG(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepoPG{pool: pool}
}

const profCols = `id, account_id, clinic_name, logo, practitioner_name, license_no, updated_at`

func (r *profileRepoPG) Upsert(ctx context.Context, p *Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO clinic_profiles (id, account_id, clinic_name, logo, practitioner_name, license_no)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (account_id) DO UPDATE SET
			clinic_name = EXCLUDED.clinic_name,
			logo = EXCLUDED.logo,
			practitioner_name = EXCLUDED.practitioner_name,
			license_no = EXCLUDED.license_no,
			updated_at = NOW()
		RETURNING id, updated_at`,
		p.ID, p.AccountID, p.ClinicName, p.Logo, p.PractitionerName, p.LicenseNo).
		Scan(&p.ID, &p.UpdatedAt)
}

func (r *profileRepoPG) GetByAccount(ctx context.Context, accountID uuid.UUID) (*Profile, error) {
	var p Profile
	err := r.pool.QueryRow(ctx,
		`SELECT `+profCols+` FROM clinic_profiles WHERE account_id = $1`, accountID).
		Scan(&p.ID, &p.AccountID, &p.ClinicName, &p.Logo, &p.PractitionerName, &p.LicenseNo, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
