package clinician

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cliniq/cliniq/internal/platform/apperr"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const cols = `id, name, specialty, email, created_at`

func scanClinician(row pgx.Row) (*Clinician, error) {
	var c Clinician
	err := row.Scan(&c.ID, &c.Name, &c.Specialty, &c.Email, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return &c, err
}

func (r *repoPG) Create(ctx context.Context, c *Clinician) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO clinicians (name, specialty, email)
		VALUES ($1, $2, $3)
		RETURNING `+cols,
		c.Name, c.Specialty, c.Email)
	created, err := scanClinician(row)
	if err != nil {
		return err
	}
	*c = *created
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Clinician, error) {
	return scanClinician(r.pool.QueryRow(ctx, `SELECT `+cols+` FROM clinicians WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context) ([]*Clinician, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+cols+` FROM clinicians ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Clinician{}
	for rows.Next() {
		c, err := scanClinician(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clinicians WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperr.ErrForeignKey
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
