package visit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cliniq/cliniq/internal/platform/apperr"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const viewCols = `
	v.id,
	v.clinician_id,
	v.patient_id,
	v.visit_date,
	v.duration_minutes,
	v.status,
	v.notes,
	v.created_at,
	c.name AS clinician_name,
	c.specialty AS clinician_specialty,
	p.name AS patient_name,
	p.email AS patient_email`

const viewFrom = `
	FROM visits v
	JOIN clinicians c ON v.clinician_id = c.id
	JOIN patients p ON v.patient_id = p.id`

func scanView(row pgx.Row) (*View, error) {
	var v View
	err := row.Scan(&v.ID, &v.ClinicianID, &v.PatientID, &v.VisitDate,
		&v.DurationMinutes, &v.Status, &v.Notes, &v.CreatedAt,
		&v.ClinicianName, &v.ClinicianSpecialty, &v.PatientName, &v.PatientEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return &v, err
}

func translateFK(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return apperr.ErrForeignKey
	}
	return err
}

func (r *repoPG) Insert(ctx context.Context, rec *Record) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO visits (clinician_id, patient_id, visit_date, duration_minutes, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		rec.ClinicianID, rec.PatientID, rec.VisitDate, rec.DurationMinutes, rec.Status, rec.Notes,
	).Scan(&id)
	if err != nil {
		return 0, translateFK(err)
	}
	return id, nil
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*View, error) {
	return scanView(r.pool.QueryRow(ctx, `SELECT `+viewCols+viewFrom+` WHERE v.id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, f Filter) ([]*View, error) {
	query := `SELECT ` + viewCols + viewFrom + ` WHERE 1=1`
	var args []interface{}
	idx := 1

	if f.ClinicianID > 0 {
		query += fmt.Sprintf(` AND v.clinician_id = $%d`, idx)
		args = append(args, f.ClinicianID)
		idx++
	}
	if f.PatientID > 0 {
		query += fmt.Sprintf(` AND v.patient_id = $%d`, idx)
		args = append(args, f.PatientID)
		idx++
	}
	if f.Status != "" {
		query += fmt.Sprintf(` AND v.status = $%d`, idx)
		args = append(args, f.Status)
		idx++
	}
	if f.StartDate != nil {
		query += fmt.Sprintf(` AND v.visit_date >= $%d`, idx)
		args = append(args, *f.StartDate)
		idx++
	}
	if f.EndDate != nil {
		query += fmt.Sprintf(` AND v.visit_date <= $%d`, idx)
		args = append(args, *f.EndDate)
		idx++
	}

	query += ` ORDER BY v.visit_date DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*View{}
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, id int64, params UpdateParams) error {
	var sets []string
	args := []interface{}{id}
	idx := 2

	if params.VisitDate != nil {
		dt, err := ParseDateTime(*params.VisitDate)
		if err != nil {
			return err
		}
		sets = append(sets, fmt.Sprintf("visit_date = $%d", idx))
		args = append(args, dt)
		idx++
	}
	if params.DurationMinutes != nil {
		sets = append(sets, fmt.Sprintf("duration_minutes = $%d", idx))
		args = append(args, *params.DurationMinutes)
		idx++
	}
	if params.Status != nil {
		sets = append(sets, fmt.Sprintf("status = $%d", idx))
		args = append(args, *params.Status)
		idx++
	}
	if params.Notes != nil {
		sets = append(sets, fmt.Sprintf("notes = $%d", idx))
		args = append(args, *params.Notes)
		idx++
	}
	if len(sets) == 0 {
		return nil
	}

	query := `UPDATE visits SET ` + strings.Join(sets, ", ") + ` WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return translateFK(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM visits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
