package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/stuccorite/fieldforms/internal/portal/domain"
)

// formsRepo stores all four form kinds in one table. The kind-specific
// record is a JSON payload column; job_name and job_address are
// extracted on write so the job-site aggregation can run without
// parsing every document.
type formsRepo struct {
	q dbtx
}

const formColumns = `id, form_type, status, completed_by_user, completed_by_name,
	job_name, job_address, payload, created_at, updated_at`

func (r *formsRepo) Create(ctx context.Context, f *domain.Form) error {
	payload, jobName, jobAddress, err := formRow(f)
	if err != nil {
		return err
	}
	_, err = r.q.ExecContext(ctx, `
		INSERT INTO forms (id, form_type, status, completed_by_user, completed_by_name,
			job_name, job_address, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.Type, f.Status, nullIfEmpty(f.CompletedByUser), f.CompletedByName,
		jobName, jobAddress, payload, f.CreatedAt, f.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *formsRepo) Update(ctx context.Context, f *domain.Form) error {
	payload, jobName, jobAddress, err := formRow(f)
	if err != nil {
		return err
	}
	res, err := r.q.ExecContext(ctx, `
		UPDATE forms SET status = ?, completed_by_user = ?, completed_by_name = ?,
			job_name = ?, job_address = ?, payload = ?, updated_at = ?
		WHERE id = ? AND form_type = ?`,
		f.Status, nullIfEmpty(f.CompletedByUser), f.CompletedByName,
		jobName, jobAddress, payload, f.UpdatedAt,
		f.ID, f.Type,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func (r *formsRepo) GetByID(ctx context.Context, t domain.FormType, id string) (*domain.Form, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+formColumns+` FROM forms WHERE id = ? AND form_type = ?`, id, t)
	return scanForm(row.Scan)
}

func (r *formsRepo) List(ctx context.Context, t domain.FormType, status domain.FormStatus) ([]*domain.Form, error) {
	query := `SELECT ` + formColumns + ` FROM forms WHERE form_type = ?`
	args := []any{t}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Form
	for rows.Next() {
		f, err := scanForm(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *formsRepo) Delete(ctx context.Context, t domain.FormType, id string) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM forms WHERE id = ? AND form_type = ?`, id, t)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func (r *formsRepo) ListJobSiteRows(ctx context.Context, t domain.FormType) ([]domain.JobSite, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT job_name, job_address, status, updated_at
		FROM forms
		WHERE form_type = ? AND job_address != ''
		ORDER BY updated_at DESC`, t)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.JobSite
	for rows.Next() {
		site := domain.JobSite{FormType: t}
		if err := rows.Scan(&site.JobName, &site.Address, &site.Status, &site.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, site)
	}
	return out, rows.Err()
}

func formRow(f *domain.Form) (payload []byte, jobName, jobAddress string, err error) {
	p := f.Payload()
	if p == nil {
		return nil, "", "", fmt.Errorf("form %s has no %s payload", f.ID, f.Type)
	}
	payload, err = json.Marshal(p)
	if err != nil {
		return nil, "", "", err
	}
	jobName, jobAddress, _ = f.JobSiteKey()
	return payload, jobName, jobAddress, nil
}

func scanForm(scan func(dest ...any) error) (*domain.Form, error) {
	var (
		f               domain.Form
		completedByUser sql.NullString
		jobName         string
		jobAddress      string
		payload         []byte
	)
	err := scan(&f.ID, &f.Type, &f.Status, &completedByUser, &f.CompletedByName,
		&jobName, &jobAddress, &payload, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if completedByUser.Valid {
		f.CompletedByUser = completedByUser.String
	}
	if err := f.SetPayload(payload); err != nil {
		return nil, fmt.Errorf("form %s: %w", f.ID, err)
	}
	return &f, nil
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
