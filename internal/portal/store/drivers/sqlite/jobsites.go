package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/stuccorite/fieldforms/internal/portal/domain"
)

type jobSiteStatusesRepo struct {
	q dbtx
}

const jobSiteStatusColumns = `id, job_name, address, site_key, is_active,
	archived_by, archived_at, created_at, updated_at`

// Upsert keys on the normalized site key so repeated archive toggles on
// the same site update one row.
func (r *jobSiteStatusesRepo) Upsert(ctx context.Context, s *domain.JobSiteStatus) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO job_site_statuses (id, job_name, address, site_key, is_active,
			archived_by, archived_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(site_key) DO UPDATE SET
			is_active = excluded.is_active,
			archived_by = excluded.archived_by,
			archived_at = excluded.archived_at,
			updated_at = excluded.updated_at`,
		s.ID, s.JobName, s.Address, siteKey(s.JobName, s.Address), s.Active,
		nullIfEmpty(s.ArchivedBy), mapOptionalTime(s.ArchivedAt),
		s.CreatedAt, s.UpdatedAt,
	)
	return err
}

func (r *jobSiteStatusesRepo) Get(ctx context.Context, jobName, address string) (*domain.JobSiteStatus, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+jobSiteStatusColumns+` FROM job_site_statuses WHERE site_key = ?`,
		siteKey(jobName, address))
	return scanJobSiteStatus(row.Scan)
}

func (r *jobSiteStatusesRepo) List(ctx context.Context) ([]*domain.JobSiteStatus, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+jobSiteStatusColumns+` FROM job_site_statuses`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.JobSiteStatus
	for rows.Next() {
		s, err := scanJobSiteStatus(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanJobSiteStatus(scan func(dest ...any) error) (*domain.JobSiteStatus, error) {
	var (
		s          domain.JobSiteStatus
		key        string
		archivedBy sql.NullString
		archivedAt sql.NullTime
	)
	err := scan(&s.ID, &s.JobName, &s.Address, &key, &s.Active,
		&archivedBy, &archivedAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if archivedBy.Valid {
		s.ArchivedBy = archivedBy.String
	}
	s.ArchivedAt = mapNullTimePtr(archivedAt)
	return &s, nil
}

// siteKey normalizes (job name, address) the same way the aggregation
// deduplicates, so statuses attach across forms with case differences.
func siteKey(jobName, address string) string {
	return strings.ToLower(strings.TrimSpace(jobName) + "-" + strings.TrimSpace(address))
}
