package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/stuccorite/fieldforms/internal/portal/domain"
)

type usersRepo struct {
	q dbtx
}

const userColumns = `id, username, email, password_hash, full_name, role,
	two_factor_enabled, two_factor_secret, last_login, created_at, updated_at`

func (r *usersRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, full_name, role,
			two_factor_enabled, two_factor_secret, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.FullName, u.Role,
		u.TwoFactorEnabled, mapOptionalString(u.TwoFactorSecret),
		u.CreatedAt, u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ? OR email = ?`,
		login, login)
	return scanUser(row)
}

func (r *usersRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE users SET last_login = ?, updated_at = ? WHERE id = ?`,
		at, at, id)
	return err
}

func (r *usersRepo) SetTwoFactor(ctx context.Context, id string, enabled bool, secret *string) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users SET two_factor_enabled = ?, two_factor_secret = ?, updated_at = ?
		WHERE id = ?`,
		enabled, mapOptionalString(secret), time.Now().UTC(), id)
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

func scanUser(row *sql.Row) (*domain.User, error) {
	var (
		u         domain.User
		secret    sql.NullString
		lastLogin sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName,
		&u.Role, &u.TwoFactorEnabled, &secret, &lastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapNotFound(err)
	}
	u.TwoFactorSecret = mapNullStringPtr(secret)
	u.LastLogin = mapNullTimePtr(lastLogin)
	return &u, nil
}
