package sqlite

import "context"

type backupCodesRepo struct {
	q dbtx
}

func (r *backupCodesRepo) Replace(ctx context.Context, userID string, hashes []string) error {
	if _, err := r.q.ExecContext(ctx,
		`DELETE FROM backup_codes WHERE user_id = ?`, userID); err != nil {
		return err
	}
	for _, h := range hashes {
		if _, err := r.q.ExecContext(ctx,
			`INSERT INTO backup_codes (user_id, code_hash) VALUES (?, ?)`,
			userID, h); err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}

// Consume deletes the code in a single statement. RowsAffected tells us
// whether this caller won; a concurrent spend of the same code loses.
func (r *backupCodesRepo) Consume(ctx context.Context, userID, hash string) (bool, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM backup_codes WHERE user_id = ? AND code_hash = ?`,
		userID, hash)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *backupCodesRepo) Count(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM backup_codes WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}

func (r *backupCodesRepo) DeleteAll(ctx context.Context, userID string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM backup_codes WHERE user_id = ?`, userID)
	return err
}
