// Package store defines the persistence contracts for the portal.
// Drivers live under store/drivers and return these interfaces so the
// service layer never sees driver types.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/stuccorite/fieldforms/internal/portal/domain"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("store: not found")

	// ErrAlreadyExists is returned when an insert violates a
	// uniqueness constraint.
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store aggregates the portal repositories behind one handle.
type Store interface {
	Users() UserRepo
	BackupCodes() BackupCodeRepo
	Forms() FormRepo
	JobSiteStatuses() JobSiteStatusRepo

	// WithTx runs fn inside a transaction. The Store passed to fn is
	// scoped to that transaction; returning an error rolls back.
	WithTx(ctx context.Context, fn func(Store) error) error

	Ping(ctx context.Context) error
	Close() error
}

// UserRepo persists portal accounts.
type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByLogin matches the login string against username or email,
	// case-sensitively.
	GetByLogin(ctx context.Context, login string) (*domain.User, error)

	UpdateLastLogin(ctx context.Context, id string, at time.Time) error

	// SetTwoFactor stores the enrolment state. A nil secret clears it.
	SetTwoFactor(ctx context.Context, id string, enabled bool, secret *string) error
}

// BackupCodeRepo persists hashed 2FA backup codes.
type BackupCodeRepo interface {
	// Replace swaps the user's full code set in one statement batch.
	Replace(ctx context.Context, userID string, hashes []string) error

	// Consume deletes the matching code and reports whether a row was
	// actually removed, so a code can never be spent twice.
	Consume(ctx context.Context, userID, hash string) (bool, error)

	Count(ctx context.Context, userID string) (int, error)
	DeleteAll(ctx context.Context, userID string) error
}

// FormRepo persists form documents of all four kinds.
type FormRepo interface {
	Create(ctx context.Context, f *domain.Form) error
	Update(ctx context.Context, f *domain.Form) error
	GetByID(ctx context.Context, t domain.FormType, id string) (*domain.Form, error)
	List(ctx context.Context, t domain.FormType, status domain.FormStatus) ([]*domain.Form, error)
	Delete(ctx context.Context, t domain.FormType, id string) error

	// ListJobSiteRows returns one aggregation row per form of the kind
	// that carries a non-empty address, newest first.
	ListJobSiteRows(ctx context.Context, t domain.FormType) ([]domain.JobSite, error)
}

// JobSiteStatusRepo persists archive markers for job sites.
type JobSiteStatusRepo interface {
	Upsert(ctx context.Context, s *domain.JobSiteStatus) error
	Get(ctx context.Context, jobName, address string) (*domain.JobSiteStatus, error)
	List(ctx context.Context) ([]*domain.JobSiteStatus, error)
}
