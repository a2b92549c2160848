package store

import (
	"context"
	"errors"

	"github.com/NotFromFatec/Carometro-V2/internal/directory/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and gives callers explicit transaction control for the one place
// that truly needs it: consuming an invite together with creating an account.
type Store interface {
	Invites() Invites
	Accounts() Accounts
	Admins() Admins
	Courses() Courses

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to handle transactions.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Invites interface {
	// CreateInvite inserts a new invite row. Returns ErrAlreadyExists if the
	// code is already present; the primary key enforces uniqueness, there is
	// no read-then-write window.
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetInviteByCode returns an invite regardless of status.
	GetInviteByCode(ctx context.Context, code string) (domain.Invite, error)

	// ConsumeInvite atomically transitions an active invite to consumed and
	// records the account that used it. It is a single conditional UPDATE:
	// under any interleaving of concurrent calls on the same code, exactly
	// one succeeds. Returns ErrAlreadyExists if the invite exists but is no
	// longer active, ErrNotFound if it never existed.
	ConsumeInvite(ctx context.Context, code string, usedByAccountID string) error

	// CancelInvite transitions an active invite to cancelled with the same
	// conditional-update semantics as ConsumeInvite.
	CancelInvite(ctx context.Context, code string) error

	// ListInvites returns all invites, newest first. Invites are never
	// deleted; the table doubles as the audit trail.
	ListInvites(ctx context.Context) ([]domain.Invite, error)
}

type Accounts interface {
	// CreateAccount inserts a new account. The unique username constraint is
	// enforced by the database; a violation maps to ErrAlreadyExists.
	CreateAccount(ctx context.Context, a domain.Account) error

	// GetAccountByID returns an account by id.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByUsername is used during login and registration pre-checks.
	GetAccountByUsername(ctx context.Context, username string) (domain.Account, error)

	// ListAccounts returns all accounts ordered by creation date.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// UpdateAccount overwrites the mutable profile fields and bumps updated_at.
	UpdateAccount(ctx context.Context, a domain.Account) error

	// DeleteAccount removes an account (admin operation).
	DeleteAccount(ctx context.Context, id string) error
}

type Admins interface {
	// CreateAdmin inserts a new administrator (id is provided by app via ULID).
	CreateAdmin(ctx context.Context, a domain.Admin) error

	// GetAdminByID is used to validate invite issuers.
	GetAdminByID(ctx context.Context, id string) (domain.Admin, error)

	// GetAdminByUsername is used during admin login.
	GetAdminByUsername(ctx context.Context, username string) (domain.Admin, error)
}

type Courses interface {
	CreateCourse(ctx context.Context, c domain.Course) error
	ListCourses(ctx context.Context) ([]domain.Course, error)
}
