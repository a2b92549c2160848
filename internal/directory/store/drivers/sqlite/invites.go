package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/NotFromFatec/Carometro-V2/internal/directory/domain"
	"github.com/NotFromFatec/Carometro-V2/internal/directory/store"
)

type invitesRepo struct {
	db dbtx
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	now := time.Now().UTC()
	status := inv.Status
	if status == "" {
		status = domain.InviteActive
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invites (code, status, created_by, used_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		inv.Code, string(status), inv.CreatedBy, mapStringNull(inv.UsedBy), now, now,
	)
	return mapConstraint(err)
}

func (r *invitesRepo) GetInviteByCode(ctx context.Context, code string) (domain.Invite, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT code, status, created_by, used_by, created_at, updated_at
		FROM invites WHERE code = ?`, code)
	return scanInvite(row)
}

// ConsumeInvite is the linearization point for invite redemption: a single
// conditional UPDATE guarded on status='active'. Out of N concurrent callers
// on the same code, sqlite lets exactly one observe rows_affected == 1.
func (r *invitesRepo) ConsumeInvite(ctx context.Context, code string, usedByAccountID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invites
		SET status = 'consumed', used_by = ?, updated_at = ?
		WHERE code = ? AND status = 'active'`,
		usedByAccountID, time.Now().UTC(), code,
	)
	if err != nil {
		return err
	}
	return r.checkAffected(ctx, res, code)
}

func (r *invitesRepo) CancelInvite(ctx context.Context, code string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invites
		SET status = 'cancelled', updated_at = ?
		WHERE code = ? AND status = 'active'`,
		time.Now().UTC(), code,
	)
	if err != nil {
		return err
	}
	return r.checkAffected(ctx, res, code)
}

func (r *invitesRepo) ListInvites(ctx context.Context) ([]domain.Invite, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT code, status, created_by, used_by, created_at, updated_at
		FROM invites ORDER BY created_at DESC, code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// checkAffected distinguishes "no such invite" from "invite already terminal"
// after a conditional update matched zero rows.
func (r *invitesRepo) checkAffected(ctx context.Context, res interface{ RowsAffected() (int64, error) }, code string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	if _, err := r.GetInviteByCode(ctx, code); err != nil {
		return err // store.ErrNotFound or driver failure
	}
	return store.ErrAlreadyExists
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvite(row rowScanner) (domain.Invite, error) {
	var (
		inv    domain.Invite
		status string
		usedBy sql.NullString
	)
	err := row.Scan(&inv.Code, &status, &inv.CreatedBy, &usedBy, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	inv.Status = domain.InviteStatus(status)
	inv.UsedBy = mapNullString(usedBy)
	return inv, nil
}
