package sqlite

import (
	"context"
	"time"

	"github.com/NotFromFatec/Carometro-V2/internal/directory/domain"
)

type adminsRepo struct {
	db dbtx
}

func (r *adminsRepo) CreateAdmin(ctx context.Context, a domain.Admin) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admins (id, name, username, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Username, a.PasswordHash, a.Role, now, now,
	)
	return mapConstraint(err)
}

func (r *adminsRepo) GetAdminByID(ctx context.Context, id string) (domain.Admin, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, username, password_hash, role, created_at, updated_at
		FROM admins WHERE id = ?`, id)
	return scanAdmin(row)
}

func (r *adminsRepo) GetAdminByUsername(ctx context.Context, username string) (domain.Admin, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, username, password_hash, role, created_at, updated_at
		FROM admins WHERE username = ?`, username)
	return scanAdmin(row)
}

func scanAdmin(row rowScanner) (domain.Admin, error) {
	var a domain.Admin
	err := row.Scan(&a.ID, &a.Name, &a.Username, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Admin{}, mapNotFound(err)
	}
	return a, nil
}
