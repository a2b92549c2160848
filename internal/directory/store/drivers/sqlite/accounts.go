package sqlite

import (
	"context"
	"encoding/json"
	"time"

	"github.com/NotFromFatec/Carometro-V2/internal/directory/domain"
)

type accountsRepo struct {
	db dbtx
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	links, err := encodeContactLinks(a.ContactLinks)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO accounts (
			id, username, password_hash, name, course, graduation_year,
			personal_description, career_description, verified, terms_accepted,
			profile_image, face_image, face_points, contact_links, invite_code,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Username, a.PasswordHash, a.Name, a.Course, a.GraduationYear,
		a.PersonalDescription, a.CareerDescription, a.Verified, a.TermsAccepted,
		a.ProfileImage, a.FaceImage, a.FacePoints, links, a.InviteCode,
		now, now,
	)
	return mapConstraint(err)
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, selectAccount+` WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *accountsRepo) GetAccountByUsername(ctx context.Context, username string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, selectAccount+` WHERE username = ?`, username)
	return scanAccount(row)
}

func (r *accountsRepo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, selectAccount+` ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *accountsRepo) UpdateAccount(ctx context.Context, a domain.Account) error {
	links, err := encodeContactLinks(a.ContactLinks)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET
			username = ?, name = ?, course = ?, graduation_year = ?,
			personal_description = ?, career_description = ?, verified = ?,
			terms_accepted = ?, profile_image = ?, face_image = ?,
			face_points = ?, contact_links = ?, updated_at = ?
		WHERE id = ?`,
		a.Username, a.Name, a.Course, a.GraduationYear,
		a.PersonalDescription, a.CareerDescription, a.Verified,
		a.TermsAccepted, a.ProfileImage, a.FaceImage,
		a.FacePoints, links, time.Now().UTC(),
		a.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireOneRow(res)
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

const selectAccount = `
	SELECT id, username, password_hash, name, course, graduation_year,
	       personal_description, career_description, verified, terms_accepted,
	       profile_image, face_image, face_points, contact_links, invite_code,
	       created_at, updated_at
	FROM accounts`

func scanAccount(row rowScanner) (domain.Account, error) {
	var (
		a     domain.Account
		links string
	)
	err := row.Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.Name, &a.Course, &a.GraduationYear,
		&a.PersonalDescription, &a.CareerDescription, &a.Verified, &a.TermsAccepted,
		&a.ProfileImage, &a.FaceImage, &a.FacePoints, &links, &a.InviteCode,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	if links != "" {
		if err := json.Unmarshal([]byte(links), &a.ContactLinks); err != nil {
			return domain.Account{}, err
		}
	}
	return a, nil
}

func encodeContactLinks(links map[string]string) (string, error) {
	if len(links) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(links)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
