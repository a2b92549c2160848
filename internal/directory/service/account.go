package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/NotFromFatec/Carometro-V2/internal/directory/domain"
	"github.com/NotFromFatec/Carometro-V2/internal/directory/store"
	"github.com/NotFromFatec/Carometro-V2/pkg/slogx"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// PasswordVerifier compares a plaintext password against a stored digest.
// Wired to cryptox.VerifyPassword in production.
type PasswordVerifier func(password, encodedHash string) error

type AccountService struct {
	Store    store.Store
	Verifier PasswordVerifier
}

// Login authenticates an alumni by username and password.
func (s *AccountService) Login(ctx context.Context, username, password string) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	account, err := s.Store.Accounts().GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("login attempted with unknown username",
				slog.String("username", username),
			)
			return domain.Account{}, ErrAccountNotFound
		}
		log.Error("failed to fetch account", slog.Any("error", err))
		return domain.Account{}, err
	}

	if err := s.Verifier(password, account.PasswordHash); err != nil {
		log.Warn("login failed password check",
			slog.String("username", username),
		)
		return domain.Account{}, ErrInvalidCredentials
	}

	log.Debug("alumni login", slog.String("account_id", account.ID))
	return account, nil
}

func (s *AccountService) GetAccount(ctx context.Context, id string) (domain.Account, error) {
	account, err := s.Store.Accounts().GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, err
	}
	return account, nil
}

func (s *AccountService) GetAccountByUsername(ctx context.Context, username string) (domain.Account, error) {
	account, err := s.Store.Accounts().GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, err
	}
	return account, nil
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.Store.Accounts().ListAccounts(ctx)
}

// AccountPatch is a partial profile update. Nil fields are left untouched.
// Username, password and invite lineage are not updatable through this path.
type AccountPatch struct {
	Name                *string
	Course              *string
	GraduationYear      *string
	PersonalDescription *string
	CareerDescription   *string
	Verified            *bool
	TermsAccepted       *bool
	ProfileImage        *string
	FaceImage           *string
	FacePoints          *string
	ContactLinks        map[string]string
}

// UpdateAccount applies a partial update to the profile fields of an account.
func (s *AccountService) UpdateAccount(ctx context.Context, id string, patch AccountPatch) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	account, err := s.Store.Accounts().GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		log.Error("failed to fetch account", slog.Any("error", err))
		return domain.Account{}, err
	}

	if patch.Name != nil {
		account.Name = *patch.Name
	}
	if patch.Course != nil {
		account.Course = *patch.Course
	}
	if patch.GraduationYear != nil {
		account.GraduationYear = *patch.GraduationYear
	}
	if patch.PersonalDescription != nil {
		account.PersonalDescription = *patch.PersonalDescription
	}
	if patch.CareerDescription != nil {
		account.CareerDescription = *patch.CareerDescription
	}
	if patch.Verified != nil {
		account.Verified = *patch.Verified
	}
	if patch.TermsAccepted != nil {
		account.TermsAccepted = *patch.TermsAccepted
	}
	if patch.ProfileImage != nil {
		account.ProfileImage = *patch.ProfileImage
	}
	if patch.FaceImage != nil {
		account.FaceImage = *patch.FaceImage
	}
	if patch.FacePoints != nil {
		account.FacePoints = *patch.FacePoints
	}
	if patch.ContactLinks != nil {
		account.ContactLinks = patch.ContactLinks
	}
	account.UpdatedAt = time.Now().UTC()

	if err := s.Store.Accounts().UpdateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		log.Error("failed to update account",
			slog.String("account_id", id),
			slog.Any("error", err),
		)
		return domain.Account{}, err
	}

	log.Info("account updated", slog.String("account_id", id))
	return account, nil
}

// DeleteAccount removes an account. Admin-only; the consumed invite row is
// kept so the audit trail survives the account.
func (s *AccountService) DeleteAccount(ctx context.Context, id string) error {
	log := slogx.FromContext(ctx)

	if err := s.Store.Accounts().DeleteAccount(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		log.Error("failed to delete account",
			slog.String("account_id", id),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("account deleted", slog.String("account_id", id))
	return nil
}
