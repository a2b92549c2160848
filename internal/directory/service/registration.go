package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/NotFromFatec/Carometro-V2/internal/directory/domain"
	"github.com/NotFromFatec/Carometro-V2/internal/directory/store"
	"github.com/NotFromFatec/Carometro-V2/pkg/idx"
	"github.com/NotFromFatec/Carometro-V2/pkg/slogx"
)

var (
	ErrInvalidRequest = errors.New("invalid registration request")
	ErrUsernameTaken  = errors.New("username already taken")
)

// PasswordHasher digests a plaintext password for storage. Wired to
// cryptox.HashPassword in production; tests may substitute a cheap stub.
type PasswordHasher func(password string) (string, error)

type RegistrationService struct {
	Store  store.Store
	Hasher PasswordHasher
}

// Register redeems an invite code and creates the alumni account in one
// transaction. Either both the account row and the invite consumption
// persist, or neither does.
func (s *RegistrationService) Register(
	ctx context.Context,
	draft domain.Account,
	password string,
	inviteCode string,
) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	if inviteCode == "" || draft.Username == "" || password == "" {
		log.Warn("registration missing required fields")
		return domain.Account{}, ErrInvalidRequest
	}

	// 2. Look up the invite. A terminal invite is reported distinctly from
	// an absent one so callers can decide how much to reveal.
	invite, err := s.Store.Invites().GetInviteByCode(ctx, inviteCode)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("registration attempted with unknown invite code")
			return domain.Account{}, ErrInviteNotFound
		}
		log.Error("failed to fetch invite", slog.Any("error", err))
		return domain.Account{}, err
	}
	if !invite.Usable() {
		log.Warn("registration attempted with terminal invite",
			slog.String("code", invite.Code),
			slog.String("status", string(invite.Status)),
		)
		return domain.Account{}, ErrInviteAlreadyUsed
	}

	// 3. Pre-check username availability for a friendly error. The database
	// constraint remains the authority; this only shortcuts the common case.
	_, err = s.Store.Accounts().GetAccountByUsername(ctx, draft.Username)
	if err == nil {
		log.Warn("registration attempted with taken username",
			slog.String("username", draft.Username),
		)
		return domain.Account{}, ErrUsernameTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check username availability", slog.Any("error", err))
		return domain.Account{}, err
	}

	// 4. Hash the password before anything is written.
	passwordHash, err := s.Hasher(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.Account{}, err
	}

	// 5. Create the account and consume the invite atomically. If either
	// step fails the whole transaction rolls back: a losing racer on the
	// invite sees a conflict and its account row vanishes with it.
	account := draft
	if account.ID == "" {
		account.ID = idx.New().String()
	}
	account.PasswordHash = passwordHash
	account.InviteCode = invite.Code
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().CreateAccount(ctx, account); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUsernameTaken
			}
			log.Error("failed to create account",
				slog.String("username", account.Username),
				slog.Any("error", err),
			)
			return err
		}

		if err := tx.Invites().ConsumeInvite(ctx, invite.Code, account.ID); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) || errors.Is(err, store.ErrNotFound) {
				return ErrInviteAlreadyUsed
			}
			log.Error("failed to consume invite",
				slog.String("code", invite.Code),
				slog.Any("error", err),
			)
			return err
		}

		return nil
	})
	if err != nil {
		return domain.Account{}, err
	}

	log.Info("alumni account registered",
		slog.String("account_id", account.ID),
		slog.String("username", account.Username),
		slog.String("invite_code", invite.Code),
	)

	return account, nil
}
