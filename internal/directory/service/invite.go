package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/NotFromFatec/Carometro-V2/internal/directory/domain"
	"github.com/NotFromFatec/Carometro-V2/internal/directory/store"
	"github.com/NotFromFatec/Carometro-V2/pkg/slogx"
)

var (
	ErrAdminNotFound     = errors.New("admin not found")
	ErrInviteNotFound    = errors.New("invite not found")
	ErrInviteAlreadyUsed = errors.New("invite has already been used or cancelled")
)

// maxMintAttempts bounds the code-collision retry loop. UUID collisions are
// practically impossible, so hitting this limit means something else is
// wrong (e.g. a broken random source) and we surface the store error.
const maxMintAttempts = 5

type InviteService struct {
	Store store.Store
}

// MintInvite creates a fresh single-use invite on behalf of an admin.
func (s *InviteService) MintInvite(ctx context.Context, adminID string) (domain.Invite, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate the issuing admin exists.
	if _, err := s.Store.Admins().GetAdminByID(ctx, adminID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("invite mint attempted by unknown admin",
				slog.String("admin_id", adminID),
			)
			return domain.Invite{}, ErrAdminNotFound
		}
		log.Error("failed to fetch admin", slog.Any("error", err))
		return domain.Invite{}, err
	}

	// 2. Mint with a retry loop. The invite code is the primary key, so a
	// collision surfaces as ErrAlreadyExists from the insert itself rather
	// than from a racy pre-read.
	var lastErr error
	for attempt := 0; attempt < maxMintAttempts; attempt++ {
		invite := domain.Invite{
			Code:      uuid.NewString(),
			Status:    domain.InviteActive,
			CreatedBy: adminID,
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}

		err := s.Store.Invites().CreateInvite(ctx, invite)
		if err == nil {
			log.Debug("invite minted",
				slog.String("code", invite.Code),
				slog.String("admin_id", adminID),
			)
			return invite, nil
		}
		if errors.Is(err, store.ErrAlreadyExists) {
			lastErr = err
			continue
		}
		log.Error("failed to create invite", slog.Any("error", err))
		return domain.Invite{}, err
	}

	log.Error("exhausted invite code mint attempts", slog.Any("error", lastErr))
	return domain.Invite{}, lastErr
}

// CancelInvite revokes an active invite so it can no longer be redeemed.
// Cancelled invites stay listed; the invite table is the audit trail.
func (s *InviteService) CancelInvite(ctx context.Context, code string) (domain.Invite, error) {
	log := slogx.FromContext(ctx)

	err := s.Store.Invites().CancelInvite(ctx, code)
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Warn("cancel attempted on unknown invite", slog.String("code", code))
		return domain.Invite{}, ErrInviteNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		log.Warn("cancel attempted on terminal invite", slog.String("code", code))
		return domain.Invite{}, ErrInviteAlreadyUsed
	case err != nil:
		log.Error("failed to cancel invite", slog.Any("error", err))
		return domain.Invite{}, err
	}

	invite, err := s.Store.Invites().GetInviteByCode(ctx, code)
	if err != nil {
		log.Error("failed to re-read cancelled invite", slog.Any("error", err))
		return domain.Invite{}, err
	}

	log.Info("invite cancelled", slog.String("code", code))
	return invite, nil
}

// ListInvites returns every invite ever minted, newest first.
func (s *InviteService) ListInvites(ctx context.Context) ([]domain.Invite, error) {
	return s.Store.Invites().ListInvites(ctx)
}
