package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NotFromFatec/Carometro-V2/internal/directory/domain"
	"github.com/NotFromFatec/Carometro-V2/internal/directory/store"
)

func newRegistrationService(st store.Store) *RegistrationService {
	return &RegistrationService{Store: st, Hasher: testHasher}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	admin := seedAdmin(t, st)
	invites := &InviteService{Store: st}
	svc := newRegistrationService(st)

	invite, err := invites.MintInvite(ctx, admin.ID)
	require.NoError(t, err)

	draft := domain.Account{
		Username:       "maria.santos",
		Name:           "Maria Santos",
		Course:         "ADS",
		GraduationYear: "2021",
		TermsAccepted:  true,
		ContactLinks:   map[string]string{"linkedin": "https://linkedin.com/in/maria"},
	}

	account, err := svc.Register(ctx, draft, "s3cret-password", invite.Code)
	require.NoError(t, err)
	require.NotEmpty(t, account.ID)
	require.Equal(t, testHashOf("s3cret-password"), account.PasswordHash)
	require.Equal(t, invite.Code, account.InviteCode)

	// Both halves persisted: account exists and the invite is consumed by it.
	stored, err := st.Accounts().GetAccountByUsername(ctx, "maria.santos")
	require.NoError(t, err)
	require.Equal(t, account.ID, stored.ID)
	require.Equal(t, "https://linkedin.com/in/maria", stored.ContactLinks["linkedin"])

	consumed, err := st.Invites().GetInviteByCode(ctx, invite.Code)
	require.NoError(t, err)
	require.Equal(t, domain.InviteConsumed, consumed.Status)
	require.Equal(t, account.ID, consumed.UsedBy)
}

func TestRegister_Validation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newRegistrationService(st)

	_, err := svc.Register(ctx, domain.Account{Username: "u"}, "pw", "")
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Register(ctx, domain.Account{}, "pw", "some-code")
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Register(ctx, domain.Account{Username: "u"}, "", "some-code")
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestRegister_UnknownInvite(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newRegistrationService(st)

	_, err := svc.Register(ctx, domain.Account{Username: "u"}, "pw", "never-minted")
	require.ErrorIs(t, err, ErrInviteNotFound)
}

func TestRegister_TerminalInvite(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	admin := seedAdmin(t, st)
	invites := &InviteService{Store: st}
	svc := newRegistrationService(st)

	t.Run("consumed", func(t *testing.T) {
		invite, err := invites.MintInvite(ctx, admin.ID)
		require.NoError(t, err)
		_, err = svc.Register(ctx, domain.Account{Username: "first"}, "pw", invite.Code)
		require.NoError(t, err)

		_, err = svc.Register(ctx, domain.Account{Username: "second"}, "pw", invite.Code)
		require.ErrorIs(t, err, ErrInviteAlreadyUsed)
	})

	t.Run("cancelled", func(t *testing.T) {
		invite, err := invites.MintInvite(ctx, admin.ID)
		require.NoError(t, err)
		_, err = invites.CancelInvite(ctx, invite.Code)
		require.NoError(t, err)

		_, err = svc.Register(ctx, domain.Account{Username: "third"}, "pw", invite.Code)
		require.ErrorIs(t, err, ErrInviteAlreadyUsed)
	})
}

func TestRegister_UsernameTaken(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	admin := seedAdmin(t, st)
	invites := &InviteService{Store: st}
	svc := newRegistrationService(st)

	first, err := invites.MintInvite(ctx, admin.ID)
	require.NoError(t, err)
	_, err = svc.Register(ctx, domain.Account{Username: "taken"}, "pw", first.Code)
	require.NoError(t, err)

	second, err := invites.MintInvite(ctx, admin.ID)
	require.NoError(t, err)
	_, err = svc.Register(ctx, domain.Account{Username: "taken"}, "pw", second.Code)
	require.ErrorIs(t, err, ErrUsernameTaken)

	// The losing registration must not consume its invite.
	stored, err := st.Invites().GetInviteByCode(ctx, second.Code)
	require.NoError(t, err)
	require.Equal(t, domain.InviteActive, stored.Status)
}

func TestRegister_ConcurrentSameInvite(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	admin := seedAdmin(t, st)
	invites := &InviteService{Store: st}
	svc := newRegistrationService(st)

	invite, err := invites.MintInvite(ctx, admin.ID)
	require.NoError(t, err)

	const racers = 8
	results := make([]error, racers)
	var wg sync.WaitGroup
	for i := range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = svc.Register(ctx, domain.Account{
				Username: fmt.Sprintf("racer-%d", i),
			}, "pw", invite.Code)
		}()
	}
	wg.Wait()

	// Exactly one racer wins; the rest observe a terminal invite.
	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, ErrInviteAlreadyUsed)
		}
	}
	require.Equal(t, 1, winners)

	// Exactly one account row exists and the invite records the winner.
	accounts, err := st.Accounts().ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)

	consumed, err := st.Invites().GetInviteByCode(ctx, invite.Code)
	require.NoError(t, err)
	require.Equal(t, domain.InviteConsumed, consumed.Status)
	require.Equal(t, accounts[0].ID, consumed.UsedBy)
}

func TestRegister_ConcurrentSameUsername(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	admin := seedAdmin(t, st)
	invites := &InviteService{Store: st}
	svc := newRegistrationService(st)

	const racers = 4
	codes := make([]string, racers)
	for i := range racers {
		invite, err := invites.MintInvite(ctx, admin.ID)
		require.NoError(t, err)
		codes[i] = invite.Code
	}

	results := make([]error, racers)
	var wg sync.WaitGroup
	for i := range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = svc.Register(ctx, domain.Account{
				Username: "contested",
			}, "pw", codes[i])
		}()
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, ErrUsernameTaken)
		}
	}
	require.Equal(t, 1, winners)

	// Losing racers' invites roll back to active together with their
	// account rows: both-or-neither.
	consumedCount := 0
	for _, code := range codes {
		inv, err := st.Invites().GetInviteByCode(ctx, code)
		require.NoError(t, err)
		if inv.Status == domain.InviteConsumed {
			consumedCount++
		} else {
			require.Equal(t, domain.InviteActive, inv.Status)
		}
	}
	require.Equal(t, 1, consumedCount)

	accounts, err := st.Accounts().ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
}
