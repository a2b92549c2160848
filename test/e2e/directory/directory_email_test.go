package directory_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NotFromFatec/Carometro-V2/pkg/dirsdk"
)

// The container's SMTP relay points at a closed port, so every delivery
// fails. That exercises the invariant this suite cares most about: invites
// are committed before their send attempt and survive delivery failures.
func TestEmailDispatch_FailedSendsKeepInvites(t *testing.T) {
	baseURL, cleanup := setupDirectoryContainer(t)
	defer cleanup()
	ctx := t.Context()

	client, admin := provisionAdmin(t, baseURL)

	report, status, err := client.SendInviteEmails(ctx, dirsdk.EmailSendRequest{
		AdminID: admin.ID,
		Recipients: []dirsdk.EmailRecipient{
			{Email: "a@example.com"},
			{Email: "b@example.com"},
		},
		Subject: "Join the alumni directory",
		HTML:    `<p>Register at <a href="{link}">{link}</a></p>`,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, status)
	require.NotNil(t, report.Details)
	require.Equal(t, 0, report.Details.SuccessfulSends)
	require.Equal(t, 2, report.Details.FailedSends)
	require.Len(t, report.Details.Errors, 2)
	require.NotEmpty(t, report.Message)
	require.NotEmpty(t, report.Error)

	// One invite per recipient exists and stays redeemable.
	invites, err := client.ListInvites(ctx)
	require.NoError(t, err)
	require.Len(t, invites, 2)
	for _, inv := range invites {
		require.Equal(t, "active", inv.Status)
		require.Equal(t, admin.ID, inv.CreatedBy)
	}

	// A failed announcement does not burn the code: registration works.
	anon := dirsdk.NewClient(baseURL)
	account, err := anon.Register(ctx, dirsdk.RegisterRequest{
		InviteCode: invites[0].Code,
		Username:   "manual.handout",
		Password:   "pw",
	})
	require.NoError(t, err)
	require.Equal(t, invites[0].Code, account.InviteCode)
}

func TestEmailDispatch_Validation(t *testing.T) {
	baseURL, cleanup := setupDirectoryContainer(t)
	defer cleanup()
	ctx := t.Context()

	client, admin := provisionAdmin(t, baseURL)

	// Empty recipients.
	_, status, err := client.SendInviteEmails(ctx, dirsdk.EmailSendRequest{
		AdminID: admin.ID,
		Subject: "s",
		HTML:    "<p>b</p>",
	})
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, status)

	// Blank subject.
	_, status, err = client.SendInviteEmails(ctx, dirsdk.EmailSendRequest{
		AdminID:    admin.ID,
		Recipients: []dirsdk.EmailRecipient{{Email: "a@example.com"}},
		HTML:       "<p>b</p>",
	})
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, status)

	// Unknown admin.
	_, status, err = client.SendInviteEmails(ctx, dirsdk.EmailSendRequest{
		AdminID:    "no-such-admin",
		Recipients: []dirsdk.EmailRecipient{{Email: "a@example.com"}},
		Subject:    "s",
		HTML:       "<p>b</p>",
	})
	require.Error(t, err)
	require.Equal(t, http.StatusNotFound, status)

	// None of the rejected requests minted invites.
	invites, err := client.ListInvites(ctx)
	require.NoError(t, err)
	require.Empty(t, invites)
}
