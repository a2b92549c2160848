package directory_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NotFromFatec/Carometro-V2/pkg/dirsdk"
)

func TestInviteLifecycle(t *testing.T) {
	baseURL, cleanup := setupDirectoryContainer(t)
	defer cleanup()
	ctx := t.Context()

	client, admin := provisionAdmin(t, baseURL)

	// Mint an invite.
	invite, err := client.MintInvite(ctx, admin.ID)
	require.NoError(t, err)
	require.NotEmpty(t, invite.Code)
	require.Equal(t, "active", invite.Status)
	require.False(t, invite.Used)
	require.Equal(t, admin.ID, invite.CreatedBy)

	// Cancel it.
	_, err = client.CancelInvite(ctx, invite.Code)
	require.NoError(t, err)

	// It shows as cancelled and used in the listing.
	invites, err := client.ListInvites(ctx)
	require.NoError(t, err)
	require.Len(t, invites, 1)
	require.Equal(t, "cancelled", invites[0].Status)
	require.True(t, invites[0].Used)

	// Cancelling twice conflicts.
	_, err = client.CancelInvite(ctx, invite.Code)
	var apiErr *dirsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.StatusCode)

	// Cancelling an unknown code is a 404.
	_, err = client.CancelInvite(ctx, "never-minted")
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestInviteEndpointsRejectAnonymous(t *testing.T) {
	baseURL, cleanup := setupDirectoryContainer(t)
	defer cleanup()
	ctx := t.Context()

	anon := dirsdk.NewClient(baseURL)

	_, err := anon.MintInvite(ctx, "some-admin")
	var apiErr *dirsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	_, err = anon.ListInvites(ctx)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestMintInvite_UnknownAdmin(t *testing.T) {
	baseURL, cleanup := setupDirectoryContainer(t)
	defer cleanup()
	ctx := t.Context()

	client, _ := provisionAdmin(t, baseURL)

	_, err := client.MintInvite(ctx, "no-such-admin")
	var apiErr *dirsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
