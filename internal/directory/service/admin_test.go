package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/NotFromFatec/Carometro-V2/internal/directory/auth"
	"github.com/NotFromFatec/Carometro-V2/internal/directory/store"
)

func newAdminService(st store.Store) *AdminService {
	return &AdminService{
		Store:     st,
		Hasher:    testHasher,
		Verifier:  testVerifier,
		JWTSecret: "test-secret",
		Issuer:    "directory-test",
		TokenTTL:  time.Minute,
	}
}

func TestProvisionAdmin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAdminService(st)

	admin, err := svc.ProvisionAdmin(ctx, "Coordinator", "coord", "pw", "")
	require.NoError(t, err)
	require.NotEmpty(t, admin.ID)
	require.Equal(t, auth.RoleAdmin, admin.Role)
	require.Equal(t, testHashOf("pw"), admin.PasswordHash)

	stored, err := svc.GetAdminByUsername(ctx, "coord")
	require.NoError(t, err)
	require.Equal(t, admin.ID, stored.ID)
}

func TestProvisionAdmin_UsernameTaken(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAdminService(st)

	_, err := svc.ProvisionAdmin(ctx, "First", "shared", "pw", "")
	require.NoError(t, err)

	_, err = svc.ProvisionAdmin(ctx, "Second", "shared", "pw", "")
	require.ErrorIs(t, err, ErrAdminUsernameTaken)
}

func TestProvisionAdmin_Validation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAdminService(st)

	_, err := svc.ProvisionAdmin(ctx, "Name", "", "pw", "")
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.ProvisionAdmin(ctx, "Name", "user", "", "")
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestAdminLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAdminService(st)

	created, err := svc.ProvisionAdmin(ctx, "Coordinator", "coord", "pw", "")
	require.NoError(t, err)

	t.Run("success issues verifiable token", func(t *testing.T) {
		admin, token, err := svc.Login(ctx, "coord", "pw")
		require.NoError(t, err)
		require.Equal(t, created.ID, admin.ID)
		require.NotEmpty(t, token)

		adminID, role, err := svc.VerifyToken(token)
		require.NoError(t, err)
		require.Equal(t, created.ID, adminID)
		require.Equal(t, auth.RoleAdmin, role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "coord", "nope")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ghost", "pw")
		require.ErrorIs(t, err, ErrAdminNotFound)
	})
}

func TestVerifyToken_Rejects(t *testing.T) {
	st := newTestStore(t)
	svc := newAdminService(st)

	t.Run("garbage token", func(t *testing.T) {
		_, _, err := svc.VerifyToken("not-a-token")
		require.Error(t, err)
	})

	t.Run("alumni role token", func(t *testing.T) {
		token, err := auth.NewAccessToken("test-secret", "directory-test", time.Minute, auth.Claims{
			SubjectID: "some-account",
			Role:      auth.RoleAlumni,
		})
		require.NoError(t, err)

		_, _, err = svc.VerifyToken(token)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := auth.NewAccessToken("other-secret", "directory-test", time.Minute, auth.Claims{
			SubjectID: "some-admin",
			Role:      auth.RoleAdmin,
		})
		require.NoError(t, err)

		_, _, err = svc.VerifyToken(token)
		require.Error(t, err)
	})
}
