package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/NotFromFatec/Carometro-V2/internal/directory/domain"
	"github.com/NotFromFatec/Carometro-V2/internal/directory/mail"
	"github.com/NotFromFatec/Carometro-V2/internal/directory/store"
	"github.com/NotFromFatec/Carometro-V2/internal/directory/store/drivers/sqlite"
	"github.com/NotFromFatec/Carometro-V2/pkg/idx"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedAdmin(t *testing.T, st store.Store) domain.Admin {
	t.Helper()

	now := time.Now().UTC()
	admin := domain.Admin{
		ID:           idx.New().String(),
		Name:         "Test Admin",
		Username:     "admin-" + idx.New().String(),
		PasswordHash: testHashOf("admin-password"),
		Role:         "admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Admins().CreateAdmin(context.Background(), admin))
	return admin
}

// Cheap stand-ins for the argon2 hasher so tests stay fast.
func testHashOf(password string) string {
	return "digest:" + password
}

func testHasher(password string) (string, error) {
	return testHashOf(password), nil
}

func testVerifier(password, encodedHash string) error {
	if testHashOf(password) != encodedHash {
		return errors.New("password does not match")
	}
	return nil
}

// fakeSender records delivered messages and fails addresses on a denylist.
type fakeSender struct {
	mu       sync.Mutex
	sent     []mail.Message
	failWith map[string]error
}

func newFakeSender() *fakeSender {
	return &fakeSender{failWith: map[string]error{}}
}

func (f *fakeSender) failFor(email string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWith[email] = err
}

func (f *fakeSender) Send(_ context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failWith[msg.To]; ok {
		return err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) delivered() []mail.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]mail.Message, len(f.sent))
	copy(out, f.sent)
	return out
}
