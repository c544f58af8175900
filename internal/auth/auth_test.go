package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MacDuki/sharedShop/internal/storage/sqlite"
)

func newAuthenticator(t *testing.T) (*PasswordAuthenticator, *sqlite.SQLiteStore) {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost), store
}

func TestRegisterAndAuthenticate(t *testing.T) {
	a, store := newAuthenticator(t)
	ctx := context.Background()

	user, err := a.Register(ctx, " Alice@Example.com ", "Alice", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice", user.Name)

	profile, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.BudgetIDs)

	got, err := a.Authenticate(ctx, "alice@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = a.Authenticate(ctx, "alice@example.com", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Authenticate(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejects(t *testing.T) {
	a, _ := newAuthenticator(t)
	ctx := context.Background()

	_, err := a.Register(ctx, "bob@example.com", "Bob", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = a.Register(ctx, "bob@example.com", "Bob", "long enough")
	require.NoError(t, err)

	_, err = a.Register(ctx, "BOB@example.com", "Bobby", "long enough")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestSyncDisplayName(t *testing.T) {
	a, store := newAuthenticator(t)
	ctx := context.Background()

	user, err := a.Register(ctx, "carol@example.com", "Carol", "long enough")
	require.NoError(t, err)
	require.NoError(t, a.SyncDisplayName(ctx, user.ID, "Caroline"))

	cred, err := store.GetCredentialByEmail(ctx, "carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Caroline", cred.DisplayName)
}

func TestJWT(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.Generate("u1", "u1@example.com")
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "u1@example.com", claims.Email)

	_, err = NewJWTManager("other", time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTExpiry(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	issued := time.Now()
	m.now = func() time.Time { return issued }

	token, err := m.Generate("u1", "")
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
