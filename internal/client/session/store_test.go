package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pharmacy-pos/internal/domain"
)

var testPrincipal = &domain.Principal{
	ID:       "account-1",
	Username: "amina",
	Email:    "amina@pharmacy.test",
	Role:     domain.RoleAdmin,
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())

	require.NoError(t, store.Save("token-123", testPrincipal))

	token, principal, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "token-123", token)
	assert.Equal(t, testPrincipal, principal)
}

func TestFileStore_EmptyWhenMissing(t *testing.T) {
	store := NewFileStore(t.TempDir())

	token, principal, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, principal)
}

func TestFileStore_ClearIsIdempotent(t *testing.T) {
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Save("token-123", testPrincipal))

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	token, principal, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, principal)
}

func TestFileStore_CorruptFileReadsAsEmpty(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0o600))

	token, principal, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, principal)
}

func TestDisabledStore(t *testing.T) {
	store := Disabled{}

	require.NoError(t, store.Save("token-123", testPrincipal))

	token, principal, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, principal)

	require.NoError(t, store.Clear())
}

func TestMemStore_RoundTrip(t *testing.T) {
	store := NewMemStore()
	require.NoError(t, store.Save("token-123", testPrincipal))

	token, principal, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "token-123", token)
	assert.Equal(t, testPrincipal, principal)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	token, principal, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, principal)
}
