package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kaffecito/kaffecito/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testToken(t *testing.T, userID int) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id_usuario":     userID,
		"cedula_usuario": "0102030405",
		"nombre_usuario": "María",
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func openStateDB(t *testing.T, path string) *db.Client {
	t.Helper()
	client, err := db.Open(context.Background(), path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestDurableStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	store, err := NewDurableStore(openStateDB(t, path))
	require.NoError(t, err)
	_, ok := store.Token()
	require.False(t, ok, "fresh store should hold no token")

	signed := testToken(t, 7)
	require.NoError(t, store.Save(signed))

	token, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, signed, token)
	ident, ok := store.Identity()
	require.True(t, ok)
	assert.Equal(t, 7, ident.UserID)
	assert.Equal(t, "0102030405", ident.Cedula)

	// a second store against the same file sees the persisted session
	reopened, err := NewDurableStore(openStateDB(t, path))
	require.NoError(t, err)
	token, ok = reopened.Token()
	require.True(t, ok)
	assert.Equal(t, signed, token)
	ident, ok = reopened.Identity()
	require.True(t, ok)
	assert.Equal(t, 7, ident.UserID)
}

func TestDurableStoreInvalidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := NewDurableStore(openStateDB(t, path))
	require.NoError(t, err)
	require.NoError(t, store.Save(testToken(t, 3)))

	require.NoError(t, store.Invalidate())
	_, ok := store.Token()
	assert.False(t, ok, "token should be cleared")
	_, ok = store.Identity()
	assert.False(t, ok, "identity should be cleared")

	reopened, err := NewDurableStore(openStateDB(t, path))
	require.NoError(t, err)
	_, ok = reopened.Token()
	assert.False(t, ok, "invalidation should clear the durable record too")
}

func TestSaveRejectsEmptyToken(t *testing.T) {
	store := NewMemoryStore()
	require.Error(t, store.Save(""))
}

func TestIdentityFromTokenRejectsGarbage(t *testing.T) {
	_, ok := identityFromToken("not-a-jwt")
	assert.False(t, ok)
}

func TestIdentityFromTokenSubFallback(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "12"})
	signed, err := token.SignedString([]byte("s"))
	require.NoError(t, err)

	ident, ok := identityFromToken(signed)
	require.True(t, ok)
	assert.Equal(t, 12, ident.UserID)
}
