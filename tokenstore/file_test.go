package tokenstore

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/classowl/go-openclass/authenticationhandler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "tokens.json")
	store := NewFileStore(path)

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "missing file is a miss, not an error")

	pair := authenticationhandler.TokenPair{AuthToken: "auth", RefreshToken: "refresh"}
	require.NoError(t, store.Save(ctx, pair))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"authToken":"auth","refreshToken":"refresh"}`, string(raw))

	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, pair, got)

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx), "clearing twice is fine")
	_, ok, err = store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, ok, err := NewFileStore(path).Load(context.Background())

	assert.Error(t, err)
	assert.False(t, ok)
}
