package tokenstore

import (
	"context"
	"testing"

	"github.com/classowl/go-openclass/authenticationhandler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	pair := authenticationhandler.TokenPair{AuthToken: "auth", RefreshToken: "refresh"}
	require.NoError(t, store.Save(ctx, pair))

	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, pair, got)

	require.NoError(t, store.Clear(ctx))
	_, ok, _ = store.Load(ctx)
	assert.False(t, ok)
}
