package redis

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietddude/appstore/internal/core/domain"
)

// newLiveClient connects to REDIS_URL under a throwaway key prefix.
func newLiveClient(t *testing.T) *Client {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set, skipping live redis test")
	}

	client, err := NewClient(Config{URL: url, KeyPrefix: "appstore-test-" + uuid.NewString()})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.rdb.Del(context.Background(), client.categoriesKey()).Err()
		_ = client.Close()
	})
	return client
}

func TestClient_LoadCategories_NoSnapshot(t *testing.T) {
	client := newLiveClient(t)

	_, err := client.LoadCategories(context.Background())
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestClient_SaveAndLoadCategories(t *testing.T) {
	client := newLiveClient(t)
	ctx := context.Background()

	remote := []domain.Category{
		{ID: "0", Title: "Internet", Icon: []string{"http://ops.example/images/net.svg"}, Apps: []string{"firefox"}},
	}
	require.NoError(t, client.SaveCategories(ctx, remote, false))

	snap, err := client.LoadCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, remote, snap.Categories)
	assert.False(t, snap.Fallback)
	assert.False(t, snap.SavedAt.IsZero())

	// A later save replaces the snapshot
	require.NoError(t, client.SaveCategories(ctx, domain.DefaultCategories(), true))

	snap, err = client.LoadCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCategories(), snap.Categories)
	assert.True(t, snap.Fallback)
}
