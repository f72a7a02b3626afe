package localdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"docuquery/internal/models"
)

func TestOpen_MigratesAndWiresRepositories(t *testing.T) {
	ctx := context.Background()

	repos, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, repos.Close()) })

	require.NoError(t, repos.LocalData.Set(ctx, "token", []byte("abc")))
	v, err := repos.LocalData.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), v)

	require.NoError(t, repos.Documents.Upsert(ctx, &models.Document{ID: 1, Name: "a.pdf"}))
	docs, err := repos.Documents.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	require.NoError(t, repos.Messages.Append(ctx, 1, &models.Message{ID: "m1", Content: "hi", IsUser: true}))
	msgs, err := repos.Messages.GetByDocument(ctx, 1)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
}

func TestOpen_IsIdempotentOnMigrations(t *testing.T) {
	ctx := context.Background()

	repos, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer repos.Close()

	// Re-running on an already migrated handle is a no-op.
	require.NoError(t, RunMigrations(ctx, repos.DB))
}
