package cloudsync

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"docuquery/internal/common"
	"docuquery/internal/config"
)

func TestMemoryUploader_StoresObjects(t *testing.T) {
	u := NewMemoryUploader()

	require.NoError(t, u.Upload(context.Background(), "users/1/a.pdf", strings.NewReader("%PDF-a")))
	require.NoError(t, u.Upload(context.Background(), "users/1/b.pdf", strings.NewReader("%PDF-b")))

	data, ok := u.Object("users/1/a.pdf")
	require.True(t, ok)
	require.Equal(t, "%PDF-a", string(data))
	require.Equal(t, 2, u.Len())

	_, ok = u.Object("users/1/c.pdf")
	require.False(t, ok)
}

func TestNewUploaderFromConfig(t *testing.T) {
	ctx := context.Background()

	_, err := NewUploaderFromConfig(ctx, config.SyncConfig{})
	require.ErrorIs(t, err, common.ErrSyncDisabled)

	u, err := NewUploaderFromConfig(ctx, config.SyncConfig{Type: "memory"})
	require.NoError(t, err)
	require.IsType(t, &MemoryUploader{}, u)

	_, err = NewUploaderFromConfig(ctx, config.SyncConfig{Type: "s3"})
	require.Error(t, err, "s3 without a bucket must be rejected")

	_, err = NewUploaderFromConfig(ctx, config.SyncConfig{Type: "ftp"})
	require.Error(t, err)
}

func TestStorageKey_IsPerUserAndUnique(t *testing.T) {
	k1 := StorageKey(7, "contract.pdf")
	k2 := StorageKey(7, "contract.pdf")

	require.True(t, strings.HasPrefix(k1, "users/7/"))
	require.True(t, strings.HasSuffix(k1, "-contract.pdf"))
	require.NotEqual(t, k1, k2)
}
