package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureSubDir_CreatesAndReturnsPath(t *testing.T) {
	tmp := t.TempDir()
	origWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(origWD) })

	dir, err := EnsureSubDir("downloads")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())

	// Second call is a no-op.
	again, err := EnsureSubDir("downloads")
	require.NoError(t, err)
	require.Equal(t, dir, again)
}

func TestListFiles_SkipsDirectories(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "a.pdf"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "b.pdf"), []byte("y"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(tmp, "sub"), 0o700))

	files, err := ListFiles(tmp)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		filepath.Join(tmp, "a.pdf"),
		filepath.Join(tmp, "b.pdf"),
	}, files)
}

func TestListFiles_MissingDir(t *testing.T) {
	_, err := ListFiles(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
