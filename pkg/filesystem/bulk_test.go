package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/whatif/pkg/errors"
	"github.com/arthur-debert/whatif/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0640))
	}
}

func TestBulkMkdirAndCopy(t *testing.T) {
	root := t.TempDir()
	bulk := NewOSBulk()

	require.NoError(t, bulk.MkdirP(filepath.Join(root, "a", "b", "c")))
	assert.DirExists(t, filepath.Join(root, "a", "b", "c"))

	writeTree(t, root, map[string]string{"src.txt": "hello"})
	require.NoError(t, bulk.Cp(filepath.Join(root, "src.txt"), filepath.Join(root, "a"), nil))

	content, err := os.ReadFile(filepath.Join(root, "a", "src.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestBulkCopyTree(t *testing.T) {
	root := t.TempDir()
	bulk := NewOSBulk()
	writeTree(t, root, map[string]string{
		"tree/one":       "1",
		"tree/sub/two":   "2",
		"tree/sub/three": "3",
	})

	err := bulk.Cp(filepath.Join(root, "tree"), filepath.Join(root, "copy"), nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	opts := &types.CopyOptions{Recursive: true, Preserve: true}
	require.NoError(t, bulk.Cp(filepath.Join(root, "tree"), filepath.Join(root, "copy"), opts))

	content, err := os.ReadFile(filepath.Join(root, "copy", "sub", "two"))
	require.NoError(t, err)
	assert.Equal(t, "2", string(content))

	info, err := os.Stat(filepath.Join(root, "copy", "one"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())
}

func TestBulkRemoveAndMove(t *testing.T) {
	root := t.TempDir()
	bulk := NewOSBulk()
	writeTree(t, root, map[string]string{
		"file":       "f",
		"dir/nested": "n",
	})

	err := bulk.Rm(filepath.Join(root, "dir"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	require.NoError(t, bulk.Rm(filepath.Join(root, "file")))
	assert.NoFileExists(t, filepath.Join(root, "file"))

	require.NoError(t, bulk.MkdirP(filepath.Join(root, "dest")))
	require.NoError(t, bulk.Mv(filepath.Join(root, "dir"), filepath.Join(root, "dest")))
	assert.FileExists(t, filepath.Join(root, "dest", "dir", "nested"))

	require.NoError(t, bulk.RmRf(filepath.Join(root, "dest")))
	assert.NoDirExists(t, filepath.Join(root, "dest"))
	assert.NoError(t, bulk.RmRf(filepath.Join(root, "never-existed")))
}

func TestBulkChownR(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"tree/a":     "a",
		"tree/sub/b": "b",
	})

	var seen []string
	bulk := NewOSBulk().WithChown(func(path string, uid, gid int) error {
		assert.Equal(t, 1000, uid)
		assert.Equal(t, -1, gid)
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		seen = append(seen, rel)
		return nil
	})

	require.NoError(t, bulk.ChownR(1000, -1, filepath.Join(root, "tree")))
	assert.Equal(t, []string{"tree", "tree/a", "tree/sub", "tree/sub/b"}, seen)
}
