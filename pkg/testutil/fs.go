package testutil

import (
	"testing"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	sfs "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// NewMemFS returns a memory afero filesystem preloaded with files
func NewMemFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	return fs
}

// NewSynthFS returns a synthfs test filesystem that takes absolute paths
func NewSynthFS() sfs.FullFileSystem {
	return synthfs.NewPathAwareFileSystem(sfs.NewTestFileSystem(), "/").WithAbsolutePaths()
}

// AssertNoFile fails the test when path exists on fs
func AssertNoFile(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	require.False(t, exists, "expected %s not to exist", path)
}

// ReadFile returns the content of path on fs
func ReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	content, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(content)
}
