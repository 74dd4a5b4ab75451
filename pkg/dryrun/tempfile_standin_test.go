package dryrun

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/whatif/pkg/filesystem"
	"github.com/arthur-debert/whatif/pkg/registry"
	"github.com/arthur-debert/whatif/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTempFileReachesStorage(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	countBefore := h.reg.Count()

	file, err := h.temp.TempFile("", "render-*")
	require.NoError(t, err)
	_, err = file.WriteString("scratch")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	assert.Equal(t, "/tmp", filepath.Dir(file.Name()))
	assert.Equal(t, "scratch", testutil.ReadFile(t, h.mem, file.Name()))
	assert.Equal(t, countBefore, h.reg.Count())
	assert.True(t, h.reg.Has(registry.TargetFile, "open:write"))
	assert.Contains(t, h.sink.Traces(), testResource+" opened a tempfile")
	assert.Empty(t, h.sink.Warnings())
}

func TestGenuineTempFileWithoutSuspensionIsIntercepted(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	// Called directly the genuine primitive opens "w+" through the file
	// target and gets the substitute handle
	file, err := filesystem.NewTempFiles(h.files, "/tmp").TempFile("", "direct-*")
	require.NoError(t, err)
	_, err = file.WriteString("lost")
	require.NoError(t, err)

	testutil.AssertNoFile(t, h.mem, file.Name())
	assert.Equal(t, []string{testResource + " would overwrite file at " + file.Name()}, h.sink.Warnings())
}
